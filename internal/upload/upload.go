// Package upload implements image persistence for product photos.
// Files are sniffed by content, never trusted by extension alone.
package upload

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Valtaor/perso-monstock/internal/apierror"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Fichier carries an uploaded file's bytes and its declared client-side name.
type Fichier struct {
	Nom     string
	Contenu []byte
}

var typesAutorises = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// Magasin writes validated images into a designated uploads directory,
// created on demand.
type Magasin struct {
	dir string
}

func NewMagasin(dir string) *Magasin { return &Magasin{dir: dir} }

// Enregistrer validates and persists an uploaded image and returns the stored
// filename. A nil file means the form carried no image: the product keeps an
// empty image column and no error is raised.
func (m *Magasin) Enregistrer(f *Fichier) (*string, error) {
	if f == nil {
		return nil, nil
	}
	if len(f.Contenu) == 0 {
		return nil, apierror.Upload(http.StatusBadRequest, "Erreur lors du téléchargement de l'image.")
	}

	typeDetecte := mimetype.Detect(f.Contenu)
	if _, ok := typesAutorises[typeDetecte.String()]; !ok {
		return nil, apierror.Upload(http.StatusUnsupportedMediaType, "Format d'image non supporté.")
	}

	ext := strings.ToLower(filepath.Ext(f.Nom))
	if ext == "" {
		ext = typeDetecte.Extension()
	}
	nom := "inv_" + uuid.NewString() + ext

	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return nil, apierror.Upload(http.StatusInternalServerError, "Impossible de préparer le dossier d'upload.")
	}
	if err := os.WriteFile(filepath.Join(m.dir, nom), f.Contenu, 0o644); err != nil {
		return nil, apierror.Upload(http.StatusInternalServerError, "Impossible de sauvegarder l'image.")
	}
	return &nom, nil
}
