package handler

import (
	"errors"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/Valtaor/perso-monstock/internal/apierror"
	"github.com/Valtaor/perso-monstock/internal/upload"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
)

var validate = validator.New()

// bindAndValidate binds the request (form or JSON) and runs
// go-playground/validator tags. Returns false and writes the error envelope
// if binding or validation fails — the caller should return immediately.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBind(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Fail("Requête invalide : "+err.Error(), ""))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var champs []string
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				champs = append(champs, fe.Field()+": "+fe.Tag())
			}
		}
		sort.Strings(champs)
		c.JSON(http.StatusUnprocessableEntity, apierror.Fail("Paramètres invalides.", strings.Join(champs, ", ")))
		return false
	}
	return true
}

// repondreErreur maps a domain error to the failure envelope. Persistence
// details only reach the client in debug mode; they are always logged.
func repondreErreur(c *gin.Context, err error, debug bool) {
	var domErr *apierror.Error
	if !errors.As(err, &domErr) {
		domErr = apierror.Persistence(err)
	}

	if domErr.Kind == apierror.KindPersistence {
		log.Error().
			Str("action", c.Query("action")).
			Str("detail", domErr.Detail).
			Msg("persistence error")
	}

	details := ""
	if debug {
		details = domErr.Detail
	}
	c.JSON(domErr.Status, apierror.Fail(domErr.Message, details))
}

// lireImage extracts the optional multipart "image" field. A form without a
// file (or a non-multipart request) yields nil without error; a broken
// upload yields an UploadError.
func lireImage(c *gin.Context) (*upload.Fichier, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) ||
			!strings.HasPrefix(c.ContentType(), "multipart/") {
			return nil, nil
		}
		return nil, apierror.Upload(http.StatusBadRequest, "Erreur lors du téléchargement de l'image.")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apierror.Upload(http.StatusBadRequest, "Erreur lors du téléchargement de l'image.")
	}
	defer f.Close()

	contenu, err := io.ReadAll(f)
	if err != nil {
		return nil, apierror.Upload(http.StatusBadRequest, "Erreur lors du téléchargement de l'image.")
	}
	return &upload.Fichier{Nom: fh.Filename, Contenu: contenu}, nil
}
