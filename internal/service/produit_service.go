package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Valtaor/perso-monstock/internal/apierror"
	"github.com/Valtaor/perso-monstock/internal/dto"
	"github.com/Valtaor/perso-monstock/internal/model"
	"github.com/Valtaor/perso-monstock/internal/repository"
	"github.com/Valtaor/perso-monstock/internal/sanitize"
	"github.com/Valtaor/perso-monstock/internal/upload"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ActeurParDefaut is recorded as ajoute_par when the session carries no
// usable display name.
const ActeurParDefaut = "Système"

const (
	cleStats      = "stats:inventaire"
	statsCacheTTL = 5 * time.Minute
)

// champsModifiables is the explicit allow-list for update_product. Any other
// column name is rejected before touching the store.
var champsModifiables = map[string]string{
	"prix_achat":  "decimal",
	"prix_vente":  "decimal",
	"stock":       "entier",
	"a_completer": "booleen",
	"casier":      "texte",
	"notes":       "texte",
}

// ProduitService defines the business logic contract for products.
type ProduitService interface {
	Creer(ctx context.Context, req dto.AjouterProduitRequest, image *upload.Fichier, acteur string) (*dto.ProduitResponse, error)
	Lister(ctx context.Context, req dto.FiltreProduitsRequest) ([]dto.ProduitResponse, error)
	ModifierChamp(ctx context.Context, req dto.ModifierChampRequest) error
	Supprimer(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	AffecterTermes(ctx context.Context, req dto.AffecterTermesRequest) (*dto.TermesProduitResponse, error)
}

type produitService struct {
	repo    repository.ProduitRepository
	taxo    repository.TaxonomieRepository
	uploads *upload.Magasin
	rdb     *redis.Client
}

func NewProduitService(repo repository.ProduitRepository, taxo repository.TaxonomieRepository, uploads *upload.Magasin, rdb *redis.Client) ProduitService {
	return &produitService{repo: repo, taxo: taxo, uploads: uploads, rdb: rdb}
}

func (s *produitService) Creer(ctx context.Context, req dto.AjouterProduitRequest, image *upload.Fichier, acteur string) (*dto.ProduitResponse, error) {
	nom := sanitize.Texte(req.Nom, 190)
	reference := sanitize.Texte(req.Reference, 100)
	if nom == "" || reference == "" {
		return nil, apierror.Validation("Merci de renseigner le nom et la référence.")
	}

	p := model.Produit{
		Nom:         nom,
		Reference:   reference,
		PrixAchat:   sanitize.Decimal(req.PrixAchat),
		PrixVente:   sanitize.Decimal(req.PrixVente),
		Stock:       sanitize.Entier(req.Stock, 0),
		Description: sanitize.Texte(req.Description, 2000),
		ACompleter:  sanitize.Booleen(req.ACompleter),
	}
	if casier := sanitize.Texte(req.Casier, 100); casier != "" {
		p.Casier = &casier
	}
	if notes := sanitize.Texte(req.Notes, 2000); notes != "" {
		p.Notes = &notes
	}
	if req.DateAchat != "" {
		d, err := time.Parse("2006-01-02", req.DateAchat)
		if err != nil {
			return nil, apierror.Validation("Date d'achat invalide.")
		}
		p.DateAchat = &d
	}

	// The image is persisted before the transaction: a failed insert leaves
	// an orphan file at worst, never a product row without its image.
	nomImage, err := s.uploads.Enregistrer(image)
	if err != nil {
		return nil, err
	}
	p.Image = nomImage

	if acteur = sanitize.Texte(acteur, 190); acteur == "" {
		acteur = ActeurParDefaut
	}
	p.AjoutePar = acteur

	categories := sanitize.ListeIDs(req.Categories)
	tags := sanitize.ListeIDs(req.Tags)

	err = s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.repo.CreerTx(tx, &p); err != nil {
			return err
		}
		return s.taxo.SynchroniserTermesTx(tx, p.ID, categories, tags)
	})
	if err != nil {
		return nil, apierror.Persistence(err)
	}

	s.invaliderStats(ctx)
	return s.chargerReponse(ctx, &p)
}

func (s *produitService) Lister(ctx context.Context, req dto.FiltreProduitsRequest) ([]dto.ProduitResponse, error) {
	filtre := repository.FiltreProduits{
		Categories: sanitize.ListeIDs(req.Categories),
		Tags:       sanitize.ListeIDs(req.Tags),
	}

	produits, err := s.repo.Lister(ctx, filtre)
	if err != nil {
		return nil, apierror.Persistence(err)
	}

	ids := make([]uint, 0, len(produits))
	for _, p := range produits {
		ids = append(ids, p.ID)
	}
	categories, tags, err := s.taxo.TermesPourProduits(ctx, ids)
	if err != nil {
		return nil, apierror.Persistence(err)
	}

	reponses := make([]dto.ProduitResponse, 0, len(produits))
	for i := range produits {
		p := &produits[i]
		reponses = append(reponses, mapProduit(p, categories[p.ID], tags[p.ID]))
	}
	return reponses, nil
}

func (s *produitService) ModifierChamp(ctx context.Context, req dto.ModifierChampRequest) error {
	id := sanitize.Entier(req.ID, 0)
	genre, permis := champsModifiables[req.Champ]
	if id <= 0 || !permis {
		return apierror.Validation("Paramètres invalides.")
	}

	if _, err := s.repo.ObtenirParID(ctx, uint(id)); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Produit introuvable.")
		}
		return apierror.Persistence(err)
	}

	var valeur interface{}
	switch genre {
	case "decimal":
		valeur = sanitize.Decimal(req.Value)
	case "entier":
		valeur = sanitize.Entier(req.Value, 0)
	case "booleen":
		valeur = sanitize.Booleen(req.Value)
	case "texte":
		if texte := sanitize.Texte(req.Value, 2000); texte != "" {
			valeur = texte
		} else {
			valeur = gorm.Expr("NULL")
		}
	}

	if err := s.repo.MettreAJourChamp(ctx, uint(id), req.Champ, valeur); err != nil {
		return apierror.Persistence(err)
	}
	s.invaliderStats(ctx)
	return nil
}

func (s *produitService) Supprimer(ctx context.Context, id uint) error {
	if id == 0 {
		return apierror.Validation("Identifiant invalide.")
	}
	if _, err := s.repo.ObtenirParID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Produit introuvable.")
		}
		return apierror.Persistence(err)
	}

	// Links first, then the row — one atomic unit so no orphan links survive.
	err := s.repo.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.taxo.SupprimerLiensProduitTx(tx, id); err != nil {
			return err
		}
		return s.repo.SupprimerTx(tx, id)
	})
	if err != nil {
		return apierror.Persistence(err)
	}
	s.invaliderStats(ctx)
	return nil
}

func (s *produitService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	// Best-effort cache read — a Redis failure never blocks the counters.
	if s.rdb != nil {
		if brut, err := s.rdb.Get(ctx, cleStats).Bytes(); err == nil {
			var resp dto.StatsResponse
			if json.Unmarshal(brut, &resp) == nil {
				return &resp, nil
			}
		}
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, apierror.Persistence(err)
	}
	resp := &dto.StatsResponse{
		TotalArticles: stats.TotalArticles,
		ValeurAchat:   stats.ValeurAchat,
		ValeurVente:   stats.ValeurVente,
		MargeTotale:   stats.ValeurVente.Sub(stats.ValeurAchat),
	}

	if s.rdb != nil {
		if brut, err := json.Marshal(resp); err == nil {
			_ = s.rdb.Set(ctx, cleStats, brut, statsCacheTTL).Err()
		}
	}
	return resp, nil
}

func (s *produitService) AffecterTermes(ctx context.Context, req dto.AffecterTermesRequest) (*dto.TermesProduitResponse, error) {
	id := sanitize.Entier(req.ProduitID, 0)
	if id <= 0 {
		return nil, apierror.Validation("Identifiant invalide.")
	}
	produitID := uint(id)

	if _, err := s.repo.ObtenirParID(ctx, produitID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierror.NotFound("Produit introuvable.")
		}
		return nil, apierror.Persistence(err)
	}

	categories := sanitize.ListeIDs(req.Categories)
	tags := sanitize.ListeIDs(req.Tags)
	if err := s.taxo.SynchroniserTermes(ctx, produitID, categories, tags); err != nil {
		return nil, apierror.Persistence(err)
	}

	liensCat, liensTag, err := s.taxo.TermesPourProduits(ctx, []uint{produitID})
	if err != nil {
		return nil, apierror.Persistence(err)
	}
	return &dto.TermesProduitResponse{
		ProduitID:  produitID,
		Categories: mapCategories(liensCat[produitID]),
		Tags:       mapTags(liensTag[produitID]),
	}, nil
}

// chargerReponse rebuilds the full DTO for a freshly written product.
func (s *produitService) chargerReponse(ctx context.Context, p *model.Produit) (*dto.ProduitResponse, error) {
	categories, tags, err := s.taxo.TermesPourProduits(ctx, []uint{p.ID})
	if err != nil {
		return nil, apierror.Persistence(err)
	}
	resp := mapProduit(p, categories[p.ID], tags[p.ID])
	return &resp, nil
}

func (s *produitService) invaliderStats(ctx context.Context) {
	if s.rdb != nil {
		_ = s.rdb.Del(ctx, cleStats).Err()
	}
}

func mapProduit(p *model.Produit, categories []model.Categorie, tags []model.Tag) dto.ProduitResponse {
	resp := dto.ProduitResponse{
		ID:          p.ID,
		Nom:         p.Nom,
		Reference:   p.Reference,
		PrixAchat:   p.PrixAchat,
		PrixVente:   p.PrixVente,
		Stock:       p.Stock,
		Description: p.Description,
		Image:       p.Image,
		Casier:      p.Casier,
		Notes:       p.Notes,
		ACompleter:  p.ACompleter,
		AjoutePar:   p.AjoutePar,
		Categories:  mapCategories(categories),
		Tags:        mapTags(tags),
	}
	if p.DateAchat != nil {
		d := p.DateAchat.Format("2006-01-02")
		resp.DateAchat = &d
	}
	return resp
}
