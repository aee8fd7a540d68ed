package service

import (
	"context"
	"errors"

	"github.com/Valtaor/perso-monstock/internal/apierror"
	"github.com/Valtaor/perso-monstock/internal/dto"
	"github.com/Valtaor/perso-monstock/internal/model"
	"github.com/Valtaor/perso-monstock/internal/repository"
	"github.com/Valtaor/perso-monstock/internal/sanitize"

	"gorm.io/gorm"
)

// TaxonomieService defines business operations for categories and tags.
type TaxonomieService interface {
	ListerTout(ctx context.Context) (*dto.TaxonomiesResponse, error)
	EnregistrerCategorie(ctx context.Context, req dto.EnregistrerCategorieRequest) (*dto.CategorieResponse, error)
	SupprimerCategorie(ctx context.Context, id uint) error
	EnregistrerTag(ctx context.Context, req dto.EnregistrerTagRequest) (*dto.TagResponse, error)
	SupprimerTag(ctx context.Context, id uint) error
}

type taxonomieService struct {
	repo repository.TaxonomieRepository
}

func NewTaxonomieService(repo repository.TaxonomieRepository) TaxonomieService {
	return &taxonomieService{repo: repo}
}

func (s *taxonomieService) ListerTout(ctx context.Context) (*dto.TaxonomiesResponse, error) {
	categories, err := s.repo.ListerCategories(ctx)
	if err != nil {
		return nil, apierror.Persistence(err)
	}
	tags, err := s.repo.ListerTags(ctx)
	if err != nil {
		return nil, apierror.Persistence(err)
	}
	return &dto.TaxonomiesResponse{
		Categories: mapCategories(categories),
		Tags:       mapTags(tags),
	}, nil
}

func (s *taxonomieService) EnregistrerCategorie(ctx context.Context, req dto.EnregistrerCategorieRequest) (*dto.CategorieResponse, error) {
	nom := sanitize.Texte(req.Nom, 100)
	if nom == "" {
		return nil, apierror.Validation("Merci de renseigner le nom de la catégorie.")
	}
	couleur := sanitize.Texte(req.Couleur, 7)
	if couleur == "" {
		couleur = model.CouleurParDefaut
	}
	icone := sanitize.Texte(req.Icone, 32)

	var c *model.Categorie
	if req.ID == 0 {
		c = &model.Categorie{Nom: nom, Couleur: couleur}
	} else {
		existante, err := s.repo.ObtenirCategorie(ctx, req.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("Catégorie introuvable.")
			}
			return nil, apierror.Persistence(err)
		}
		c = existante
		c.Nom = nom
		c.Couleur = couleur
	}
	if icone != "" {
		c.Icone = &icone
	} else {
		c.Icone = nil
	}

	if err := s.repo.EnregistrerCategorie(ctx, c); err != nil {
		return nil, apierror.Persistence(err)
	}
	resp := mapCategorie(*c)
	return &resp, nil
}

func (s *taxonomieService) SupprimerCategorie(ctx context.Context, id uint) error {
	if id == 0 {
		return apierror.Validation("Identifiant invalide.")
	}
	if _, err := s.repo.ObtenirCategorie(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Catégorie introuvable.")
		}
		return apierror.Persistence(err)
	}
	if err := s.repo.SupprimerCategorie(ctx, id); err != nil {
		return apierror.Persistence(err)
	}
	return nil
}

func (s *taxonomieService) EnregistrerTag(ctx context.Context, req dto.EnregistrerTagRequest) (*dto.TagResponse, error) {
	nom := sanitize.Texte(req.Nom, 100)
	if nom == "" {
		return nil, apierror.Validation("Merci de renseigner le nom du tag.")
	}

	var t *model.Tag
	if req.ID == 0 {
		t = &model.Tag{Nom: nom}
	} else {
		existant, err := s.repo.ObtenirTag(ctx, req.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apierror.NotFound("Tag introuvable.")
			}
			return nil, apierror.Persistence(err)
		}
		t = existant
		t.Nom = nom
	}

	if err := s.repo.EnregistrerTag(ctx, t); err != nil {
		return nil, apierror.Persistence(err)
	}
	resp := mapTag(*t)
	return &resp, nil
}

func (s *taxonomieService) SupprimerTag(ctx context.Context, id uint) error {
	if id == 0 {
		return apierror.Validation("Identifiant invalide.")
	}
	if _, err := s.repo.ObtenirTag(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apierror.NotFound("Tag introuvable.")
		}
		return apierror.Persistence(err)
	}
	if err := s.repo.SupprimerTag(ctx, id); err != nil {
		return apierror.Persistence(err)
	}
	return nil
}

// ── DTO mapping helpers, shared with the product service ─────────────────────

func mapCategorie(c model.Categorie) dto.CategorieResponse {
	return dto.CategorieResponse{ID: c.ID, Nom: c.Nom, Couleur: c.Couleur, Icone: c.Icone}
}

func mapCategories(list []model.Categorie) []dto.CategorieResponse {
	result := make([]dto.CategorieResponse, 0, len(list))
	for _, c := range list {
		result = append(result, mapCategorie(c))
	}
	return result
}

func mapTag(t model.Tag) dto.TagResponse {
	return dto.TagResponse{ID: t.ID, Nom: t.Nom}
}

func mapTags(list []model.Tag) []dto.TagResponse {
	result := make([]dto.TagResponse, 0, len(list))
	for _, t := range list {
		result = append(result, mapTag(t))
	}
	return result
}
