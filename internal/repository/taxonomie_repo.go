package repository

import (
	"context"

	"github.com/Valtaor/perso-monstock/internal/model"

	"gorm.io/gorm"
)

// TaxonomieRepository defines CRUD for categories, tags and their
// many-to-many links to products. Multi-step writes (delete-with-links,
// link replacement) run inside transactions: all-or-nothing.
type TaxonomieRepository interface {
	ListerCategories(ctx context.Context) ([]model.Categorie, error)
	ObtenirCategorie(ctx context.Context, id uint) (*model.Categorie, error)
	EnregistrerCategorie(ctx context.Context, c *model.Categorie) error
	// SupprimerCategorie removes the product links then the row, atomically.
	SupprimerCategorie(ctx context.Context, id uint) error

	ListerTags(ctx context.Context) ([]model.Tag, error)
	ObtenirTag(ctx context.Context, id uint) (*model.Tag, error)
	EnregistrerTag(ctx context.Context, t *model.Tag) error
	SupprimerTag(ctx context.Context, id uint) error

	// SynchroniserTermes replaces the full link set for a product
	// (delete existing, insert the given ids) — last-write-wins, no merge.
	SynchroniserTermes(ctx context.Context, produitID uint, categorieIDs, tagIDs []uint) error

	// TermesPourProduits batch-loads the categories and tags linked to the
	// given product ids, each list name-ordered. No-op on empty input.
	TermesPourProduits(ctx context.Context, produitIDs []uint) (map[uint][]model.Categorie, map[uint][]model.Tag, error)

	// Used inside transactions — callers must pass the tx instance
	SynchroniserTermesTx(tx *gorm.DB, produitID uint, categorieIDs, tagIDs []uint) error
	SupprimerLiensProduitTx(tx *gorm.DB, produitID uint) error
}

type taxonomieRepository struct{ db *gorm.DB }

func NewTaxonomieRepository(db *gorm.DB) TaxonomieRepository {
	return &taxonomieRepository{db: db}
}

// ── Categories ───────────────────────────────────────────────────────────────

func (r *taxonomieRepository) ListerCategories(ctx context.Context) ([]model.Categorie, error) {
	var list []model.Categorie
	err := r.db.WithContext(ctx).Order("nom asc").Find(&list).Error
	return list, err
}

func (r *taxonomieRepository) ObtenirCategorie(ctx context.Context, id uint) (*model.Categorie, error) {
	var c model.Categorie
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *taxonomieRepository) EnregistrerCategorie(ctx context.Context, c *model.Categorie) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *taxonomieRepository) SupprimerCategorie(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("categorie_id = ?", id).Delete(&model.ProduitCategorie{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Categorie{}, id).Error
	})
}

// ── Tags ─────────────────────────────────────────────────────────────────────

func (r *taxonomieRepository) ListerTags(ctx context.Context) ([]model.Tag, error) {
	var list []model.Tag
	err := r.db.WithContext(ctx).Order("nom asc").Find(&list).Error
	return list, err
}

func (r *taxonomieRepository) ObtenirTag(ctx context.Context, id uint) (*model.Tag, error) {
	var t model.Tag
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taxonomieRepository) EnregistrerTag(ctx context.Context, t *model.Tag) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *taxonomieRepository) SupprimerTag(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", id).Delete(&model.ProduitTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Tag{}, id).Error
	})
}

// ── Product links ────────────────────────────────────────────────────────────

func (r *taxonomieRepository) SynchroniserTermes(ctx context.Context, produitID uint, categorieIDs, tagIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return r.SynchroniserTermesTx(tx, produitID, categorieIDs, tagIDs)
	})
}

func (r *taxonomieRepository) SynchroniserTermesTx(tx *gorm.DB, produitID uint, categorieIDs, tagIDs []uint) error {
	if err := r.SupprimerLiensProduitTx(tx, produitID); err != nil {
		return err
	}

	if len(categorieIDs) > 0 {
		liens := make([]model.ProduitCategorie, 0, len(categorieIDs))
		for _, id := range categorieIDs {
			liens = append(liens, model.ProduitCategorie{ProduitID: produitID, CategorieID: id})
		}
		if err := tx.Create(&liens).Error; err != nil {
			return err
		}
	}

	if len(tagIDs) > 0 {
		liens := make([]model.ProduitTag, 0, len(tagIDs))
		for _, id := range tagIDs {
			liens = append(liens, model.ProduitTag{ProduitID: produitID, TagID: id})
		}
		if err := tx.Create(&liens).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *taxonomieRepository) SupprimerLiensProduitTx(tx *gorm.DB, produitID uint) error {
	if err := tx.Where("produit_id = ?", produitID).Delete(&model.ProduitCategorie{}).Error; err != nil {
		return err
	}
	return tx.Where("produit_id = ?", produitID).Delete(&model.ProduitTag{}).Error
}

// categorieLiee and tagLie flatten the join for the batch enrichment query.
type categorieLiee struct {
	ProduitID uint
	ID        uint
	Nom       string
	Couleur   string
	Icone     *string
}

type tagLie struct {
	ProduitID uint
	ID        uint
	Nom       string
}

func (r *taxonomieRepository) TermesPourProduits(ctx context.Context, produitIDs []uint) (map[uint][]model.Categorie, map[uint][]model.Tag, error) {
	categories := make(map[uint][]model.Categorie)
	tags := make(map[uint][]model.Tag)
	if len(produitIDs) == 0 {
		return categories, tags, nil
	}

	var lignesCat []categorieLiee
	err := r.db.WithContext(ctx).
		Table("produit_categories").
		Select("produit_categories.produit_id, categories.id, categories.nom, categories.couleur, categories.icone").
		Joins("JOIN categories ON categories.id = produit_categories.categorie_id").
		Where("produit_categories.produit_id IN ?", produitIDs).
		Order("categories.nom asc").
		Scan(&lignesCat).Error
	if err != nil {
		return nil, nil, err
	}
	for _, l := range lignesCat {
		categories[l.ProduitID] = append(categories[l.ProduitID], model.Categorie{
			ID: l.ID, Nom: l.Nom, Couleur: l.Couleur, Icone: l.Icone,
		})
	}

	var lignesTag []tagLie
	err = r.db.WithContext(ctx).
		Table("produit_tags").
		Select("produit_tags.produit_id, tags.id, tags.nom").
		Joins("JOIN tags ON tags.id = produit_tags.tag_id").
		Where("produit_tags.produit_id IN ?", produitIDs).
		Order("tags.nom asc").
		Scan(&lignesTag).Error
	if err != nil {
		return nil, nil, err
	}
	for _, l := range lignesTag {
		tags[l.ProduitID] = append(tags[l.ProduitID], model.Tag{ID: l.ID, Nom: l.Nom})
	}

	return categories, tags, nil
}
