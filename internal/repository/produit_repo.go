package repository

import (
	"context"

	"github.com/Valtaor/perso-monstock/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FiltreProduits restricts a listing to products linked to at least one of
// the ids in each provided dimension (AND across dimensions, IN within one).
type FiltreProduits struct {
	Categories []uint
	Tags       []uint
}

// Stats aggregates the whole inventory for the dashboard counters.
type Stats struct {
	TotalArticles int64           `json:"total_articles"`
	ValeurAchat   decimal.Decimal `json:"valeur_achat"`
	ValeurVente   decimal.Decimal `json:"valeur_vente"`
}

// ProduitRepository defines the data access contract for products.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type ProduitRepository interface {
	ObtenirParID(ctx context.Context, id uint) (*model.Produit, error)
	Lister(ctx context.Context, filtre FiltreProduits) ([]model.Produit, error)
	// MettreAJourChamp writes one column; the caller guarantees the column
	// name comes from the update allow-list, never from user input.
	MettreAJourChamp(ctx context.Context, id uint, colonne string, valeur interface{}) error
	Stats(ctx context.Context) (*Stats, error)

	// Used inside transactions — callers must pass the tx instance
	CreerTx(tx *gorm.DB, p *model.Produit) error
	SupprimerTx(tx *gorm.DB, id uint) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type produitRepository struct{ db *gorm.DB }

func NewProduitRepository(db *gorm.DB) ProduitRepository {
	return &produitRepository{db: db}
}

func (r *produitRepository) ObtenirParID(ctx context.Context, id uint) (*model.Produit, error) {
	var p model.Produit
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *produitRepository) Lister(ctx context.Context, filtre FiltreProduits) ([]model.Produit, error) {
	q := r.db.WithContext(ctx).Model(&model.Produit{})

	if len(filtre.Categories) > 0 {
		q = q.Joins("JOIN produit_categories pc ON pc.produit_id = produits.id").
			Where("pc.categorie_id IN ?", filtre.Categories)
	}
	if len(filtre.Tags) > 0 {
		q = q.Joins("JOIN produit_tags pt ON pt.produit_id = produits.id").
			Where("pt.tag_id IN ?", filtre.Tags)
	}

	var produits []model.Produit
	// Newest first. Distinct guards against duplicate rows when a product
	// matches several filter ids.
	err := q.Distinct("produits.*").Order("produits.id desc").Find(&produits).Error
	return produits, err
}

func (r *produitRepository) MettreAJourChamp(ctx context.Context, id uint, colonne string, valeur interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Produit{}).
		Where("id = ?", id).
		Update(colonne, valeur).Error
}

func (r *produitRepository) Stats(ctx context.Context) (*Stats, error) {
	var s Stats
	err := r.db.WithContext(ctx).Model(&model.Produit{}).
		Select("COALESCE(SUM(stock), 0) AS total_articles, " +
			"COALESCE(SUM(prix_achat * stock), 0) AS valeur_achat, " +
			"COALESCE(SUM(prix_vente * stock), 0) AS valeur_vente").
		Scan(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *produitRepository) CreerTx(tx *gorm.DB, p *model.Produit) error {
	return tx.Create(p).Error
}

func (r *produitRepository) SupprimerTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Produit{}, id).Error
}

func (r *produitRepository) DB() *gorm.DB { return r.db }
