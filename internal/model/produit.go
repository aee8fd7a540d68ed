package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Produit is an inventory item (jewelry piece) with pricing, stock and
// descriptive metadata. Nom and Reference are mandatory at creation;
// prices and stock are clamped to zero or above before they reach the store.
type Produit struct {
	ID          uint            `gorm:"primaryKey"`
	Nom         string          `gorm:"not null"`
	Reference   string          `gorm:"index;not null"`
	PrixAchat   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	PrixVente   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Stock       int             `gorm:"not null;default:0"`
	Description string
	// Image holds the stored filename under the uploads directory, if any.
	Image     *string
	Casier    *string    `gorm:"size:100"`
	Notes     *string
	DateAchat *time.Time `gorm:"type:date"`
	// ACompleter marks a piece whose record still misses information.
	ACompleter bool   `gorm:"not null;default:false"`
	AjoutePar  string `gorm:"size:190"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides GORM's default singular → plural logic for French names.
func (Produit) TableName() string { return "produits" }

// ProduitCategorie is a many-to-many link row between a product and a
// category. Link sets are replaced wholesale on every assignment update and
// removed with either side of the relation.
type ProduitCategorie struct {
	ProduitID   uint `gorm:"primaryKey;autoIncrement:false"`
	CategorieID uint `gorm:"primaryKey;autoIncrement:false"`
}

func (ProduitCategorie) TableName() string { return "produit_categories" }

// ProduitTag is the tag counterpart of ProduitCategorie.
type ProduitTag struct {
	ProduitID uint `gorm:"primaryKey;autoIncrement:false"`
	TagID     uint `gorm:"primaryKey;autoIncrement:false"`
}

func (ProduitTag) TableName() string { return "produit_tags" }
