package model

import "time"

// CouleurParDefaut is applied when a category is saved without a colour.
const CouleurParDefaut = "#c47b83"

// Categorie is a user-defined classification term attachable to products.
type Categorie struct {
	ID      uint   `gorm:"primaryKey"`
	Nom     string `gorm:"uniqueIndex;not null"`
	Couleur string `gorm:"type:char(7);not null;default:'#c47b83'"`
	// Icone is a short emoji or CSS class shown next to the name.
	Icone     *string `gorm:"size:32"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Categorie) TableName() string { return "categories" }

// Tag is a free-form keyword attachable to products.
type Tag struct {
	ID        uint   `gorm:"primaryKey"`
	Nom       string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Tag) TableName() string { return "tags" }
