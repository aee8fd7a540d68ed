package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/Valtaor/perso-monstock/internal/infra"
	"github.com/Valtaor/perso-monstock/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ouvrirDB opens a throwaway SQLite store carrying the canonical schema.
func ouvrirDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "inventaire.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, infra.Migrate(db))
	return db
}

func creerProduit(t *testing.T, db *gorm.DB, nom, reference string, achat, vente string, stock int) *model.Produit {
	t.Helper()
	p := &model.Produit{
		Nom:       nom,
		Reference: reference,
		PrixAchat: decimal.RequireFromString(achat),
		PrixVente: decimal.RequireFromString(vente),
		Stock:     stock,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func creerCategorie(t *testing.T, db *gorm.DB, nom string) *model.Categorie {
	t.Helper()
	c := &model.Categorie{Nom: nom, Couleur: model.CouleurParDefaut}
	require.NoError(t, db.Create(c).Error)
	return c
}

func creerTag(t *testing.T, db *gorm.DB, nom string) *model.Tag {
	t.Helper()
	tag := &model.Tag{Nom: nom}
	require.NoError(t, db.Create(tag).Error)
	return tag
}

func compterLiensCategories(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.ProduitCategorie{}).Count(&n).Error)
	return n
}

func compterLiensTags(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&model.ProduitTag{}).Count(&n).Error)
	return n
}

func ctx() context.Context { return context.Background() }
