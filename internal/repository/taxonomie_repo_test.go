package repository

import (
	"testing"

	"github.com/Valtaor/perso-monstock/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCategorieAllerRetour(t *testing.T) {
	db := ouvrirDB(t)
	repo := NewTaxonomieRepository(db)

	icone := "💎"
	c := &model.Categorie{Nom: "Bagues vintage", Couleur: "#aa00ff", Icone: &icone}
	require.NoError(t, repo.EnregistrerCategorie(ctx(), c))
	require.NotZero(t, c.ID)

	list, err := repo.ListerCategories(ctx())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Bagues vintage", list[0].Nom)
	assert.Equal(t, "#aa00ff", list[0].Couleur)
	require.NotNil(t, list[0].Icone)
	assert.Equal(t, "💎", *list[0].Icone)
}

func TestListerCategoriesTrieesParNom(t *testing.T) {
	db := ouvrirDB(t)
	repo := NewTaxonomieRepository(db)

	creerCategorie(t, db, "Pendentifs")
	creerCategorie(t, db, "Bagues")
	creerCategorie(t, db, "Colliers")

	list, err := repo.ListerCategories(ctx())
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Bagues", list[0].Nom)
	assert.Equal(t, "Colliers", list[1].Nom)
	assert.Equal(t, "Pendentifs", list[2].Nom)
}

func TestSupprimerCategorieAvecLiens(t *testing.T) {
	db := ouvrirDB(t)
	repo := NewTaxonomieRepository(db)

	p := creerProduit(t, db, "Bague", "REF-001", "10.00", "20.00", 1)
	c := creerCategorie(t, db, "Bagues")
	require.NoError(t, repo.SynchroniserTermes(ctx(), p.ID, []uint{c.ID}, nil))
	require.Equal(t, int64(1), compterLiensCategories(t, db))

	require.NoError(t, repo.SupprimerCategorie(ctx(), c.ID))

	_, err := repo.ObtenirCategorie(ctx(), c.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Equal(t, int64(0), compterLiensCategories(t, db))

	// The product itself is untouched.
	var n int64
	require.NoError(t, db.Model(&model.Produit{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestSupprimerTagAvecLiens(t *testing.T) {
	db := ouvrirDB(t)
	repo := NewTaxonomieRepository(db)

	p := creerProduit(t, db, "Collier", "REF-002", "8.00", "19.00", 1)
	tag := creerTag(t, db, "perles")
	require.NoError(t, repo.SynchroniserTermes(ctx(), p.ID, nil, []uint{tag.ID}))

	require.NoError(t, repo.SupprimerTag(ctx(), tag.ID))
	assert.Equal(t, int64(0), compterLiensTags(t, db))
}

func TestSynchroniserTermesRemplacement(t *testing.T) {
	db := ouvrirDB(t)
	repo := NewTaxonomieRepository(db)

	p := creerProduit(t, db, "Bague", "REF-001", "10.00", "20.00", 1)
	a := creerCategorie(t, db, "Anciennes")
	b := creerCategorie(t, db, "Bagues")

	require.NoError(t, repo.SynchroniserTermes(ctx(), p.ID, []uint{a.ID}, nil))
	require.NoError(t, repo.SynchroniserTermes(ctx(), p.ID, []uint{b.ID}, nil))

	categories, _, err := repo.TermesPourProduits(ctx(), []uint{p.ID})
	require.NoError(t, err)
	require.Len(t, categories[p.ID], 1)
	assert.Equal(t, b.ID, categories[p.ID][0].ID)
}

func TestSynchroniserTermesVideIdempotent(t *testing.T) {
	db := ouvrirDB(t)
	repo := NewTaxonomieRepository(db)

	p := creerProduit(t, db, "Bague", "REF-001", "10.00", "20.00", 1)
	c := creerCategorie(t, db, "Bagues")
	require.NoError(t, repo.SynchroniserTermes(ctx(), p.ID, []uint{c.ID}, nil))

	require.NoError(t, repo.SynchroniserTermes(ctx(), p.ID, nil, nil))
	assert.Equal(t, int64(0), compterLiensCategories(t, db))

	require.NoError(t, repo.SynchroniserTermes(ctx(), p.ID, nil, nil))
	assert.Equal(t, int64(0), compterLiensCategories(t, db))
	assert.Equal(t, int64(0), compterLiensTags(t, db))
}

func TestTermesPourProduits(t *testing.T) {
	db := ouvrirDB(t)
	repo := NewTaxonomieRepository(db)

	p1 := creerProduit(t, db, "Bague", "REF-001", "10.00", "20.00", 1)
	p2 := creerProduit(t, db, "Collier", "REF-002", "8.00", "19.00", 1)
	zeta := creerCategorie(t, db, "Zircons")
	alpha := creerCategorie(t, db, "Argent")
	tag := creerTag(t, db, "vintage")

	require.NoError(t, repo.SynchroniserTermes(ctx(), p1.ID, []uint{zeta.ID, alpha.ID}, []uint{tag.ID}))

	categories, tags, err := repo.TermesPourProduits(ctx(), []uint{p1.ID, p2.ID})
	require.NoError(t, err)

	require.Len(t, categories[p1.ID], 2)
	// Name-ordered within the product.
	assert.Equal(t, "Argent", categories[p1.ID][0].Nom)
	assert.Equal(t, "Zircons", categories[p1.ID][1].Nom)
	assert.Len(t, tags[p1.ID], 1)
	assert.Empty(t, categories[p2.ID])
}

func TestTermesPourProduitsEntreeVide(t *testing.T) {
	db := ouvrirDB(t)
	repo := NewTaxonomieRepository(db)

	categories, tags, err := repo.TermesPourProduits(ctx(), nil)
	require.NoError(t, err)
	assert.Empty(t, categories)
	assert.Empty(t, tags)
}
