package service

import (
	"strconv"
	"testing"

	"github.com/Valtaor/perso-monstock/internal/apierror"
	"github.com/Valtaor/perso-monstock/internal/dto"
	"github.com/Valtaor/perso-monstock/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itoa(id uint) string { return strconv.FormatUint(uint64(id), 10) }

func TestEnregistrerCategorieInsertion(t *testing.T) {
	b := nouveauBanc(t)

	resp, err := b.taxo.EnregistrerCategorie(ctx(), dto.EnregistrerCategorieRequest{
		Nom: " Bagues vintage ", Couleur: "#aa00ff", Icone: "💎",
	})
	require.NoError(t, err)

	assert.Positive(t, resp.ID)
	assert.Equal(t, "Bagues vintage", resp.Nom)
	assert.Equal(t, "#aa00ff", resp.Couleur)
	require.NotNil(t, resp.Icone)
	assert.Equal(t, "💎", *resp.Icone)
}

func TestEnregistrerCategorieCouleurParDefaut(t *testing.T) {
	b := nouveauBanc(t)

	resp, err := b.taxo.EnregistrerCategorie(ctx(), dto.EnregistrerCategorieRequest{Nom: "Bagues"})
	require.NoError(t, err)
	assert.Equal(t, model.CouleurParDefaut, resp.Couleur)
	assert.Nil(t, resp.Icone)
}

func TestEnregistrerCategorieMiseAJour(t *testing.T) {
	b := nouveauBanc(t)

	cree, err := b.taxo.EnregistrerCategorie(ctx(), dto.EnregistrerCategorieRequest{Nom: "Bagues", Icone: "💍"})
	require.NoError(t, err)

	maj, err := b.taxo.EnregistrerCategorie(ctx(), dto.EnregistrerCategorieRequest{
		ID: cree.ID, Nom: "Bagues anciennes", Couleur: "#112233",
	})
	require.NoError(t, err)

	assert.Equal(t, cree.ID, maj.ID)
	assert.Equal(t, "Bagues anciennes", maj.Nom)
	assert.Equal(t, "#112233", maj.Couleur)
	// An empty icon on update clears the stored one.
	assert.Nil(t, maj.Icone)

	tout, err := b.taxo.ListerTout(ctx())
	require.NoError(t, err)
	require.Len(t, tout.Categories, 1)
	assert.Equal(t, "Bagues anciennes", tout.Categories[0].Nom)
}

func TestEnregistrerCategorieSansNom(t *testing.T) {
	b := nouveauBanc(t)
	_, err := b.taxo.EnregistrerCategorie(ctx(), dto.EnregistrerCategorieRequest{Nom: "  "})
	assert.Equal(t, apierror.KindValidation, kindDe(t, err))
}

func TestEnregistrerCategorieIntrouvable(t *testing.T) {
	b := nouveauBanc(t)
	_, err := b.taxo.EnregistrerCategorie(ctx(), dto.EnregistrerCategorieRequest{ID: 77, Nom: "Bagues"})
	assert.Equal(t, apierror.KindNotFound, kindDe(t, err))
}

func TestSupprimerCategorie(t *testing.T) {
	b := nouveauBanc(t)

	cat, err := b.taxo.EnregistrerCategorie(ctx(), dto.EnregistrerCategorieRequest{Nom: "Bagues"})
	require.NoError(t, err)
	require.NoError(t, b.taxo.SupprimerCategorie(ctx(), cat.ID))

	err = b.taxo.SupprimerCategorie(ctx(), cat.ID)
	assert.Equal(t, apierror.KindNotFound, kindDe(t, err))

	err = b.taxo.SupprimerCategorie(ctx(), 0)
	assert.Equal(t, apierror.KindValidation, kindDe(t, err))
}

func TestTagCycleDeVie(t *testing.T) {
	b := nouveauBanc(t)

	cree, err := b.taxo.EnregistrerTag(ctx(), dto.EnregistrerTagRequest{Nom: "Art déco"})
	require.NoError(t, err)
	assert.Positive(t, cree.ID)

	maj, err := b.taxo.EnregistrerTag(ctx(), dto.EnregistrerTagRequest{ID: cree.ID, Nom: "Art nouveau"})
	require.NoError(t, err)
	assert.Equal(t, cree.ID, maj.ID)
	assert.Equal(t, "Art nouveau", maj.Nom)

	require.NoError(t, b.taxo.SupprimerTag(ctx(), cree.ID))
	tout, err := b.taxo.ListerTout(ctx())
	require.NoError(t, err)
	assert.Empty(t, tout.Tags)
}

func TestListerToutTrie(t *testing.T) {
	b := nouveauBanc(t)

	for _, nom := range []string{"perles", "art déco", "émail"} {
		_, err := b.taxo.EnregistrerTag(ctx(), dto.EnregistrerTagRequest{Nom: nom})
		require.NoError(t, err)
	}

	tout, err := b.taxo.ListerTout(ctx())
	require.NoError(t, err)
	require.Len(t, tout.Tags, 3)
	assert.Equal(t, "art déco", tout.Tags[0].Nom)
}
