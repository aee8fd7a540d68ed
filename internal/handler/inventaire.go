package handler

import (
	"net/http"
	"strings"

	"github.com/Valtaor/perso-monstock/internal/apierror"
	"github.com/Valtaor/perso-monstock/internal/dto"
	"github.com/Valtaor/perso-monstock/internal/middleware"
	"github.com/Valtaor/perso-monstock/internal/sanitize"
	"github.com/Valtaor/perso-monstock/internal/service"

	"github.com/gin-gonic/gin"
)

// operation binds a dispatchable action name to its executor. Mutating
// operations additionally require a valid anti-forgery nonce.
type operation struct {
	mutation bool
	executer func(h *InventaireHandler, c *gin.Context)
}

// operations is the fixed action set. Names are matched exactly after
// case/separator normalization — no aliases, unknowns are rejected.
var operations = map[string]operation{
	"add_product":     {mutation: true, executer: (*InventaireHandler).ajouterProduit},
	"get_products":    {executer: (*InventaireHandler).listerProduits},
	"update_product":  {mutation: true, executer: (*InventaireHandler).modifierChamp},
	"delete_product":  {mutation: true, executer: (*InventaireHandler).supprimerProduit},
	"get_stats":       {executer: (*InventaireHandler).obtenirStats},
	"get_taxonomies":  {executer: (*InventaireHandler).listerTaxonomies},
	"save_category":   {mutation: true, executer: (*InventaireHandler).enregistrerCategorie},
	"delete_category": {mutation: true, executer: (*InventaireHandler).supprimerCategorie},
	"save_tag":        {mutation: true, executer: (*InventaireHandler).enregistrerTag},
	"delete_tag":      {mutation: true, executer: (*InventaireHandler).supprimerTag},
	"assign_terms":    {mutation: true, executer: (*InventaireHandler).affecterTermes},
}

// InventaireHandler is the action dispatcher for the inventory dashboard:
// one endpoint, an `action` parameter, JSON envelopes either way.
type InventaireHandler struct {
	produits    service.ProduitService
	taxonomies  service.TaxonomieService
	nonceSecret string
	debug       bool
}

func NewInventaireHandler(produits service.ProduitService, taxonomies service.TaxonomieService, nonceSecret string, debug bool) *InventaireHandler {
	return &InventaireHandler{
		produits:    produits,
		taxonomies:  taxonomies,
		nonceSecret: nonceSecret,
		debug:       debug,
	}
}

func normaliserAction(action string) string {
	action = strings.TrimSpace(strings.ToLower(action))
	return strings.ReplaceAll(action, "-", "_")
}

// Dispatch resolves the action name and runs the matching operation.
// Authentication already happened in the middleware chain; mutating actions
// are additionally gated on the per-user nonce.
func (h *InventaireHandler) Dispatch(c *gin.Context) {
	action := c.Query("action")
	if action == "" {
		action = c.PostForm("action")
	}

	op, ok := operations[normaliserAction(action)]
	if !ok {
		c.JSON(http.StatusBadRequest, apierror.Fail("Action non reconnue.", ""))
		return
	}

	if op.mutation {
		auth := middleware.GetAuth(c)
		if !middleware.VerifierNonce(h.nonceSecret, auth.UserID, c.GetHeader(middleware.NonceHeader)) {
			c.JSON(http.StatusForbidden, apierror.Fail("Jeton de sécurité invalide.", ""))
			return
		}
	}

	op.executer(h, c)
}

// ── Products ─────────────────────────────────────────────────────────────────

func (h *InventaireHandler) ajouterProduit(c *gin.Context) {
	var req dto.AjouterProduitRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Fail("Requête invalide : "+err.Error(), ""))
		return
	}

	image, err := lireImage(c)
	if err != nil {
		repondreErreur(c, err, h.debug)
		return
	}

	auth := middleware.GetAuth(c)
	resp, err := h.produits.Creer(c.Request.Context(), req, image, auth.NomAffichage)
	if err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.Envelope{Success: true, Message: "Produit ajouté avec succès.", Data: resp})
}

func (h *InventaireHandler) listerProduits(c *gin.Context) {
	var req dto.FiltreProduitsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Fail("Requête invalide : "+err.Error(), ""))
		return
	}
	resp, err := h.produits.Lister(c.Request.Context(), req)
	if err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

func (h *InventaireHandler) modifierChamp(c *gin.Context) {
	var req dto.ModifierChampRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Fail("Requête invalide : "+err.Error(), ""))
		return
	}
	if err := h.produits.ModifierChamp(c.Request.Context(), req); err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.OKMessage("Produit mis à jour."))
}

func (h *InventaireHandler) supprimerProduit(c *gin.Context) {
	id := sanitize.Entier(c.PostForm("id"), 0)
	if err := h.produits.Supprimer(c.Request.Context(), uint(id)); err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.OKMessage("Produit supprimé."))
}

func (h *InventaireHandler) obtenirStats(c *gin.Context) {
	resp, err := h.produits.Stats(c.Request.Context())
	if err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

func (h *InventaireHandler) affecterTermes(c *gin.Context) {
	var req dto.AffecterTermesRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.Fail("Requête invalide : "+err.Error(), ""))
		return
	}
	resp, err := h.produits.AffecterTermes(c.Request.Context(), req)
	if err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

// ── Taxonomies ───────────────────────────────────────────────────────────────

func (h *InventaireHandler) listerTaxonomies(c *gin.Context) {
	resp, err := h.taxonomies.ListerTout(c.Request.Context())
	if err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.OK(resp))
}

func (h *InventaireHandler) enregistrerCategorie(c *gin.Context) {
	var req dto.EnregistrerCategorieRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.taxonomies.EnregistrerCategorie(c.Request.Context(), req)
	if err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.Envelope{Success: true, Message: "Catégorie enregistrée.", Data: resp})
}

func (h *InventaireHandler) supprimerCategorie(c *gin.Context) {
	id := sanitize.Entier(c.PostForm("id"), 0)
	if err := h.taxonomies.SupprimerCategorie(c.Request.Context(), uint(id)); err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.OKMessage("Catégorie supprimée."))
}

func (h *InventaireHandler) enregistrerTag(c *gin.Context) {
	var req dto.EnregistrerTagRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.taxonomies.EnregistrerTag(c.Request.Context(), req)
	if err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.Envelope{Success: true, Message: "Tag enregistré.", Data: resp})
}

func (h *InventaireHandler) supprimerTag(c *gin.Context) {
	id := sanitize.Entier(c.PostForm("id"), 0)
	if err := h.taxonomies.SupprimerTag(c.Request.Context(), uint(id)); err != nil {
		repondreErreur(c, err, h.debug)
		return
	}
	c.JSON(http.StatusOK, apierror.OKMessage("Tag supprimé."))
}
