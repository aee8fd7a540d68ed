package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────
// Product requests arrive as HTML-form fields (the dashboard posts multipart
// forms), so every value is bound as a raw string and normalized by the
// sanitize package: decimals accept both "10,50" and "10.50", id lists accept
// JSON arrays or comma-separated strings.

type AjouterProduitRequest struct {
	Nom         string `form:"nom"`
	Reference   string `form:"reference"`
	PrixAchat   string `form:"prix_achat"`
	PrixVente   string `form:"prix_vente"`
	Stock       string `form:"stock"`
	Description string `form:"description"`
	Casier      string `form:"casier"`
	Notes       string `form:"notes"`
	DateAchat   string `form:"date_achat"` // YYYY-MM-DD
	ACompleter  string `form:"a_completer"`
	Categories  string `form:"categories"`
	Tags        string `form:"tags"`
}

// ModifierChampRequest mutates a single allow-listed column on one product.
type ModifierChampRequest struct {
	ID    string `form:"id"`
	Champ string `form:"field"`
	Value string `form:"value"`
}

type FiltreProduitsRequest struct {
	Categories string `form:"categories"`
	Tags       string `form:"tags"`
}

type AffecterTermesRequest struct {
	ProduitID  string `form:"product_id"`
	Categories string `form:"categories"`
	Tags       string `form:"tags"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProduitResponse struct {
	ID          uint                `json:"id"`
	Nom         string              `json:"nom"`
	Reference   string              `json:"reference"`
	PrixAchat   decimal.Decimal     `json:"prix_achat"`
	PrixVente   decimal.Decimal     `json:"prix_vente"`
	Stock       int                 `json:"stock"`
	Description string              `json:"description"`
	Image       *string             `json:"image"`
	Casier      *string             `json:"casier"`
	Notes       *string             `json:"notes"`
	DateAchat   *string             `json:"date_achat"`
	ACompleter  bool                `json:"a_completer"`
	AjoutePar   string              `json:"ajoute_par"`
	Categories  []CategorieResponse `json:"categories"`
	Tags        []TagResponse       `json:"tags"`
}

// StatsResponse feeds the dashboard hero counters.
type StatsResponse struct {
	TotalArticles int64           `json:"total_articles"`
	ValeurAchat   decimal.Decimal `json:"valeur_achat"`
	ValeurVente   decimal.Decimal `json:"valeur_vente"`
	MargeTotale   decimal.Decimal `json:"marge_totale"`
}

// TermesProduitResponse is returned by assign_terms with the refreshed link
// sets, name-ordered.
type TermesProduitResponse struct {
	ProduitID  uint                `json:"produit_id"`
	Categories []CategorieResponse `json:"categories"`
	Tags       []TagResponse       `json:"tags"`
}
