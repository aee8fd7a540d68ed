package dto

// ── Request DTOs ──────────────────────────────────────────────────────────────

// EnregistrerCategorieRequest inserts when ID is absent or zero, updates
// otherwise. Couleur falls back to the default palette colour when empty.
type EnregistrerCategorieRequest struct {
	ID      uint   `form:"id" json:"id"`
	Nom     string `form:"nom" json:"nom" validate:"required,max=100"`
	Couleur string `form:"couleur" json:"couleur" validate:"omitempty,hexcolor"`
	Icone   string `form:"icone" json:"icone" validate:"omitempty,max=32"`
}

type EnregistrerTagRequest struct {
	ID  uint   `form:"id" json:"id"`
	Nom string `form:"nom" json:"nom" validate:"required,max=100"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type CategorieResponse struct {
	ID      uint    `json:"id"`
	Nom     string  `json:"nom"`
	Couleur string  `json:"couleur"`
	Icone   *string `json:"icone,omitempty"`
}

type TagResponse struct {
	ID  uint   `json:"id"`
	Nom string `json:"nom"`
}

// TaxonomiesResponse is the get_taxonomies payload, both lists name-ordered.
type TaxonomiesResponse struct {
	Categories []CategorieResponse `json:"categories"`
	Tags       []TagResponse       `json:"tags"`
}
