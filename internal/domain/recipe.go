package domain

import "time"

// LocalDateTimeLayout is the canonical text form of the updated_at column:
// ISO-8601 local date-time, no offset, no fractional seconds.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// RecipeDetail is the full recipe as served by the remote API and as
// reassembled from the local store. The JSON tags match the remote payload,
// so the same type doubles as the wire shape; unknown remote fields are
// ignored on decode.
//
// Favourite is tri-state: nil when the detail came straight from the remote
// payload (the API knows nothing about favourites), otherwise the stored
// flag.
type RecipeDetail struct {
	ID                   int64         `json:"id"`
	Title                string        `json:"title"`
	ReadyInMinutes       int           `json:"readyInMinutes"`
	Image                string        `json:"image"`
	SourceURL            string        `json:"sourceUrl"`
	Instructions         string        `json:"instructions"`
	AnalyzedInstructions []Instruction `json:"analyzedInstructions"`
	ExtendedIngredients  []Ingredient  `json:"extendedIngredients"`
	Favourite            *bool         `json:"favourite,omitempty"`
}

// Instruction is one named group of ordered preparation steps. Name is often
// empty; most recipes carry a single unnamed group.
type Instruction struct {
	Name  string            `json:"name"`
	Steps []InstructionStep `json:"steps"`
}

// InstructionStep is a single numbered step. Number is 1-based but not
// necessarily contiguous and is preserved verbatim.
type InstructionStep struct {
	Number      int                     `json:"number"`
	Step        string                  `json:"step"`
	Ingredients []InstructionStepDetail `json:"ingredients"`
	Equipment   []InstructionStepDetail `json:"equipment"`
}

// InstructionStepDetail references an ingredient or piece of equipment used
// by a step. Image is a relative path segment; prefix it with the CDN base
// (see utils.IngredientImageURL) to obtain a full URL.
type InstructionStepDetail struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	LocalizedName string `json:"localizedName"`
	Image         string `json:"image"`
}

// Ingredient is one entry of a recipe's extended ingredient list. Original
// is the free-text ingredient line as written in the source recipe.
type Ingredient struct {
	ID       int64  `json:"id"`
	Original string `json:"original"`
}

// SearchResult is the lighter projection used only for search listings;
// it is never persisted.
type SearchResult struct {
	ID             int64  `json:"id"`
	Title          string `json:"title"`
	Summary        string `json:"summary"`
	Image          string `json:"image"`
	ReadyInMinutes int    `json:"readyInMinutes"`
}

// SearchResponse is the raw wrapper returned by the remote search endpoint.
type SearchResponse struct {
	Results      []SearchResult `json:"results"`
	Offset       int            `json:"offset"`
	Number       int            `json:"number"`
	TotalResults int            `json:"totalResults"`
}

// RecipeRecord is the flat persistence unit for a recipe detail. The nested
// instruction and ingredient lists are stored as encoded JSON text (see the
// codec package); UpdatedAt is kept as canonical local date-time text and is
// set explicitly at write time, never by GORM.
type RecipeRecord struct {
	ID                   int64  `json:"id"                    gorm:"primaryKey"`
	Title                string `json:"title"                 gorm:"type:text;not null"`
	ReadyInMinutes       int    `json:"ready_in_minutes"      gorm:"column:ready_in_minutes;not null"`
	Image                string `json:"image"                 gorm:"type:text"`
	SourceURL            string `json:"source_url"            gorm:"column:source_url;type:text"`
	Instructions         string `json:"instructions"          gorm:"type:text"`
	AnalyzedInstructions string `json:"analyzed_instructions" gorm:"column:analyzed_instructions;type:text;not null"`
	ExtendedIngredients  string `json:"extended_ingredients"  gorm:"column:extended_ingredients;type:text;not null"`
	Favourite            bool   `json:"favourite"             gorm:"not null;default:false"`
	UpdatedAt            string `json:"updated_at"            gorm:"column:updated_at;type:text;autoUpdateTime:false"`
}

// TableName returns the database table name for RecipeRecord.
func (RecipeRecord) TableName() string { return "recipes" }

// NewRecipeRecord builds a stored record from a fetched detail and its
// pre-encoded list blobs. Favourite defaults to false unless the detail
// carries an explicit flag; UpdatedAt is stamped with now.
func NewRecipeRecord(detail RecipeDetail, analyzedInstructions, extendedIngredients string, now time.Time) RecipeRecord {
	fav := false
	if detail.Favourite != nil {
		fav = *detail.Favourite
	}
	return RecipeRecord{
		ID:                   detail.ID,
		Title:                detail.Title,
		ReadyInMinutes:       detail.ReadyInMinutes,
		Image:                detail.Image,
		SourceURL:            detail.SourceURL,
		Instructions:         detail.Instructions,
		AnalyzedInstructions: analyzedInstructions,
		ExtendedIngredients:  extendedIngredients,
		Favourite:            fav,
		UpdatedAt:            now.Format(LocalDateTimeLayout),
	}
}

// ToRecipeDetail reassembles a domain detail from the record's scalar fields
// and the already-decoded list values.
func (r RecipeRecord) ToRecipeDetail(instructions []Instruction, ingredients []Ingredient) RecipeDetail {
	fav := r.Favourite
	return RecipeDetail{
		ID:                   r.ID,
		Title:                r.Title,
		ReadyInMinutes:       r.ReadyInMinutes,
		Image:                r.Image,
		SourceURL:            r.SourceURL,
		Instructions:         r.Instructions,
		AnalyzedInstructions: instructions,
		ExtendedIngredients:  ingredients,
		Favourite:            &fav,
	}
}
