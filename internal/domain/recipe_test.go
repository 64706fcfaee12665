package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewRecipeRecord_StampsAndDefaults(t *testing.T) {
	now := time.Date(2024, 3, 15, 18, 30, 5, 0, time.UTC)
	detail := RecipeDetail{
		ID:             640864,
		Title:          "Pasta Carbonara",
		ReadyInMinutes: 25,
		Image:          "https://img.example.com/640864.jpg",
		SourceURL:      "https://example.com/carbonara",
		Instructions:   "Boil, fry, mix.",
	}

	rec := NewRecipeRecord(detail, `[]`, `[]`, now)

	if rec.ID != 640864 || rec.Title != "Pasta Carbonara" || rec.ReadyInMinutes != 25 {
		t.Fatalf("scalar fields not carried: %+v", rec)
	}
	if rec.Favourite {
		t.Fatalf("favourite must default to false when detail carries no flag")
	}
	if rec.UpdatedAt != "2024-03-15T18:30:05" {
		t.Fatalf("updated_at = %q; want canonical local date-time", rec.UpdatedAt)
	}
	if rec.AnalyzedInstructions != `[]` || rec.ExtendedIngredients != `[]` {
		t.Fatalf("encoded blobs not carried: %+v", rec)
	}
}

func TestNewRecipeRecord_KeepsExplicitFavourite(t *testing.T) {
	fav := true
	rec := NewRecipeRecord(RecipeDetail{ID: 1, Favourite: &fav}, `[]`, `[]`, time.Now())
	if !rec.Favourite {
		t.Fatalf("explicit favourite flag was dropped")
	}
}

func TestRecipeRecord_ToRecipeDetail(t *testing.T) {
	rec := RecipeRecord{
		ID:             636581,
		Title:          "Penne Arrabbiata",
		ReadyInMinutes: 30,
		Image:          "img.jpg",
		SourceURL:      "https://example.com/arrabbiata",
		Instructions:   "Cook it.",
		Favourite:      true,
		UpdatedAt:      "2024-03-15T18:30:05",
	}
	instructions := []Instruction{{Name: "", Steps: []InstructionStep{{Number: 1, Step: "Boil water."}}}}
	ingredients := []Ingredient{{ID: 11215, Original: "3 cloves garlic"}}

	d := rec.ToRecipeDetail(instructions, ingredients)

	if d.ID != rec.ID || d.Title != rec.Title || d.ReadyInMinutes != rec.ReadyInMinutes {
		t.Fatalf("scalar fields not carried: %+v", d)
	}
	if len(d.AnalyzedInstructions) != 1 || len(d.ExtendedIngredients) != 1 {
		t.Fatalf("decoded lists not attached: %+v", d)
	}
	if d.Favourite == nil || !*d.Favourite {
		t.Fatalf("favourite flag must be populated from the record")
	}
}

func TestRecipeDetail_DecodesRemotePayloadShape(t *testing.T) {
	// Field names as the remote API sends them; unknown fields ignored.
	payload := `{
		"id": 649293,
		"title": "Lasagna",
		"readyInMinutes": 90,
		"image": "https://img.example.com/649293.jpg",
		"sourceUrl": "https://example.com/lasagna",
		"instructions": "Layer and bake.",
		"analyzedInstructions": [{"name":"","steps":[{"number":1,"step":"Preheat oven.","ingredients":[],"equipment":[{"id":404784,"name":"oven","localizedName":"oven","image":"oven.jpg"}]}]}],
		"extendedIngredients": [{"id":1077,"original":"2 cups milk","aisle":"Milk, Eggs, Other Dairy"}],
		"cheap": false,
		"veryPopular": true
	}`

	var d RecipeDetail
	if err := json.Unmarshal([]byte(payload), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.ID != 649293 || d.ReadyInMinutes != 90 || d.SourceURL != "https://example.com/lasagna" {
		t.Fatalf("remote payload decoded wrong: %+v", d)
	}
	if len(d.AnalyzedInstructions) != 1 || len(d.AnalyzedInstructions[0].Steps) != 1 {
		t.Fatalf("analyzed instructions decoded wrong: %+v", d.AnalyzedInstructions)
	}
	if got := d.AnalyzedInstructions[0].Steps[0].Equipment[0].Name; got != "oven" {
		t.Fatalf("equipment name = %q", got)
	}
	if len(d.ExtendedIngredients) != 1 || d.ExtendedIngredients[0].Original != "2 cups milk" {
		t.Fatalf("ingredients decoded wrong: %+v", d.ExtendedIngredients)
	}
	if d.Favourite != nil {
		t.Fatalf("remote payload must leave favourite unset")
	}
}

func TestRecipeDetail_FavouriteOmittedWhenNil(t *testing.T) {
	b, err := json.Marshal(RecipeDetail{ID: 1, Title: "x"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := m["favourite"]; ok {
		t.Fatalf("nil favourite must be omitted from JSON: %s", b)
	}
}
