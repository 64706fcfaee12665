// Package codec converts the nested instruction and ingredient lists of a
// recipe detail to and from the flat JSON text blobs stored in the recipes
// table. Decode never panics: any malformed input is reported as
// domain.ParseJSON.
//
// Round-trip law: Decode(Encode(x)) == x for any valid in-memory value.
package codec

import (
	"encoding/json"

	"github.com/tbourn/go-recipe-backend/internal/domain"
)

// EncodeInstructions serializes an instruction list to its storable text
// form. A nil list encodes as an empty JSON array so the stored column is
// never NULL-ish free text.
func EncodeInstructions(instructions []domain.Instruction) (string, error) {
	return encode(instructions)
}

// DecodeInstructions parses the stored text form back into an instruction
// list. Malformed input yields domain.ParseJSON.
func DecodeInstructions(s string) ([]domain.Instruction, domain.Failure) {
	return decode[domain.Instruction](s)
}

// EncodeIngredients serializes an ingredient list to its storable text form.
func EncodeIngredients(ingredients []domain.Ingredient) (string, error) {
	return encode(ingredients)
}

// DecodeIngredients parses the stored text form back into an ingredient
// list. Malformed input yields domain.ParseJSON.
func DecodeIngredients(s string) ([]domain.Ingredient, domain.Failure) {
	return decode[domain.Ingredient](s)
}

func encode[T any](list []T) (string, error) {
	if list == nil {
		list = []T{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decode[T any](s string) ([]T, domain.Failure) {
	var out []T
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, domain.ParseJSON
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
