package pokedex

import (
	"errors"
	"fmt"
	"strings"
)

// Types is the closed set of elemental types, in schema order. Type sequences
// on a pokemon are ordered: the first entry is the primary type.
var Types = []string{
	"fire", "water", "grass", "electric", "ice", "fighting",
	"poison", "ground", "flying", "psychic", "bug", "rock",
	"ghost", "dragon", "dark", "steel", "fairy", "normal",
}

var typeSet = func() map[string]struct{} {
	s := make(map[string]struct{}, len(Types))
	for _, t := range Types {
		s[t] = struct{}{}
	}
	return s
}()

// Name holds the localized labels of a pokemon. Only the English label is
// mandatory.
type Name struct {
	English  string `json:"english" bson:"english"`
	Japanese string `json:"japanese,omitempty" bson:"japanese,omitempty"`
	Chinese  string `json:"chinese,omitempty" bson:"chinese,omitempty"`
	French   string `json:"french,omitempty" bson:"french,omitempty"`
}

// Stats are the six base attributes.
type Stats struct {
	HP             int `json:"hp" bson:"hp"`
	Attack         int `json:"attack" bson:"attack"`
	Defense        int `json:"defense" bson:"defense"`
	SpecialAttack  int `json:"specialAttack" bson:"specialAttack"`
	SpecialDefense int `json:"specialDefense" bson:"specialDefense"`
	Speed          int `json:"speed" bson:"speed"`
}

// Pokemon is a catalog entry. Ids are dense: after any delete the live ids
// form a contiguous range starting at 1.
type Pokemon struct {
	ID         int      `json:"id" bson:"id"`
	Name       Name     `json:"name" bson:"name"`
	Type       []string `json:"type" bson:"type"`
	Stats      Stats    `json:"stats" bson:"stats"`
	Image      string   `json:"image,omitempty" bson:"image,omitempty"`
	Evolutions []int    `json:"evolutions" bson:"evolutions"`
}

// Validation errors.
var (
	ErrMissingID   = errors.New("pokemon id must be a positive integer")
	ErrMissingName = errors.New("pokemon english name is required")
)

// NormalizeTypes lowercases the given type names and checks each against the
// closed set, preserving order.
func NormalizeTypes(types []string) ([]string, error) {
	normalized := make([]string, 0, len(types))
	for _, t := range types {
		lower := strings.ToLower(t)
		if _, ok := typeSet[lower]; !ok {
			return nil, fmt.Errorf("unknown pokemon type %q", t)
		}
		normalized = append(normalized, lower)
	}
	return normalized, nil
}

// Validate checks the entry and normalizes its type list in place.
// Evolutions are weak references and are not checked for existence.
func (p *Pokemon) Validate() error {
	if p.ID <= 0 {
		return ErrMissingID
	}
	if p.Name.English == "" {
		return ErrMissingName
	}
	types, err := NormalizeTypes(p.Type)
	if err != nil {
		return err
	}
	p.Type = types
	return nil
}
