package pokedex

import (
	"context"
	"errors"
)

// PokemonUpdate is a partial update of a catalog entry. Nil fields are left
// untouched; the id itself is immutable.
type PokemonUpdate struct {
	Name       *Name     `json:"name"`
	Type       *[]string `json:"type"`
	Stats      *Stats    `json:"stats"`
	Image      *string   `json:"image"`
	Evolutions *[]int    `json:"evolutions"`
}

// PokemonRepository defines catalog persistence. Implementations must keep
// the id space dense: Delete removes an entry and decrements every id
// strictly greater than the deleted one by exactly 1.
type PokemonRepository interface {
	// List returns a skip/limit window of the catalog ordered by id.
	List(ctx context.Context, skip, limit int) ([]*Pokemon, error)

	// Count returns the total number of entries.
	Count(ctx context.Context) (int64, error)

	// GetByID returns the entry with the given id, or ErrPokemonNotFound.
	GetByID(ctx context.Context, id int) (*Pokemon, error)

	// Create inserts the entry under its caller-supplied id and returns
	// ErrPokemonExists if that id is already taken.
	Create(ctx context.Context, p *Pokemon) error

	// Update applies a partial update to the entry with the given id and
	// returns the updated entry, or ErrPokemonNotFound.
	Update(ctx context.Context, id int, upd *PokemonUpdate) (*Pokemon, error)

	// Delete removes the entry with the given id, renumbers the ids above
	// it and returns the removed entry, or ErrPokemonNotFound with the
	// catalog untouched. The remove and the renumber are two store
	// operations without an enclosing transaction; deletes racing each
	// other can observe a partially renumbered catalog.
	Delete(ctx context.Context, id int) (*Pokemon, error)
}

// Domain-level errors returned by the repository.
var (
	ErrPokemonNotFound = errors.New("pokemon not found")
	ErrPokemonExists   = errors.New("pokemon with this id already exists")
)
