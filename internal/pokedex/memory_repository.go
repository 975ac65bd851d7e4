package pokedex

import (
	"context"
	"sort"
	"sync"
)

// MemoryPokemonRepo is a threadsafe in-memory PokemonRepository useful for
// tests. It applies the same id-renumbering semantics as the MongoDB backend.
type MemoryPokemonRepo struct {
	mu       sync.RWMutex
	pokemons map[int]*Pokemon
}

// NewMemoryPokemonRepo returns an empty repository.
func NewMemoryPokemonRepo() *MemoryPokemonRepo {
	return &MemoryPokemonRepo{pokemons: make(map[int]*Pokemon)}
}

func (r *MemoryPokemonRepo) sortedIDs() []int {
	ids := make([]int, 0, len(r.pokemons))
	for id := range r.pokemons {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// List returns a skip/limit window ordered by id.
func (r *MemoryPokemonRepo) List(ctx context.Context, skip, limit int) ([]*Pokemon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := r.sortedIDs()
	result := []*Pokemon{}
	for i, id := range ids {
		if i < skip {
			continue
		}
		if len(result) >= limit {
			break
		}
		clone := *r.pokemons[id]
		result = append(result, &clone)
	}
	return result, nil
}

// Count returns the number of entries.
func (r *MemoryPokemonRepo) Count(ctx context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.pokemons)), nil
}

// GetByID returns the entry with the given id.
func (r *MemoryPokemonRepo) GetByID(ctx context.Context, id int) (*Pokemon, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.pokemons[id]
	if !ok {
		return nil, ErrPokemonNotFound
	}
	clone := *p
	return &clone, nil
}

// Create inserts the entry if its id is free.
func (r *MemoryPokemonRepo) Create(ctx context.Context, p *Pokemon) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.pokemons[p.ID]; exists {
		return ErrPokemonExists
	}
	clone := *p
	r.pokemons[p.ID] = &clone
	return nil
}

// Update applies a partial update to an existing entry.
func (r *MemoryPokemonRepo) Update(ctx context.Context, id int, upd *PokemonUpdate) (*Pokemon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pokemons[id]
	if !ok {
		return nil, ErrPokemonNotFound
	}

	if upd.Name != nil {
		p.Name = *upd.Name
	}
	if upd.Type != nil {
		p.Type = *upd.Type
	}
	if upd.Stats != nil {
		p.Stats = *upd.Stats
	}
	if upd.Image != nil {
		p.Image = *upd.Image
	}
	if upd.Evolutions != nil {
		p.Evolutions = *upd.Evolutions
	}

	clone := *p
	return &clone, nil
}

// Delete removes the entry and decrements every id above it by 1.
func (r *MemoryPokemonRepo) Delete(ctx context.Context, id int) (*Pokemon, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deleted, ok := r.pokemons[id]
	if !ok {
		return nil, ErrPokemonNotFound
	}
	delete(r.pokemons, id)

	for _, oldID := range r.sortedIDs() {
		if oldID <= id {
			continue
		}
		p := r.pokemons[oldID]
		delete(r.pokemons, oldID)
		p.ID = oldID - 1
		r.pokemons[p.ID] = p
	}

	clone := *deleted
	return &clone, nil
}
