package pokedex

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPokemonRepo implements PokemonRepository on a MongoDB collection.
type MongoPokemonRepo struct {
	collection *mongo.Collection
	ctxTimeout time.Duration
}

// NewMongoPokemonRepo wraps the given collection and ensures the unique id
// index that backs the Create conflict check.
func NewMongoPokemonRepo(collection *mongo.Collection) (*MongoPokemonRepo, error) {
	repo := &MongoPokemonRepo{
		collection: collection,
		ctxTimeout: 5 * time.Second,
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (m *MongoPokemonRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.ctxTimeout)
	defer cancel()
	idIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("pokemon_id_unique"),
	}
	_, err := m.collection.Indexes().CreateOne(ctx, idIdx)
	return err
}

// List implements PokemonRepository.
func (m *MongoPokemonRepo) List(ctx context.Context, skip, limit int) ([]*Pokemon, error) {
	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "id", Value: 1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))

	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	pokemons := []*Pokemon{}
	if err := cursor.All(ctx, &pokemons); err != nil {
		return nil, err
	}
	return pokemons, nil
}

// Count implements PokemonRepository.
func (m *MongoPokemonRepo) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()
	return m.collection.CountDocuments(ctx, bson.M{})
}

// GetByID implements PokemonRepository.
func (m *MongoPokemonRepo) GetByID(ctx context.Context, id int) (*Pokemon, error) {
	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	var p Pokemon
	err := m.collection.FindOne(ctx, bson.M{"id": id}).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPokemonNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create implements PokemonRepository.
func (m *MongoPokemonRepo) Create(ctx context.Context, p *Pokemon) error {
	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	_, err := m.collection.InsertOne(ctx, p)
	if mongo.IsDuplicateKeyError(err) {
		return ErrPokemonExists
	}
	return err
}

// Update implements PokemonRepository.
func (m *MongoPokemonRepo) Update(ctx context.Context, id int, upd *PokemonUpdate) (*Pokemon, error) {
	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Type != nil {
		set["type"] = *upd.Type
	}
	if upd.Stats != nil {
		set["stats"] = *upd.Stats
	}
	if upd.Image != nil {
		set["image"] = *upd.Image
	}
	if upd.Evolutions != nil {
		set["evolutions"] = *upd.Evolutions
	}
	if len(set) == 0 {
		return m.GetByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	res := m.collection.FindOneAndUpdate(ctx,
		bson.M{"id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var p Pokemon
	err := res.Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPokemonNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete implements PokemonRepository. The removal and the id renumbering
// are two store operations; see the interface contract for the race caveat.
func (m *MongoPokemonRepo) Delete(ctx context.Context, id int) (*Pokemon, error) {
	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	res := m.collection.FindOneAndDelete(ctx, bson.M{"id": id})

	var deleted Pokemon
	err := res.Decode(&deleted)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPokemonNotFound
	}
	if err != nil {
		return nil, err
	}

	// Shift every id above the deleted one down by 1 so the id space stays
	// contiguous from 1.
	_, err = m.collection.UpdateMany(ctx,
		bson.M{"id": bson.M{"$gt": id}},
		bson.M{"$inc": bson.M{"id": -1}},
	)
	if err != nil {
		return nil, err
	}

	return &deleted, nil
}
