package auth

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoUserRepo implements UserRepository on a MongoDB collection.
type MongoUserRepo struct {
	collection *mongo.Collection
	ctxTimeout time.Duration
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	Name         string             `bson:"name"`
	PasswordHash string             `bson:"password"`
	Role         string             `bson:"role"`
	Score        int                `bson:"score"`
	CreatedAt    time.Time          `bson:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt"`
}

func (d *userDoc) toUser() *User {
	return &User{
		ID:           d.ID.Hex(),
		Email:        d.Email,
		Name:         d.Name,
		PasswordHash: d.PasswordHash,
		Role:         Role(d.Role),
		Score:        d.Score,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// NewMongoUserRepo wraps the given collection and ensures the unique email
// index the registration path relies on.
func NewMongoUserRepo(collection *mongo.Collection) (*MongoUserRepo, error) {
	repo := &MongoUserRepo{
		collection: collection,
		ctxTimeout: 5 * time.Second,
	}
	if err := repo.ensureIndexes(); err != nil {
		return nil, err
	}
	return repo, nil
}

func (m *MongoUserRepo) ensureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), m.ctxTimeout)
	defer cancel()
	emailIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	}
	_, err := m.collection.Indexes().CreateOne(ctx, emailIdx)
	return err
}

// Create implements UserRepository.
func (m *MongoUserRepo) Create(ctx context.Context, email, name, passwordHash string, role Role) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	now := time.Now()
	doc := userDoc{
		Email:        strings.ToLower(email),
		Name:         name,
		PasswordHash: passwordHash,
		Role:         string(role),
		Score:        0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	res, err := m.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrUserExists
	}
	if err != nil {
		return nil, err
	}

	doc.ID = res.InsertedID.(primitive.ObjectID)
	return doc.toUser(), nil
}

// GetByEmail implements UserRepository.
func (m *MongoUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	var doc userDoc
	err := m.collection.FindOne(ctx, bson.M{"email": strings.ToLower(email)}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}

// GetByID implements UserRepository.
func (m *MongoUserRepo) GetByID(ctx context.Context, id string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	var doc userDoc
	err = m.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}

// SetScore implements UserRepository.
func (m *MongoUserRepo) SetScore(ctx context.Context, id string, score int) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, m.ctxTimeout)
	defer cancel()

	res := m.collection.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"score": score, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)

	var doc userDoc
	err = res.Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toUser(), nil
}
