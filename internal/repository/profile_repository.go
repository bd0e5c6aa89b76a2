package repository

import (
	"context"
	"errors"
	"fmt"

	"devconnector-be/internal/entities"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ProfileRepository defines the interface for profile document operations
type ProfileRepository interface {
	Create(ctx context.Context, profile *entities.Profile) (*entities.Profile, error)
	FindByUserID(ctx context.Context, userID primitive.ObjectID) (*entities.Profile, error)
	FindAll(ctx context.Context) ([]*entities.Profile, error)
	UpdateFields(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*entities.Profile, error)
	Replace(ctx context.Context, profile *entities.Profile) error
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

type profileRepository struct {
	coll *mongo.Collection
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *mongo.Database) ProfileRepository {
	return &profileRepository{coll: db.Collection("profiles")}
}

// Create inserts a new profile document
func (r *profileRepository) Create(ctx context.Context, profile *entities.Profile) (*entities.Profile, error) {
	if _, err := r.coll.InsertOne(ctx, profile); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	return profile, nil
}

// FindByUserID finds a profile by its owning user id
func (r *profileRepository) FindByUserID(ctx context.Context, userID primitive.ObjectID) (*entities.Profile, error) {
	var profile entities.Profile
	err := r.coll.FindOne(ctx, bson.M{"user": userID}).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	return &profile, nil
}

// FindAll returns every profile document
func (r *profileRepository) FindAll(ctx context.Context) ([]*entities.Profile, error) {
	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []*entities.Profile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode profiles: %w", err)
	}
	return profiles, nil
}

// UpdateFields applies a sparse $set to an existing profile and returns the
// updated document. Fields absent from the set keep their prior values.
func (r *profileRepository) UpdateFields(ctx context.Context, userID primitive.ObjectID, fields bson.M) (*entities.Profile, error) {
	after := options.After
	opts := options.FindOneAndUpdate().SetReturnDocument(after)

	var profile entities.Profile
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"user": userID}, bson.M{"$set": fields}, opts).Decode(&profile)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return &profile, nil
}

// Replace rewrites the whole profile document. Sub-array mutations go
// through here so the stored entry order always matches what the caller
// assembled in memory.
func (r *profileRepository) Replace(ctx context.Context, profile *entities.Profile) error {
	result, err := r.coll.ReplaceOne(ctx, bson.M{"_id": profile.ID}, profile)
	if err != nil {
		return fmt.Errorf("failed to replace profile: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUserID removes the profile owned by the given user. Removing an
// absent profile is not an error.
func (r *profileRepository) DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error {
	if _, err := r.coll.DeleteOne(ctx, bson.M{"user": userID}); err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
