package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"cleanup-be/models"
)

// CreateUser inserts a user; a taken email yields ErrDuplicateEmail
func (m *mongoDB) CreateUser(ctx context.Context, u *models.User) error {
	c := m.collection(UserCollection)

	count, err := c.CountDocuments(ctx, bson.M{"email": u.Email})
	if err != nil {
		return fmt.Errorf("check existing user: %w", err)
	}
	if count > 0 {
		return ErrDuplicateEmail
	}

	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	if _, err := c.InsertOne(ctx, u); err != nil {
		// lost a race against a concurrent registration
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (m *mongoDB) findUser(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := m.collection(UserCollection).FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (m *mongoDB) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return m.findUser(ctx, bson.M{"_id": id})
}

// GetUserByEmail matches the email case-insensitively
func (m *mongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return m.findUser(ctx, bson.M{"email": models.NormalizeEmail(email)})
}

// GetUserByResetToken looks a user up by the digest of a reset token. Expiry
// is checked by the caller.
func (m *mongoDB) GetUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error) {
	if tokenHash == "" {
		return nil, ErrInvalidResetToken
	}
	u, err := m.findUser(ctx, bson.M{"resetPasswordToken": tokenHash})
	if errors.Is(err, ErrUserNotFound) {
		return nil, ErrInvalidResetToken
	}
	return u, err
}

// ListUsers returns users, newest first, optionally restricted to one status
func (m *mongoDB) ListUsers(ctx context.Context, status models.UserStatus) ([]models.User, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "registeredAt", Value: -1}})
	cursor, err := m.collection(UserCollection).Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	defer cursor.Close(ctx)

	users := make([]models.User, 0)
	if err := cursor.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

// SaveUser replaces the stored account document
func (m *mongoDB) SaveUser(ctx context.Context, u *models.User) error {
	res, err := m.collection(UserCollection).ReplaceOne(ctx, bson.M{"_id": u.ID}, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("replace user: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// IncrementRequestsCount bumps the number of requests a user has submitted
func (m *mongoDB) IncrementRequestsCount(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.collection(UserCollection).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"requestsCount": 1}},
	)
	if err != nil {
		return fmt.Errorf("increment requests count: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeleteUser removes an account permanently. Requests it submitted are kept.
func (m *mongoDB) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	res, err := m.collection(UserCollection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (m *mongoDB) UserStats(ctx context.Context, now time.Time) (*models.UserStats, error) {
	cursor, err := m.collection(UserCollection).Aggregate(ctx, UserStatsPipeline(now))
	if err != nil {
		return nil, fmt.Errorf("aggregate user stats: %w", err)
	}
	defer cursor.Close(ctx)

	var facets []userFacets
	if err := cursor.All(ctx, &facets); err != nil {
		return nil, fmt.Errorf("decode user stats: %w", err)
	}
	if len(facets) == 0 {
		return models.NewUserStats(), nil
	}
	return facets[0].toStats(), nil
}
