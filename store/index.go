package store

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Indexes returns the index models of every collection, keyed by collection name
func Indexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UserCollection: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "resetPasswordToken", Value: 1}},
				Options: options.Index().SetSparse(true),
			},
		},
		RequestCollection: {
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "submittedBy", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
	}
}

// EnsureIndexes creates the indexes the queries rely on. The unique email
// index backs ErrDuplicateEmail.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	for name, idx := range Indexes() {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return err
		}
		log.WithField("prefix", mongoLogPrefix).Debugf("ensured %d indexes on %s", len(idx), name)
	}
	return nil
}
