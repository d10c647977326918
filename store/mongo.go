package store

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"cleanup-be/models"
)

const (
	mongoLogPrefix = "mongo"

	RequestCollection = "cleanupRequests"
	UserCollection    = "users"
)

var (
	ErrRequestNotFound   = errors.New("cleanup request not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateEmail    = errors.New("user with this email already exists")
	ErrInvalidResetToken = errors.New("password reset token is invalid or has expired")
)

// Store - every persistence operation the API needs
type Store interface {
	CleanupRequestStore
	UserStore
	Pinger
	Closer
}

// CleanupRequestStore - cleanup request operations
type CleanupRequestStore interface {
	CreateRequest(ctx context.Context, r *models.CleanupRequest) error
	GetRequest(ctx context.Context, id primitive.ObjectID) (*models.CleanupRequest, error)
	SearchRequests(ctx context.Context, q models.SearchQuery, page Page) ([]models.CleanupRequest, int64, error)
	ListRequestsBySubmitter(ctx context.Context, userID primitive.ObjectID) ([]models.CleanupRequest, error)
	SaveRequest(ctx context.Context, r *models.CleanupRequest) error
	DeleteRequest(ctx context.Context, id primitive.ObjectID) error
	RequestStats(ctx context.Context, submittedBy *primitive.ObjectID, now time.Time) (*models.RequestStats, error)
}

// UserStore - account operations
type UserStore interface {
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, tokenHash string) (*models.User, error)
	ListUsers(ctx context.Context, status models.UserStatus) ([]models.User, error)
	SaveUser(ctx context.Context, u *models.User) error
	IncrementRequestsCount(ctx context.Context, id primitive.ObjectID) error
	DeleteUser(ctx context.Context, id primitive.ObjectID) error
	UserStats(ctx context.Context, now time.Time) (*models.UserStats, error)
}

// Closer - close db connection
type Closer interface {
	Close()
}

// Pinger - ping database
type Pinger interface {
	Ping(ctx context.Context) error
}

// Page selects a window of a sorted result. A zero Limit returns everything.
type Page struct {
	Skip  int64
	Limit int64
}

type mongoDB struct {
	client   *mongo.Client
	database string
}

// NewMongoStore - return mongo db operations
func NewMongoStore(client *mongo.Client, database string) Store {
	return &mongoDB{
		client:   client,
		database: database,
	}
}

func (m *mongoDB) collection(name string) *mongo.Collection {
	return m.client.Database(m.database).Collection(name)
}

// Ping - ping mongo db
func (m *mongoDB) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, nil)
}

// Close - close mongo db connections
func (m *mongoDB) Close() {
	log.WithField("prefix", mongoLogPrefix).Info("closing mongo db connections")
	_ = m.client.Disconnect(context.Background())
}
