package auth

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/btcpulse/pkg/auth"
	mongox "github.com/dmitrymomot/btcpulse/pkg/mongo"
)

// MongoStorage implements auth.Storage on a single collection.
type MongoStorage struct {
	coll         *mongo.Collection
	historyLimit int
}

var _ auth.Storage = (*MongoStorage)(nil)

// NewMongoStorage returns storage bound to cfg.Collection in db. Call
// EnsureIndexes once at startup.
func NewMongoStorage(db *mongo.Database, cfg Config) *MongoStorage {
	name := cfg.Collection
	if name == "" {
		name = "users"
	}
	return &MongoStorage{
		coll:         db.Collection(name),
		historyLimit: max(cfg.HistoryLimit, 0),
	}
}

// EnsureIndexes creates the unique email and username indexes and the
// createdAt index used by ListUsers.
func (s *MongoStorage) EnsureIndexes(ctx context.Context) error {
	_, err := s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})
	if err != nil {
		return fmt.Errorf("create user indexes: %w", err)
	}
	return nil
}

func (s *MongoStorage) CreateUser(ctx context.Context, user *auth.User) error {
	if _, err := s.coll.InsertOne(ctx, user); err != nil {
		if mongox.IsDuplicateKey(err) {
			return errors.Join(auth.ErrUserExists, err)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *MongoStorage) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	return s.findOne(ctx, bson.D{{Key: "_id", Value: id}})
}

func (s *MongoStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return s.findOne(ctx, bson.D{{Key: "email", Value: email}})
}

func (s *MongoStorage) FindByEmailOrUsername(ctx context.Context, email, username string) (*auth.User, error) {
	return s.findOne(ctx, bson.D{{Key: "$or", Value: bson.A{
		bson.D{{Key: "email", Value: email}},
		bson.D{{Key: "username", Value: username}},
	}}})
}

// RecordLogin sets lastLogin (without location) and appends event to
// loginHistory, trimming the history to the configured limit.
func (s *MongoStorage) RecordLogin(ctx context.Context, id string, event auth.LoginEvent) error {
	last := event
	last.Location = nil

	push := bson.D{{Key: "$each", Value: bson.A{event}}}
	if s.historyLimit > 0 {
		push = append(push, bson.E{Key: "$slice", Value: -s.historyLimit})
	}

	res, err := s.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: id}},
		bson.D{
			{Key: "$set", Value: bson.D{
				{Key: "lastLogin", Value: last},
				{Key: "updatedAt", Value: event.Timestamp},
			}},
			{Key: "$push", Value: bson.D{{Key: "loginHistory", Value: push}}},
		},
	)
	if err != nil {
		return fmt.Errorf("record login: %w", err)
	}
	if res.MatchedCount == 0 {
		return auth.ErrUserNotFound
	}
	return nil
}

// ListUsers returns every user newest first, without the password hash or
// login history fields.
func (s *MongoStorage) ListUsers(ctx context.Context) ([]auth.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetProjection(bson.D{
			{Key: "password", Value: 0},
			{Key: "loginHistory", Value: 0},
		})

	cur, err := s.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	users := make([]auth.User, 0)
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *MongoStorage) findOne(ctx context.Context, filter bson.D) (*auth.User, error) {
	var u auth.User
	if err := s.coll.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, auth.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}
