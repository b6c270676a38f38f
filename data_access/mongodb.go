package data_access

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection     = "users"
	watchlistCollection = "watchlist_items"
	ratingsCollection   = "ratings"
)

type MongoDB struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongoDB(connectionString string, dbName string) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(connectionString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	return &MongoDB{
		client: client,
		db:     client.Database(dbName),
	}, nil
}

func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

func (m *MongoDB) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the data model relies on: a unique email
// per user, unique (user_id, movie_id) pairs for watchlist rows and ratings,
// and the movie_id / rated_at secondary indexes backing the cross-user
// aggregations.
func (m *MongoDB) EnsureIndexes(ctx context.Context) error {
	unique := options.Index().SetUnique(true)

	_, err := m.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	})
	if err != nil {
		return err
	}

	userMovie := bson.D{{Key: "user_id", Value: 1}, {Key: "movie_id", Value: 1}}

	_, err = m.Collection(watchlistCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    userMovie,
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}

	_, err = m.Collection(ratingsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: userMovie, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "movie_id", Value: 1}}},
		{Keys: bson.D{{Key: "rated_at", Value: -1}}},
	})
	return err
}
