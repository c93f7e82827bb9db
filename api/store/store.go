/* store.go
 * Contains the store struct and NewStore function. The methods for this package were split into three files:
 * match_results, user_predictions and leaderboard. Each of these files contain methods for interacting with that
 * part of the database
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collections holds the collections used by the store
type Collections struct {
	Predictions  *mongo.Collection
	MatchResults *mongo.Collection
	Leaderboard  *mongo.Collection
}

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Tournament  string
	Collections Collections
}

// Function for initialising Store. Connects to mongo and sets the collections
// Preconditions: Receives context, and strings containing dbName, mongoURI and the tournament every document is keyed by
// Postconditions: Returns pointer to the Store object, or error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string, tournament string) (*Store, error) {
	if tournament == "" {
		return nil, fmt.Errorf("tournament cannot be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	return newStore(client, client.Database(dbName), tournament), nil
}

func newStore(client *mongo.Client, db *mongo.Database, tournament string) *Store {
	return &Store{
		Client:     client,
		Database:   db,
		Tournament: tournament,
		Collections: Collections{
			Predictions:  db.Collection("user_predictions"),
			MatchResults: db.Collection("match_results"),
			Leaderboard:  db.Collection("leaderboard"),
		},
	}
}

// Disconnect closes the mongo client
func (s *Store) Disconnect(ctx context.Context) error {
	if s.Client == nil {
		return nil
	}
	return s.Client.Disconnect(ctx)
}
