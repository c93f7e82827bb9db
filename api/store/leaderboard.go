/* leaderboard.go
 * Contains the methods for interacting with the leaderboard collection
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// FetchLeaderboard returns the last leaderboard snapshot stored for the tournament
// Preconditions: Receives context
// Postconditions: Returns the Leaderboard, mongo.ErrNoDocuments if none was generated yet, or an error if it occurs
func (s *Store) FetchLeaderboard(ctx context.Context) (Leaderboard, error) {
	var res Leaderboard
	err := s.Collections.Leaderboard.FindOne(ctx, bson.D{{Key: "tournament", Value: s.Tournament}}).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Leaderboard{}, err
		}
		return Leaderboard{}, fmt.Errorf("failed to fetch leaderboard from database: %w", err)
	}

	return res, nil
}

// StoreLeaderboard updates the leaderboard stored in the DB
// Preconditions: Receives context and the Leaderboard value to be stored
// Postconditions: Updates the leaderboard collection in Mongo and returns nil, or an error if it occurs
func (s *Store) StoreLeaderboard(ctx context.Context, leaderboard Leaderboard) error {
	if leaderboard.Tournament == "" {
		return fmt.Errorf("leaderboard is empty")
	}

	filter := bson.M{"tournament": s.Tournament}

	// Attempt to find an existing document
	var res Leaderboard
	err := s.Collections.Leaderboard.FindOne(ctx, filter).Decode(&res)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing record failed: %w", err)
	}

	// Perform insert or update
	if notFound {
		_, err := s.Collections.Leaderboard.InsertOne(ctx, leaderboard)
		if err != nil {
			return fmt.Errorf("leaderboard insert failed: %w", err)
		}
		return nil
	}

	update := bson.D{{Key: "$set", Value: leaderboard}}
	_, err = s.Collections.Leaderboard.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("leaderboard update failed: %w", err)
	}
	return nil
}
