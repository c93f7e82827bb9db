/* match_results.go
 * Contains the methods for interacting with the match_results collection
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lck-pickems/api/bracket"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchMatchResults retrieves the recorded results of the tournament. No document yet means no results.
// Preconditions: Receives context
// Postconditions: Returns the ResultMap, or an error if the lookup fails
func (s *Store) FetchMatchResults(ctx context.Context) (bracket.ResultMap, error) {
	var doc ResultsDoc
	err := s.Collections.MatchResults.FindOne(ctx, bson.D{{Key: "tournament", Value: s.Tournament}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return bracket.ResultMap{}, nil
		}
		return nil, fmt.Errorf("error fetching results from db: %w", err)
	}

	return doc.ToResultMap(), nil
}

// StoreMatchResult records the winner of one entry key, creating the results document when it does not exist
func (s *Store) StoreMatchResult(ctx context.Context, id bracket.MatchID, winner bracket.Team) error {
	if !winner.Determined() {
		return fmt.Errorf("winner for %s cannot be empty", id)
	}

	filter := bson.M{"tournament": s.Tournament}
	update := bson.M{
		"$set": bson.M{
			"results." + string(id): string(winner),
			"updated_at":            time.Now().Unix(),
		},
	}
	_, err := s.Collections.MatchResults.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to store match result: %w", err)
	}
	return nil
}

// ClearMatchResult removes the recorded winner of one entry key
func (s *Store) ClearMatchResult(ctx context.Context, id bracket.MatchID) error {
	filter := bson.M{"tournament": s.Tournament}
	update := bson.M{
		"$unset": bson.M{"results." + string(id): ""},
		"$set":   bson.M{"updated_at": time.Now().Unix()},
	}
	_, err := s.Collections.MatchResults.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to clear match result: %w", err)
	}
	return nil
}
