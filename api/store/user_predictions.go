/* user_predictions.go
 * Contains the methods for interacting with the user_predictions collection
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lck-pickems/api/logic"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StoreUserPrediction stores a discord user's prediction in the db
// Preconditions: Receives context and the Prediction, which must carry the user's id
// Postconditions: Stores or updates the user's prediction stored in the db, or returns an error if the operations was unsuccessful
func (s *Store) StoreUserPrediction(ctx context.Context, prediction logic.Prediction) error {
	if prediction.UserID == "" {
		return fmt.Errorf("prediction has no user id")
	}

	filter := bson.M{
		"userid":     prediction.UserID,
		"tournament": s.Tournament,
	}

	// Attempt to find an existing document
	var result PredictionDoc
	err := s.Collections.Predictions.FindOne(ctx, filter).Decode(&result)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing prediction failed: %w", err)
	}

	doc := NewPredictionDoc(prediction, s.Tournament, SourceDiscord, time.Now().Unix())

	// The user currently does not have predictions stored so we create a new document
	if notFound {
		_, err := s.Collections.Predictions.InsertOne(ctx, doc)
		if err != nil {
			return fmt.Errorf("failed to insert new user prediction: %w", err)
		}
		return nil
	}

	// Else update the user's existing prediction
	update := bson.M{
		"$set": bson.M{
			"username":   doc.Username,
			"picks":      doc.Picks,
			"source":     doc.Source,
			"updated_at": doc.UpdatedAt,
		},
	}
	_, err = s.Collections.Predictions.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update existing user prediction: %w", err)
	}
	return nil
}

// ReplaceImportedPredictions swaps the predictions imported from comment dumps for a new set. Predictions entered
// through discord are left alone.
func (s *Store) ReplaceImportedPredictions(ctx context.Context, predictions []logic.Prediction) error {
	_, err := s.Collections.Predictions.DeleteMany(ctx, bson.M{"tournament": s.Tournament, "source": SourceImport})
	if err != nil {
		return fmt.Errorf("failed to remove previous import: %w", err)
	}
	if len(predictions) == 0 {
		return nil
	}

	now := time.Now().Unix()
	docs := make([]interface{}, 0, len(predictions))
	for _, p := range predictions {
		docs = append(docs, NewPredictionDoc(p, s.Tournament, SourceImport, now))
	}
	if _, err := s.Collections.Predictions.InsertMany(ctx, docs); err != nil {
		return fmt.Errorf("failed to insert imported predictions: %w", err)
	}
	return nil
}

// GetUserPrediction does DB lookup and gets prediction for a user
// Preconditions: Receives context and the user's id
// Postconditions: Returns a user's prediction if it exists, mongo.ErrNoDocuments if it does not, or an error if it occurs
func (s *Store) GetUserPrediction(ctx context.Context, userID string) (logic.Prediction, error) {
	var result PredictionDoc
	err := s.Collections.Predictions.FindOne(ctx, bson.M{"userid": userID, "tournament": s.Tournament}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return logic.Prediction{}, err
		}
		return logic.Prediction{}, fmt.Errorf("error fetching prediction from db: %w", err)
	}

	return result.ToPrediction(), nil
}

// GetAllUserPredictions does DB lookup and gets every prediction stored for the tournament. Used in leaderboard
// calculations.
func (s *Store) GetAllUserPredictions(ctx context.Context) ([]logic.Prediction, error) {
	filter := bson.D{{Key: "tournament", Value: s.Tournament}}

	cursor, err := s.Collections.Predictions.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching predictions from db: %w", err)
	}

	// Unpack the cursor into a slice
	var docs []PredictionDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of predictions: %w", err)
	}

	predictions := make([]logic.Prediction, 0, len(docs))
	for _, doc := range docs {
		predictions = append(predictions, doc.ToPrediction())
	}
	return predictions, nil
}
