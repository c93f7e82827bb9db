/* api.go
 * This file contains the public methods for interacting with this package. The discord bot, the web server and the
 * cli should only call the functions in this file, not the sub packages for bracket, logic and store.
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"lck-pickems/api/bracket"
	"lck-pickems/api/external"
	"lck-pickems/api/logic"
	"lck-pickems/api/shared"
	"lck-pickems/api/store"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// API provides methods for interacting with the pickems data layer
type API struct {
	Store     store.Interface
	Catalog   *bracket.Catalog
	Resolver  *bracket.Resolver
	Scorer    *logic.Scorer
	Matcher   *logic.TeamMatcher
	Extractor *external.Extractor
	Logger    *zap.Logger

	// Name is the display name of the tournament
	Name string
	// Schedule holds a free form start time per key, shown by GetNextMatch
	Schedule map[bracket.MatchID]string

	now func() time.Time
	// resultsMu serializes result writes so each one is validated against the latest stored results
	resultsMu sync.Mutex
}

// NewAPI creates a new API instance backed by mongo for the LCK playoff bracket
func NewAPI(ctx context.Context, dbName string, mongoURI string, tournament string, logger *zap.Logger) (*API, error) {
	if dbName == "" || tournament == "" {
		return nil, fmt.Errorf("dbName and tournament are required")
	}

	s, err := store.NewStore(ctx, dbName, mongoURI, tournament)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	return New(s, bracket.LCKPlayoffs(), logger), nil
}

// New wires an API around an existing store and catalog
func New(s store.Interface, catalog *bracket.Catalog, logger *zap.Logger) *API {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &API{
		Store:     s,
		Catalog:   catalog,
		Resolver:  bracket.NewResolver(catalog),
		Scorer:    logic.NewScorer(catalog),
		Matcher:   logic.NewTeamMatcher(catalog.Teams(), logic.DefaultTeamAliases),
		Extractor: external.NewExtractor(catalog),
		Logger:    logger,
		Name:      s.GetTournament(),
		Schedule:  map[bracket.MatchID]string{},
		now:       time.Now,
	}
}

// Close disconnects the store
func (a *API) Close(ctx context.Context) error {
	return a.Store.Disconnect(ctx)
}

// SetMatchResult records the winner of a match or the team picked for a choice.
// Preconditions: match is a key or alias known to the catalog and team can be matched to a catalog team
// Postconditions: Stores the result and returns the canonical key and team. Recording the same winner twice is a no-op.
// Returns ErrResultAlreadyRecorded if a different winner is stored, or the *bracket.InconsistentResultError the new
// result would introduce.
// Writes are serialized within this API, which the bot and the HTTP server share. Writers in other processes are
// not coordinated with.
func (a *API) SetMatchResult(ctx context.Context, match string, team string) (bracket.MatchID, bracket.Team, error) {
	a.resultsMu.Lock()
	defer a.resultsMu.Unlock()

	results, err := a.Store.FetchMatchResults(ctx)
	if err != nil {
		return "", "", err
	}

	key, winner, changed, err := ApplyResult(a.Resolver, a.Matcher, results, match, team)
	if err != nil {
		return "", "", err
	}
	if !changed {
		return key, winner, nil
	}

	if err := a.Store.StoreMatchResult(ctx, key, winner); err != nil {
		return "", "", err
	}
	a.Logger.Info("match result stored", zap.String("match", string(key)), zap.String("winner", string(winner)))
	return key, winner, nil
}

// ClearMatchResult removes the stored result for match
func (a *API) ClearMatchResult(ctx context.Context, match string) (bracket.MatchID, error) {
	key, err := a.Catalog.Canonical(match)
	if err != nil {
		return "", err
	}
	a.resultsMu.Lock()
	defer a.resultsMu.Unlock()
	if err := a.Store.ClearMatchResult(ctx, key); err != nil {
		return "", err
	}
	a.Logger.Info("match result cleared", zap.String("match", string(key)))
	return key, nil
}

// GetResults returns every stored result
func (a *API) GetResults(ctx context.Context) (bracket.ResultMap, error) {
	return a.Store.FetchMatchResults(ctx)
}

// GetBracket resolves the stored results
func (a *API) GetBracket(ctx context.Context) (BracketView, error) {
	results, err := a.Store.FetchMatchResults(ctx)
	if err != nil {
		return BracketView{}, err
	}
	view := BuildBracket(a.Resolver, results)
	if len(view.Problems) > 0 {
		a.Logger.Warn("stored results are inconsistent", zap.Strings("problems", view.Problems))
	}
	return view, nil
}

// GetNextMatch returns the next key waiting for a result
func (a *API) GetNextMatch(ctx context.Context) (NextMatch, error) {
	results, err := a.Store.FetchMatchResults(ctx)
	if err != nil {
		return NextMatch{}, err
	}
	return FindNextMatch(a.Resolver, results, a.Schedule), nil
}

// GetChoiceStatus reports the state of every choice
func (a *API) GetChoiceStatus(ctx context.Context) ([]bracket.ChoiceState, error) {
	results, err := a.Store.FetchMatchResults(ctx)
	if err != nil {
		return nil, err
	}
	var states []bracket.ChoiceState
	for _, key := range a.Catalog.ChoiceKeys() {
		state, err := a.Catalog.ChoiceStatus(key, results)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	return states, nil
}

// SetUserPrediction contains the logic to set a user prediction in the DB.
// It receives a user struct that contains userID and userName, and one team per entry key in entry key order.
// It updates the user's predictions in the database, or returns an error if it occurs.
func (a *API) SetUserPrediction(ctx context.Context, user shared.User, inputTeams []string) error {
	keys := a.Catalog.EntryKeys()
	if len(inputTeams) != len(keys) {
		return fmt.Errorf("%w: incorrect number of teams arguments, expected %d but got %d", ErrInvalidPrediction, len(keys), len(inputTeams))
	}

	teams, invalidTeams := a.Matcher.CheckTeamNames(inputTeams)
	if len(invalidTeams) > 0 {
		var str strings.Builder
		str.WriteString("the following team names are invalid:")
		for i := range invalidTeams {
			str.WriteString(fmt.Sprintf(" '%s'", invalidTeams[i]))
		}
		return fmt.Errorf("%w: %s", ErrUnknownTeam, str.String())
	}

	prediction, err := logic.GeneratePrediction(user, teams, keys)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidPrediction, err)
	}

	if issues := logic.CheckConsistency(a.Resolver, prediction); len(issues) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPrediction, issues[0].Error())
	}

	if err := a.Store.StoreUserPrediction(ctx, prediction); err != nil {
		return err
	}
	a.Logger.Info("prediction stored", zap.String("user", user.Username), zap.String("userID", user.UserID))
	return nil
}

// CheckPrediction scores a user's stored prediction against the stored results.
// Returns mongo.ErrNoDocuments if the user has no prediction.
func (a *API) CheckPrediction(ctx context.Context, user shared.User) (PredictionReport, error) {
	prediction, err := a.Store.GetUserPrediction(ctx, user.UserID)
	if err != nil {
		return PredictionReport{}, err
	}

	results, err := a.Store.FetchMatchResults(ctx)
	if err != nil {
		return PredictionReport{}, err
	}

	return PredictionReport{
		Score:   a.Scorer.Score(prediction, results),
		Picks:   a.Scorer.Evaluate(prediction, results),
		Missing: logic.MissingPicks(prediction, a.Catalog.EntryKeys()),
	}, nil
}

// loadAll fetches every prediction and the results
func (a *API) loadAll(ctx context.Context) ([]logic.Prediction, bracket.ResultMap, error) {
	predictions, err := a.Store.GetAllUserPredictions(ctx)
	if err != nil {
		return nil, nil, err
	}
	results, err := a.Store.FetchMatchResults(ctx)
	if err != nil {
		return nil, nil, err
	}
	return predictions, results, nil
}

// GetStandings scores every prediction against the stored results
func (a *API) GetStandings(ctx context.Context) (Standings, error) {
	predictions, results, err := a.loadAll(ctx)
	if err != nil {
		return Standings{}, err
	}
	return BuildStandings(a.Scorer, a.Catalog, predictions, results), nil
}

// GenerateLeaderboard contains the logic required to generate a leaderboard.
// Preconditions: Receives context
// Postconditions: Generates the leaderboard, updates it in the DB and returns it, or returns an error if it occurs
func (a *API) GenerateLeaderboard(ctx context.Context) (store.Leaderboard, error) {
	standings, err := a.GetStandings(ctx)
	if err != nil {
		return store.Leaderboard{}, err
	}

	leaderboard := store.NewLeaderboard(a.Store.GetTournament(), standings.Ranked, a.now().Unix())
	if err := a.Store.StoreLeaderboard(ctx, leaderboard); err != nil {
		return store.Leaderboard{}, err
	}
	a.Logger.Info("leaderboard generated", zap.Int("entries", len(leaderboard.Entries)))
	return leaderboard, nil
}

// GetLeaderboard returns the stored leaderboard, generating one if none exists yet
func (a *API) GetLeaderboard(ctx context.Context) (store.Leaderboard, error) {
	leaderboard, err := a.Store.FetchLeaderboard(ctx)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return a.GenerateLeaderboard(ctx)
	}
	if err != nil {
		return store.Leaderboard{}, err
	}
	return leaderboard, nil
}

// ImportComments extracts predictions from a comment dump and replaces the previous import with them. Participants
// sharing a nickname are all kept.
func (a *API) ImportComments(ctx context.Context, text string) (ImportReport, error) {
	report, predictions := ExtractPredictions(a.Extractor, a.Matcher, a.Catalog, text)

	if err := a.Store.ReplaceImportedPredictions(ctx, predictions); err != nil {
		return ImportReport{}, err
	}
	a.Logger.Info("comments imported",
		zap.Int("users", report.Users),
		zap.Int("imported", report.Imported),
		zap.Int("failed", len(report.Failed)),
		zap.Int("missing", report.Missing),
	)
	return report, nil
}

// GetPickStats returns how the participants picked for one key
func (a *API) GetPickStats(ctx context.Context, match string) (PickStats, error) {
	key, err := a.Catalog.Canonical(match)
	if err != nil {
		return PickStats{}, err
	}
	predictions, err := a.Store.GetAllUserPredictions(ctx)
	if err != nil {
		return PickStats{}, err
	}
	return BuildPickStats(a.Catalog, predictions, key)
}

// GetAnalysis summarises every stored prediction
func (a *API) GetAnalysis(ctx context.Context) (Analysis, error) {
	predictions, err := a.Store.GetAllUserPredictions(ctx)
	if err != nil {
		return Analysis{}, err
	}
	return BuildAnalysis(a.Catalog, predictions), nil
}

// GetTeams returns every team in the bracket
func (a *API) GetTeams() []bracket.Team {
	return a.Catalog.Teams()
}

// GetTournamentInfo gets the following information about the tournament: Tournament Name, Format, Stages and the
// number of required picks.
// It returns a string slice with the contents attribute : value containing the information listed above.
func (a *API) GetTournamentInfo() []string {
	var values []string
	values = append(values, fmt.Sprintf("Tournament Name: %s", a.Name))
	values = append(values, "Format: double-elimination")
	values = append(values, fmt.Sprintf("Stages: %s", strings.Join(a.Catalog.Stages(), ", ")))
	values = append(values, fmt.Sprintf("Number of required picks: %d", len(a.Catalog.EntryKeys())))
	values = append(values, fmt.Sprintf("Pick order: %s", joinKeys(a.Catalog.EntryKeys())))
	return values
}

func joinKeys(keys []bracket.MatchID) string {
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, string(k))
	}
	return strings.Join(names, ", ")
}
