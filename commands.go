/* commands.go
 * Contains the result, import, rank and analyze commands
 */

package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"lck-pickems/api/api"
	"lck-pickems/api/external"
	"lck-pickems/api/logic"

	"github.com/spf13/cobra"
)

func (a *app) resultCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "result",
		Short: "Record, clear or show match results",
	}
	cmd.PersistentFlags().StringVar(&file, "file", "", "results file (match_result.txt) to edit instead of the database")

	setCmd := &cobra.Command{
		Use:   "set <match> <team>",
		Short: "Record the winner of a match, or the team picked for GEN Choice",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			match := strings.Join(args[:len(args)-1], " ")
			team := args[len(args)-1]
			if file != "" {
				return a.setResultFile(cmd.OutOrStdout(), file, match, team)
			}
			return a.withAPI(cmd.Context(), func(ctx context.Context, apiPtr *api.API) error {
				key, winner, err := apiPtr.SetMatchResult(ctx, match, team)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Recorded %s: %s\n", key, winner)
				_, err = apiPtr.GenerateLeaderboard(ctx)
				return err
			})
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear <match>",
		Short: "Remove a recorded result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			match := strings.Join(args, " ")
			if file != "" {
				return a.clearResultFile(cmd.OutOrStdout(), file, match)
			}
			return a.withAPI(cmd.Context(), func(ctx context.Context, apiPtr *api.API) error {
				key, err := apiPtr.ClearMatchResult(ctx, match)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", key)
				_, err = apiPtr.GenerateLeaderboard(ctx)
				return err
			})
		},
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the bracket with the recorded results",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if file != "" {
				results, err := external.LoadResultsFile(file, a.catalog)
				if err != nil {
					return err
				}
				printBracket(cmd.OutOrStdout(), api.BuildBracket(newResolver(a.catalog), results))
				return nil
			}
			return a.withAPI(cmd.Context(), func(ctx context.Context, apiPtr *api.API) error {
				view, err := apiPtr.GetBracket(ctx)
				if err != nil {
					return err
				}
				printBracket(cmd.OutOrStdout(), view)
				return nil
			})
		},
	}

	cmd.AddCommand(setCmd, clearCmd, showCmd)
	return cmd
}

func (a *app) importCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "import <comments.txt|url>",
		Short: "Extract predictions from a comment dump",
		Long: `Extract predictions from a comment dump and store them as the imported predictions, replacing the
previous import. With --out the predictions are written to a predictions.json file instead of the database.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := external.ReadSource(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if out != "" {
				report, predictions := a.extractOffline(text)
				if err := external.SavePredictionsFile(out, predictions); err != nil {
					return err
				}
				printImportReport(cmd.OutOrStdout(), report)
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d predictions to %s\n", len(predictions), out)
				return nil
			}

			return a.withAPI(cmd.Context(), func(ctx context.Context, apiPtr *api.API) error {
				report, err := apiPtr.ImportComments(ctx, text)
				if err != nil {
					return err
				}
				printImportReport(cmd.OutOrStdout(), report)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write predictions.json instead of storing them")
	return cmd
}

func (a *app) rankCmd() *cobra.Command {
	var predictionsFile, resultsFile string
	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Print the standings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if predictionsFile != "" {
				predictions, err := external.LoadPredictionsFile(predictionsFile, a.catalog)
				if err != nil {
					return err
				}
				results, err := external.LoadResultsFile(resultsFile, a.catalog)
				if err != nil {
					return err
				}
				printStandings(cmd.OutOrStdout(), api.BuildStandings(logic.NewScorer(a.catalog), a.catalog, predictions, results))
				return nil
			}
			return a.withAPI(cmd.Context(), func(ctx context.Context, apiPtr *api.API) error {
				standings, err := apiPtr.GetStandings(ctx)
				if err != nil {
					return err
				}
				printStandings(cmd.OutOrStdout(), standings)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&predictionsFile, "predictions", "p", "", "predictions.json to rank instead of the database")
	cmd.Flags().StringVarP(&resultsFile, "results", "r", "match_result.txt", "results file used with --predictions")
	return cmd
}

func (a *app) analyzeCmd() *cobra.Command {
	var predictionsFile string
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print how the participants picked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if predictionsFile != "" {
				predictions, err := external.LoadPredictionsFile(predictionsFile, a.catalog)
				if err != nil {
					return err
				}
				printAnalysis(cmd.OutOrStdout(), api.BuildAnalysis(a.catalog, predictions))
				return nil
			}
			return a.withAPI(cmd.Context(), func(ctx context.Context, apiPtr *api.API) error {
				analysis, err := apiPtr.GetAnalysis(ctx)
				if err != nil {
					return err
				}
				printAnalysis(cmd.OutOrStdout(), analysis)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&predictionsFile, "predictions", "p", "", "predictions.json to analyze instead of the database")
	return cmd
}

// withAPI connects to mongo, runs fn and disconnects
func (a *app) withAPI(ctx context.Context, fn func(ctx context.Context, apiPtr *api.API) error) error {
	apiPtr, err := a.connect(ctx)
	if err != nil {
		return err
	}
	defer apiPtr.Close(context.Background())
	return fn(ctx, apiPtr)
}

// setResultFile applies a result to a results file with the same checks the database path uses
func (a *app) setResultFile(w io.Writer, path, match, team string) error {
	results, err := external.LoadResultsFile(path, a.catalog)
	if err != nil {
		return err
	}
	key, winner, changed, err := api.ApplyResult(newResolver(a.catalog), newMatcher(a.catalog), results, match, team)
	if err != nil {
		return err
	}
	if changed {
		if err := external.SaveResultsFile(path, a.catalog, results); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "Recorded %s: %s\n", key, winner)
	return nil
}

func (a *app) clearResultFile(w io.Writer, path, match string) error {
	key, err := a.catalog.Canonical(match)
	if err != nil {
		return err
	}
	results, err := external.LoadResultsFile(path, a.catalog)
	if err != nil {
		return err
	}
	delete(results, key)
	if err := external.SaveResultsFile(path, a.catalog, results); err != nil {
		return err
	}
	fmt.Fprintf(w, "Cleared %s\n", key)
	return nil
}

// extractOffline runs the comment extraction without a store
func (a *app) extractOffline(text string) (api.ImportReport, []logic.Prediction) {
	return api.ExtractPredictions(external.NewExtractor(a.catalog), newMatcher(a.catalog), a.catalog, text)
}
