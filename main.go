/* main.go
 * The entry point of the pickems bot. `serve` runs the discord bot and the HTTP server, the other commands manage
 * results, import comment dumps and print the standings. rank, analyze and import can also work on the
 * match_result.txt / predictions.json files without a database.
 * Usage: lck-pickems serve --config tournament.yaml
 */

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lck-pickems/api/api"
	"lck-pickems/api/bracket"
	"lck-pickems/bot"
	"lck-pickems/config"
	"lck-pickems/logger"
	"lck-pickems/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// app carries the state shared by every command
type app struct {
	configPath string
	cfg        *config.Config
	logger     *zap.Logger
	catalog    *bracket.Catalog
}

func main() {
	a := &app{catalog: bracket.LCKPlayoffs()}
	if err := a.rootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lck-pickems",
		Short:         "Pick'em bot for the LCK playoffs double elimination bracket",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogLevel)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "tournament.yaml", "YAML tournament file")

	root.AddCommand(a.serveCmd())
	root.AddCommand(a.resultCmd())
	root.AddCommand(a.importCmd())
	root.AddCommand(a.rankCmd())
	root.AddCommand(a.analyzeCmd())
	return root
}

// connect builds the mongo backed API
func (a *app) connect(ctx context.Context) (*api.API, error) {
	apiPtr, err := api.NewAPI(ctx, a.cfg.MongoDB, a.cfg.MongoURI, a.cfg.Tournament, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize API: %w", err)
	}
	schedule, err := a.cfg.MatchSchedule(a.catalog)
	if err != nil {
		apiPtr.Close(ctx)
		return nil, err
	}
	apiPtr.Schedule = schedule
	return apiPtr, nil
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the discord bot and the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			apiPtr, err := a.connect(ctx)
			if err != nil {
				return err
			}
			defer apiPtr.Close(context.Background())

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return web.Start(gctx, web.Config{Addr: a.cfg.HTTPAddr, API: apiPtr})
			})

			if a.cfg.DiscordToken == "" {
				a.logger.Warn("no discord token configured, running the HTTP server only")
			} else {
				pickemsBot, err := bot.NewBot(a.cfg.DiscordToken, apiPtr, a.cfg.AdminIDs, a.logger)
				if err != nil {
					return err
				}
				g.Go(func() error {
					return pickemsBot.Run(gctx)
				})
			}
			return g.Wait()
		},
	}
}
