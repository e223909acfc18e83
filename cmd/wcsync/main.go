package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/riskibarqy/worldcup-tracker/internal/app"
	"github.com/riskibarqy/worldcup-tracker/internal/config"
	"github.com/riskibarqy/worldcup-tracker/internal/observability"
	"github.com/riskibarqy/worldcup-tracker/internal/platform/logging"
	"github.com/riskibarqy/worldcup-tracker/internal/usecase"
	"github.com/urfave/cli/v2"
)

func main() {
	envFile, envLoaded := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()
	if envLoaded {
		logger.Debug("env file loaded", "path", envFile)
	}

	shutdown, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		logger.Error("init uptrace", "error", err)
		os.Exit(1)
	}

	services := app.NewServices(cfg, logger)
	cliApp := newCLI(services, os.Stdout)

	runErr := cliApp.Run(os.Args)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdown(shutdownCtx); err != nil {
		logger.Warn("shutdown uptrace", "error", err)
	}

	if runErr != nil {
		logger.Error("command failed", "error", runErr)
		_ = logger.Sync()
		os.Exit(1)
	}
}

func newCLI(services *app.Services, out io.Writer) *cli.App {
	return &cli.App{
		Name:  "wcsync",
		Usage: "keep the World Cup match store in sync with results",
		Commands: []*cli.Command{
			{
				Name:  "sync",
				Usage: "pull finished results from FotMob and update the bracket",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "date", Usage: "sync a single day (YYYYMMDD) instead of today and yesterday"},
					&cli.BoolFlag{Name: "dry-run", Usage: "log intended changes without writing"},
				},
				Action: func(c *cli.Context) error {
					_, err := services.Sync.Run(c.Context, usecase.SyncInput{
						Date:   c.String("date"),
						DryRun: c.Bool("dry-run"),
					})
					return err
				},
			},
			{
				Name:  "update-bracket",
				Usage: "resolve knockout placeholders from standings and results",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "dry-run", Usage: "log intended changes without writing"},
				},
				Action: func(c *cli.Context) error {
					_, err := services.Bracket.Run(c.Context, usecase.BracketInput{DryRun: c.Bool("dry-run")})
					return err
				},
			},
			{
				Name:  "standings",
				Usage: "print group tables and the best third-placed teams",
				Action: func(c *cli.Context) error {
					tables, thirds, err := services.Standings.Tables(c.Context)
					if err != nil {
						return err
					}
					return writeStandings(out, tables, thirds)
				},
			},
		},
	}
}
