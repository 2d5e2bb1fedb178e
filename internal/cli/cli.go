package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/mcc-scraper/internal/config"
	"github.com/pfrederiksen/mcc-scraper/internal/logger"
	"github.com/pfrederiksen/mcc-scraper/internal/scraper"
	"github.com/pfrederiksen/mcc-scraper/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagOutDir   string
	flagConfig   string
	flagLogLevel string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcc-scraper",
		Short: "Scrape news and fixtures from the Mildenhall Cricket Club website",
		Long: `A CLI tool that fetches the Mildenhall Cricket Club homepage and fixtures page,
extracts news items and fixtures, and writes them to a timestamped JSON snapshot.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
		RunE:              runScrape,
	}

	cmd.PersistentFlags().StringVar(&flagOutDir, "out-dir", config.DefaultOutputDir, "Directory snapshots are written to and read from")
	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Optional YAML config file")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn or error")

	cmd.AddCommand(newICSCmd())
	cmd.AddCommand(newNotifyCmd())

	return cmd
}

func setupLogging(cmd *cobra.Command, args []string) error {
	level, err := logger.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	return nil
}

// loadConfig reads the config file and applies the --out-dir override
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, err
	}
	if cmd.Flags().Changed("out-dir") {
		cfg.OutputDir = flagOutDir
	}
	return cfg, nil
}

// runScrape is the main command logic
func runScrape(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	fetcher, err := scraper.NewFetcher(cfg)
	if err != nil {
		return fmt.Errorf("creating fetcher: %w", err)
	}

	start := time.Now()
	result, err := scraper.New(fetcher, cfg.Paths).Run(context.Background())
	if err != nil {
		return err
	}

	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing storage: %w", err)
	}

	path, err := store.Save(result, time.Now())
	if err != nil {
		return fmt.Errorf("saving snapshot: %w", err)
	}
	logger.RecordTiming("scrape.total", time.Since(start))

	logger.Info("Saved snapshot", logger.Fields{
		"path":     path,
		"news":     len(result.Homepage.News),
		"fixtures": len(result.Fixtures),
	})
	logger.Debug("Run metrics", logger.Fields{"metrics": logger.GetMetricsSnapshot()})

	fmt.Fprintln(cmd.OutOrStdout(), "Scraping complete.")
	return nil
}

// snapshotPath returns args[0] if given, otherwise the newest snapshot in the output directory
func snapshotPath(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}

	store, err := storage.New(cfg.OutputDir)
	if err != nil {
		return "", fmt.Errorf("initializing storage: %w", err)
	}
	return store.Latest()
}

// loadSnapshot reads a snapshot and the time it was taken. Snapshots whose
// name carries no timestamp fall back to the file's modification time.
func loadSnapshot(path string) (*scraper.Result, time.Time, error) {
	var result scraper.Result
	if err := storage.Load(path, &result); err != nil {
		return nil, time.Time{}, err
	}

	takenAt, ok := storage.TakenAt(path)
	if !ok {
		info, err := os.Stat(path)
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("reading snapshot: %w", err)
		}
		takenAt = info.ModTime()
	}

	return &result, takenAt, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
