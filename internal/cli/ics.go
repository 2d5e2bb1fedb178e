package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/mcc-scraper/internal/calendar"
	"github.com/pfrederiksen/mcc-scraper/internal/fixture"
	"github.com/pfrederiksen/mcc-scraper/internal/logger"
	"github.com/spf13/cobra"
)

var (
	flagICSOutput      string
	flagICSTimezone    string
	flagICSName        string
	flagICSTeam        string
	flagICSMatchLength time.Duration
)

func newICSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ics [snapshot]",
		Short: "Export a snapshot's fixtures as an iCalendar feed",
		Long: `Export the fixtures of a snapshot as an .ics calendar.
Without an argument the newest snapshot in --out-dir is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runICS,
	}

	cmd.Flags().StringVarP(&flagICSOutput, "output", "o", "", "Write the calendar to this file instead of stdout")
	cmd.Flags().StringVar(&flagICSTimezone, "tz", "Europe/London", "Time zone the fixture times are in")
	cmd.Flags().StringVar(&flagICSName, "name", "Mildenhall CC Fixtures", "Calendar name")
	cmd.Flags().StringVar(&flagICSTeam, "team", "", "Only export fixtures for this team")
	cmd.Flags().DurationVar(&flagICSMatchLength, "match-length", calendar.DefaultMatchLength, "Event length for fixtures with a start time")

	return cmd
}

func runICS(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(flagICSTimezone)
	if err != nil {
		return fmt.Errorf("loading time zone: %w", err)
	}

	path, err := snapshotPath(cmd, args)
	if err != nil {
		return err
	}
	result, takenAt, err := loadSnapshot(path)
	if err != nil {
		return err
	}

	fixtures := fixture.FilterByTeam(result.Fixtures, flagICSTeam)
	ics, skipped := calendar.GenerateICS(fixtures, calendar.Options{
		Name:        flagICSName,
		SiteURL:     cfg.BaseURL,
		Reference:   takenAt,
		Location:    loc,
		MatchLength: flagICSMatchLength,
	})

	logger.Info("Generated calendar", logger.Fields{
		"snapshot": path,
		"events":   len(fixtures) - skipped,
		"skipped":  skipped,
	})

	if ics == "" {
		return fmt.Errorf("no fixtures with a readable date in %s", path)
	}

	if flagICSOutput == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), ics)
		return err
	}
	if err := os.WriteFile(flagICSOutput, []byte(ics), 0644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}
