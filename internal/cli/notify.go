package cli

import (
	"fmt"
	"strings"

	"github.com/pfrederiksen/mcc-scraper/internal/fixture"
	"github.com/pfrederiksen/mcc-scraper/internal/logger"
	"github.com/pfrederiksen/mcc-scraper/internal/notifier"
	"github.com/spf13/cobra"
)

var (
	flagNotifyChannel string
	flagNotifyDryRun  bool
	flagNotifyMax     int
	flagNotifyTeam    string
)

func newNotifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notify [snapshot]",
		Short: "Post a snapshot's fixtures to Twitter or Telegram",
		Long: `Post the fixtures of a snapshot to Twitter (one post per fixture) or
Telegram (one digest). Without an argument the newest snapshot in --out-dir is used.

Twitter credentials are read from TWITTER_API_KEY, TWITTER_API_SECRET,
TWITTER_ACCESS_TOKEN and TWITTER_ACCESS_SECRET. Telegram credentials are read
from TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runNotify,
	}

	cmd.Flags().StringVar(&flagNotifyChannel, "channel", notifier.ChannelTwitter, "Channel to post to: twitter or telegram")
	cmd.Flags().BoolVar(&flagNotifyDryRun, "dry-run", false, "Print posts without sending them")
	cmd.Flags().IntVar(&flagNotifyMax, "max", 10, "Maximum number of fixtures to post")
	cmd.Flags().StringVar(&flagNotifyTeam, "team", "", "Only post fixtures for this team")

	return cmd
}

func runNotify(cmd *cobra.Command, args []string) error {
	channel := strings.ToLower(strings.TrimSpace(flagNotifyChannel))
	if channel != notifier.ChannelTwitter && channel != notifier.ChannelTelegram {
		return fmt.Errorf("invalid channel: %s (must be 'twitter' or 'telegram')", flagNotifyChannel)
	}
	if flagNotifyMax < 0 {
		return fmt.Errorf("--max must not be negative")
	}

	path, err := snapshotPath(cmd, args)
	if err != nil {
		return err
	}
	result, takenAt, err := loadSnapshot(path)
	if err != nil {
		return err
	}

	fixtures := fixture.FilterByTeam(result.Fixtures, flagNotifyTeam)
	fixtures = upcoming(fixtures, takenAt)
	if len(fixtures) > flagNotifyMax {
		fixtures = fixtures[:flagNotifyMax]
	}

	out := cmd.OutOrStdout()
	if len(fixtures) == 0 {
		fmt.Fprintln(out, "No fixtures match criteria")
		return nil
	}

	var n notifier.Notifier
	switch {
	case flagNotifyDryRun:
		n = notifier.NewDryRunNotifier(out, channel)
		fmt.Fprintf(out, "DRY RUN MODE - Would post %d fixtures:\n\n", len(fixtures))
	case channel == notifier.ChannelTelegram:
		n, err = notifier.NewTelegramNotifierFromEnv()
	default:
		n, err = notifier.NewTwitterNotifier()
	}
	if err != nil {
		return fmt.Errorf("initializing %s client: %w", channel, err)
	}

	if err := n.Notify(fixtures); err != nil {
		return fmt.Errorf("posting fixtures: %w", err)
	}

	logger.Info("Posted fixtures", logger.Fields{
		"channel":  channel,
		"dry_run":  flagNotifyDryRun,
		"fixtures": len(fixtures),
		"snapshot": path,
	})

	if !flagNotifyDryRun {
		fmt.Fprintf(out, "Successfully posted %d fixtures\n", len(fixtures))
	}
	return nil
}
