package notifier

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/pfrederiksen/mcc-scraper/internal/fixture"
)

// Channels a notification can be sent to.
const (
	ChannelTwitter  = "twitter"
	ChannelTelegram = "telegram"
)

// DryRunNotifier prints what would be posted without actually posting
type DryRunNotifier struct {
	out     io.Writer
	channel string
}

// NewDryRunNotifier creates a dry-run notifier writing to out. The output is
// formatted the way channel would send it; anything but ChannelTelegram
// previews tweets.
func NewDryRunNotifier(out io.Writer, channel string) *DryRunNotifier {
	return &DryRunNotifier{out: out, channel: channel}
}

// Notify prints the posts that would be sent
func (n *DryRunNotifier) Notify(fixtures []fixture.Fixture) error {
	if n.channel == ChannelTelegram {
		messages := formatDigest(fixtures, telegramMessageLimit)
		for i, msg := range messages {
			fmt.Fprintf(n.out, "--- Message %d/%d ---\n", i+1, len(messages))
			fmt.Fprintln(n.out, msg)
			fmt.Fprintf(n.out, "\n(Length: %d bytes)\n\n", len(msg))
		}
		return nil
	}

	for i, f := range fixtures {
		tweet := formatTweet(f)
		fmt.Fprintf(n.out, "--- Post %d/%d ---\n", i+1, len(fixtures))
		fmt.Fprintln(n.out, tweet)
		fmt.Fprintf(n.out, "\n(Length: %d characters)\n\n", utf8.RuneCountInString(tweet))
	}
	return nil
}
