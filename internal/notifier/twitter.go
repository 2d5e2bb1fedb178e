package notifier

import (
	"fmt"
	"os"
	"time"

	"github.com/dghubble/go-twitter/twitter" //nolint:staticcheck // Using stable v1.1 API
	"github.com/dghubble/oauth1"
	"github.com/pfrederiksen/mcc-scraper/internal/fixture"
	"github.com/pfrederiksen/mcc-scraper/internal/logger"
)

const (
	tweetLimit = 280
	tweetPause = 2 * time.Second
)

// TwitterNotifier posts fixtures to Twitter
type TwitterNotifier struct {
	client *twitter.Client
	pause  time.Duration
}

// NewTwitterNotifier creates a Twitter notifier using environment variables
// Required environment variables:
// - TWITTER_API_KEY
// - TWITTER_API_SECRET
// - TWITTER_ACCESS_TOKEN
// - TWITTER_ACCESS_SECRET
func NewTwitterNotifier() (*TwitterNotifier, error) {
	apiKey := os.Getenv("TWITTER_API_KEY")
	apiSecret := os.Getenv("TWITTER_API_SECRET")
	accessToken := os.Getenv("TWITTER_ACCESS_TOKEN")
	accessSecret := os.Getenv("TWITTER_ACCESS_SECRET")

	if apiKey == "" || apiSecret == "" || accessToken == "" || accessSecret == "" {
		return nil, fmt.Errorf("missing required Twitter credentials in environment variables")
	}

	config := oauth1.NewConfig(apiKey, apiSecret)
	token := oauth1.NewToken(accessToken, accessSecret)
	httpClient := config.Client(oauth1.NoContext, token)

	return &TwitterNotifier{
		client: twitter.NewClient(httpClient),
		pause:  tweetPause,
	}, nil
}

// Notify posts one tweet per fixture
func (n *TwitterNotifier) Notify(fixtures []fixture.Fixture) error {
	for i, f := range fixtures {
		tweet := formatTweet(f)

		if _, _, err := n.client.Statuses.Update(tweet, nil); err != nil {
			return fmt.Errorf("posting tweet for fixture %s: %w", f.ID(), err)
		}
		logger.IncrCounter("notify.tweets")

		if i < len(fixtures)-1 {
			time.Sleep(n.pause)
		}
	}

	return nil
}

// formatTweet formats a fixture as a tweet of at most 280 characters
func formatTweet(f fixture.Fixture) string {
	tweet := "🏏 Mildenhall CC fixture\n\n"

	switch {
	case f.Team != "" && f.Opponent != "":
		tweet += fmt.Sprintf("%s v %s\n", f.Team, f.Opponent)
	case f.Team != "":
		tweet += f.Team + "\n"
	case f.Opponent != "":
		tweet += "v " + f.Opponent + "\n"
	}

	if f.Date != "" || f.Start != "" {
		tweet += fmt.Sprintf("📅 %s\n", joinNonEmpty(f.Date, f.Start))
	}

	if f.Venue != "" {
		tweet += fmt.Sprintf("📍 %s\n", f.Venue)
	}

	tweet += "\n#MildenhallCC #Cricket"

	return truncateRunes(tweet, tweetLimit)
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + ", " + b
	}
}

// truncateRunes shortens s to at most limit characters, ending in "...".
func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-3]) + "..."
}
