package notifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/mcc-scraper/internal/fixture"
	"github.com/pfrederiksen/mcc-scraper/internal/logger"
)

const (
	telegramAPIBaseURL = "https://api.telegram.org/bot"
	telegramTimeout    = 10 * time.Second
	// Bot API limit for a message body.
	telegramMessageLimit = 4096
)

// TelegramNotifier sends a fixture digest to a Telegram chat
type TelegramNotifier struct {
	botToken   string
	chatID     string
	baseURL    string
	httpClient *http.Client
}

// NewTelegramNotifier creates a Telegram notifier for one chat
func NewTelegramNotifier(botToken, chatID string) (*TelegramNotifier, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &TelegramNotifier{
		botToken: botToken,
		chatID:   chatID,
		baseURL:  telegramAPIBaseURL,
		httpClient: &http.Client{
			Timeout: telegramTimeout,
		},
	}, nil
}

// NewTelegramNotifierFromEnv reads TELEGRAM_BOT_TOKEN and TELEGRAM_CHAT_ID
func NewTelegramNotifierFromEnv() (*TelegramNotifier, error) {
	return NewTelegramNotifier(os.Getenv("TELEGRAM_BOT_TOKEN"), os.Getenv("TELEGRAM_CHAT_ID"))
}

// Notify sends the fixtures as one digest, split into several messages if needed
func (n *TelegramNotifier) Notify(fixtures []fixture.Fixture) error {
	for _, msg := range formatDigest(fixtures, telegramMessageLimit) {
		if err := n.sendMessage(msg); err != nil {
			return err
		}
		logger.IncrCounter("notify.telegram_messages")
	}
	return nil
}

// formatDigest renders fixtures as HTML messages no longer than limit bytes.
// The header always shares a message with at least one fixture.
func formatDigest(fixtures []fixture.Fixture, limit int) []string {
	if len(fixtures) == 0 {
		return nil
	}

	header := fmt.Sprintf("🏏 <b>Mildenhall CC fixtures</b> (%d)\n\n", len(fixtures))

	var messages []string
	var b strings.Builder
	b.WriteString(header)
	floor := b.Len()
	for _, f := range fixtures {
		line := digestLine(f, limit)
		if b.Len()+len(line) > limit && b.Len() > floor {
			messages = append(messages, strings.TrimRight(b.String(), "\n"))
			b.Reset()
			floor = 0
		}
		if b.Len()+len(line) > limit {
			line = digestLine(f, limit-b.Len())
		}
		b.WriteString(line)
	}
	if b.Len() > 0 {
		messages = append(messages, strings.TrimRight(b.String(), "\n"))
	}

	return messages
}

// digestLine renders one bullet of at most limit bytes, shortening the fixture
// text with "..." when it does not fit.
func digestLine(f fixture.Fixture, limit int) string {
	text := fixtureLine(f)
	line := "• " + html.EscapeString(text) + "\n"
	for len(line) > limit && text != "" {
		r := []rune(text)
		cut := len(line) - limit
		if cut > len(r) {
			cut = len(r)
		}
		text = string(r[:len(r)-cut])
		line = "• " + html.EscapeString(text) + "...\n"
	}
	return line
}

func (n *TelegramNotifier) sendMessage(text string) error {
	url := fmt.Sprintf("%s%s/sendMessage", n.baseURL, n.botToken)

	payload := map[string]interface{}{
		"chat_id":                  n.chatID,
		"text":                     text,
		"parse_mode":               "HTML",
		"disable_web_page_preview": true,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}

	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}
