package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/mcc-scraper/internal/fixture"
	"github.com/pfrederiksen/mcc-scraper/internal/scraper"
)

const (
	homepageHTML = `<html><body>
<div class="newsItem"><h3>Nets Tonight</h3><div class="newsSnippet">Nets from 6pm.</div></div>
</body></html>`
	fixturesHTML = `<html><body><div id="pnlContent">
Sat 12 Jul|1st XI|Town CC|Home|13:00<br>
Sun 13 Jul|2nd XI|Village CC|Away|11:00
</div></body></html>`
)

func newSiteServer(t *testing.T, fixturesStatus int) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(homepageHTML))
	})
	mux.HandleFunc("/fixtures/teamid_all/default.aspx", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(fixturesStatus)
		w.Write([]byte(fixturesHTML))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeConfig(t *testing.T, baseURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("base_url: "+baseURL+"\n"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func runCmd(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func snapshots(t *testing.T, dir string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, "mcc_data_*.json"))
	if err != nil {
		t.Fatalf("listing snapshots: %v", err)
	}
	return matches
}

// writeSnapshot stores fixtures as a snapshot taken on 1 July 2025.
func writeSnapshot(t *testing.T, dir string, fixtures []fixture.Fixture) string {
	t.Helper()
	result := scraper.Result{Fixtures: fixtures}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshaling snapshot: %v", err)
	}
	takenAt := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)
	path := filepath.Join(dir, "mcc_data_"+strconv.FormatInt(takenAt.Unix(), 10)+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}
	return path
}

var sampleFixtures = []fixture.Fixture{
	{Date: "Date", Team: "Team", Opponent: "Opponent", Venue: "Venue", Start: "Start"},
	{Date: "Sun 13 Jul", Team: "2nd XI", Opponent: "Village CC", Venue: "Away", Start: "11:00"},
	{Date: "Sat 1 Mar", Team: "1st XI", Opponent: "Past CC", Venue: "Home", Start: "13:00"},
	{Date: "Sat 12 Jul", Team: "1st XI", Opponent: "Town CC", Venue: "Home", Start: "13:00"},
}

func TestScrape(t *testing.T) {
	server := newSiteServer(t, http.StatusOK)
	dir := t.TempDir()

	stdout, _, err := runCmd(t, "--config", writeConfig(t, server.URL), "--out-dir", dir)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "Scraping complete.\n" {
		t.Errorf("stdout = %q, want %q", stdout, "Scraping complete.\n")
	}

	files := snapshots(t, dir)
	if len(files) != 1 {
		t.Fatalf("expected 1 snapshot, got %d", len(files))
	}

	var result scraper.Result
	data, err := os.ReadFile(files[0])
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		t.Fatalf("parsing snapshot: %v", err)
	}
	if len(result.Homepage.News) != 1 || result.Homepage.News[0].Title != "Nets Tonight" {
		t.Errorf("news = %+v", result.Homepage.News)
	}
	if len(result.Fixtures) != 2 || result.Fixtures[1].Opponent != "Village CC" {
		t.Errorf("fixtures = %+v", result.Fixtures)
	}
}

func TestScrape_FixturesNotFound(t *testing.T) {
	server := newSiteServer(t, http.StatusNotFound)
	dir := t.TempDir()

	stdout, _, err := runCmd(t, "--config", writeConfig(t, server.URL), "--out-dir", dir)
	if err == nil {
		t.Fatal("expected an error for a 404 fixtures page")
	}
	if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want status code in message", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want nothing", stdout)
	}
	if files := snapshots(t, dir); len(files) != 0 {
		t.Errorf("no snapshot should be written, found %v", files)
	}
}

func TestScrape_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad log level", []string{"--log-level", "loud"}, "loud"},
		{"missing config", []string{"--config", filepath.Join(t.TempDir(), "missing.yaml")}, "reading config"},
		{"unexpected argument", []string{"extra"}, "unknown command"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Execute() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestICS(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, sampleFixtures)

	stdout, _, err := runCmd(t, "ics", path, "--tz", "UTC")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if got := strings.Count(stdout, "BEGIN:VEVENT"); got != 3 {
		t.Errorf("expected 3 events, got %d", got)
	}
	if !strings.Contains(stdout, "DTSTART:20250712T130000Z\r\n") {
		t.Error("missing DTSTART for Sat 12 Jul 13:00")
	}
	if !strings.Contains(stdout, "X-WR-CALNAME:Mildenhall CC Fixtures\r\n") {
		t.Error("missing calendar name")
	}
}

func TestICS_LatestSnapshotToFile(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, sampleFixtures)
	out := filepath.Join(t.TempDir(), "fixtures.ics")

	_, _, err := runCmd(t, "ics", "--out-dir", dir, "--tz", "UTC", "--team", "2nd xi", "-o", out)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("reading calendar: %v", err)
	}
	if got := strings.Count(string(data), "BEGIN:VEVENT"); got != 1 {
		t.Errorf("expected 1 event for 2nd XI, got %d", got)
	}
	if !strings.Contains(string(data), "SUMMARY:2nd XI v Village CC") {
		t.Error("expected the 2nd XI fixture")
	}
}

func TestICS_NoSnapshot(t *testing.T) {
	_, _, err := runCmd(t, "ics", "--out-dir", t.TempDir())
	if err == nil || !strings.Contains(err.Error(), "no snapshots found") {
		t.Errorf("Execute() error = %v, want no snapshots found", err)
	}
}

func TestNotify_DryRun(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, sampleFixtures)

	stdout, _, err := runCmd(t, "notify", "--out-dir", dir, "--dry-run")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout, "DRY RUN MODE - Would post 2 fixtures") {
		t.Errorf("unexpected dry-run header:\n%s", stdout)
	}
	first := strings.Index(stdout, "Town CC")
	second := strings.Index(stdout, "Village CC")
	if first == -1 || second == -1 || first > second {
		t.Errorf("fixtures should be posted in date order:\n%s", stdout)
	}
	if strings.Contains(stdout, "Past CC") {
		t.Error("fixtures before the snapshot date should not be posted")
	}
	if strings.Contains(stdout, "Successfully posted") {
		t.Error("dry run should not report posting")
	}
}

func TestNotify_DryRunTelegram(t *testing.T) {
	dir := t.TempDir()
	path := writeSnapshot(t, dir, sampleFixtures)

	stdout, _, err := runCmd(t, "notify", path, "--channel", "telegram", "--dry-run")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(stdout, "--- Message 1/1 ---") {
		t.Errorf("telegram dry run should preview one digest message:\n%s", stdout)
	}
	if !strings.Contains(stdout, "🏏 <b>Mildenhall CC fixtures</b> (2)") {
		t.Errorf("missing digest header:\n%s", stdout)
	}
	if strings.Contains(stdout, "--- Post ") || strings.Contains(stdout, "#MildenhallCC") {
		t.Errorf("telegram dry run should not preview tweets:\n%s", stdout)
	}
	first := strings.Index(stdout, "Town CC")
	second := strings.Index(stdout, "Village CC")
	if first == -1 || second == -1 || first > second {
		t.Errorf("digest should list fixtures in date order:\n%s", stdout)
	}
}

func TestNotify_MaxAndTeam(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, sampleFixtures)

	stdout, _, err := runCmd(t, "notify", "--out-dir", dir, "--dry-run", "--max", "1")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "--- Post 1/1 ---") || strings.Contains(stdout, "Village CC") {
		t.Errorf("--max 1 should post only the first fixture:\n%s", stdout)
	}

	stdout, _, err = runCmd(t, "notify", "--out-dir", dir, "--dry-run", "--team", "3rd XI")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(stdout, "No fixtures match criteria") {
		t.Errorf("expected no matching fixtures:\n%s", stdout)
	}
}

func TestNotify_Errors(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, sampleFixtures)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"invalid channel", []string{"notify", "--out-dir", dir, "--channel", "fax"}, "invalid channel"},
		{"negative max", []string{"notify", "--out-dir", dir, "--max", "-1"}, "--max"},
		{"missing telegram credentials", []string{"notify", "--out-dir", dir, "--channel", "telegram"}, "initializing telegram client"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCmd(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Execute() error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestUpcoming(t *testing.T) {
	ref := time.Date(2025, time.July, 1, 9, 0, 0, 0, time.UTC)

	got := upcoming(sampleFixtures, ref)
	if len(got) != 2 {
		t.Fatalf("upcoming() returned %d fixtures, want 2", len(got))
	}
	if got[0].Opponent != "Town CC" || got[1].Opponent != "Village CC" {
		t.Errorf("upcoming() order = %q, %q", got[0].Opponent, got[1].Opponent)
	}

	if got := upcoming(nil, ref); len(got) != 0 {
		t.Errorf("upcoming(nil) = %v, want empty", got)
	}
}
