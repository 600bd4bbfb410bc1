package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mcoot/codenames/internal/api/response"
)

func newEventsCmd() *cobra.Command {
	var (
		jsonOutput bool
		count      int
	)

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Stream game events",
		Long: `Connect to the server's event stream and print game events as they happen.

Events include:
  - game_started: A new board was dealt
  - clue_requested / clue_received / clue_failed: Spymaster activity
  - guess_correct / guess_incorrect / assassin_revealed: Reveals
  - guesses_reset: The team gave up its remaining guesses
  - turn_ended / turn_started: The turn passed to the other team
  - timer_tick / timer_warning: The turn timer
  - game_over: A team won

Press Ctrl+C to disconnect.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return streamEvents(ctx, cmd.OutOrStdout(), jsonOutput, count)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "Exit after this many game events (0 streams until interrupted)")

	return cmd
}

// SSEEvent is a received event as printed in JSON lines mode
type SSEEvent struct {
	Time  time.Time       `json:"time"`
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

func streamEvents(ctx context.Context, w io.Writer, jsonOutput bool, count int) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/api/v1/events"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	httpClient := &http.Client{
		Timeout: 0, // No timeout for SSE
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var currentEvent string
	var dataLines []string
	seen := 0

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "event: "):
			currentEvent = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			dataLines = append(dataLines, strings.TrimPrefix(line, "data: "))
		case strings.HasPrefix(line, ":"):
			// Keepalive comment
		case line == "":
			if currentEvent != "" {
				data := strings.Join(dataLines, "\n")
				printEvent(w, currentEvent, data, jsonOutput)
				if currentEvent != "connected" {
					seen++
				}
			}
			currentEvent = ""
			dataLines = nil

			if count > 0 && seen >= count {
				return nil
			}
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("stream error: %w", err)
	}

	if !jsonOutput {
		fmt.Fprintln(w, "Disconnected")
	}
	return nil
}

func printEvent(w io.Writer, event, data string, jsonOutput bool) {
	now := time.Now()

	if jsonOutput {
		raw := json.RawMessage(data)
		if !json.Valid(raw) {
			raw, _ = json.Marshal(data)
		}
		line, _ := json.Marshal(SSEEvent{Time: now, Event: event, Data: raw})
		fmt.Fprintln(w, string(line))
		return
	}

	fmt.Fprintf(w, "[%s] %s\n", now.Format(time.TimeOnly), describeEvent(event, data))
}

// describeEvent renders a one-line summary of a game event
func describeEvent(event, data string) string {
	var e response.Event
	if err := json.Unmarshal([]byte(data), &e); err != nil || e.Type == "" {
		return fmt.Sprintf("%s: %s", event, data)
	}

	p, _ := e.Payload.(map[string]any)
	str := func(key string) string {
		s, _ := p[key].(string)
		return s
	}
	num := func(key string) int {
		n, _ := p[key].(float64)
		return int(n)
	}

	switch event {
	case "game_started":
		return fmt.Sprintf("game %s started, %s goes first", e.GameID, str("starting_team"))
	case "clue_requested":
		return fmt.Sprintf("%s spymaster is thinking", e.Team)
	case "clue_received":
		clue, _ := p["clue"].(map[string]any)
		word, _ := clue["clue"].(string)
		number, _ := clue["number"].(float64)
		return fmt.Sprintf("%s clue: %s %d (%d guesses)", e.Team, word, int(number), num("guesses_remaining"))
	case "clue_failed":
		return fmt.Sprintf("%s clue failed: %s", e.Team, str("error"))
	case "guess_correct":
		return fmt.Sprintf("%s found %s (%d guesses left)", e.Team, str("word"), num("guesses_remaining"))
	case "guess_incorrect":
		return fmt.Sprintf("%s revealed %s, a %s card", e.Team, str("word"), str("cell_team"))
	case "assassin_revealed":
		return fmt.Sprintf("%s revealed the assassin %s", e.Team, str("word"))
	case "guesses_reset":
		return fmt.Sprintf("%s gave up its guesses", e.Team)
	case "turn_ended":
		if unused := num("unused_guesses"); unused > 0 {
			return fmt.Sprintf("%s turn over (%s) with %d guesses remaining", e.Team, str("reason"), unused)
		}
		return fmt.Sprintf("%s turn over (%s)", e.Team, str("reason"))
	case "turn_started":
		return fmt.Sprintf("%s to play", e.Team)
	case "timer_tick", "timer_warning":
		return fmt.Sprintf("%s has %ds left", e.Team, num("seconds_remaining"))
	case "game_over":
		return fmt.Sprintf("game over: %s wins (%s)", str("winner"), str("reason"))
	}
	return event
}
