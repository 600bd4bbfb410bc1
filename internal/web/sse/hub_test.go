package sse

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mcoot/codenames/internal/testutil"
)

func TestFormatSSEMessage(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		data      string
		expected  string
	}{
		{
			name:      "single line data",
			eventName: "test-event",
			data:      "hello world",
			expected:  "event: test-event\ndata: hello world\n\n",
		},
		{
			name:      "multi-line data",
			eventName: "game_started",
			data:      "{\n  \"type\": \"game_started\"\n}",
			expected:  "event: game_started\ndata: {\ndata:   \"type\": \"game_started\"\ndata: }\n\n",
		},
		{
			name:      "empty data",
			eventName: "ping",
			data:      "",
			expected:  "event: ping\ndata: \n\n",
		},
		{
			name:      "data with carriage returns",
			eventName: "test",
			data:      "line1\r\nline2",
			expected:  "event: test\ndata: line1\ndata: line2\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := formatSSEMessage(tt.eventName, tt.data)
			if string(result) != tt.expected {
				t.Errorf("formatSSEMessage(%q, %q)\ngot:  %q\nwant: %q",
					tt.eventName, tt.data, string(result), tt.expected)
			}
		})
	}
}

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "single line",
			input:    "hello",
			expected: []string{"hello"},
		},
		{
			name:     "two lines",
			input:    "line1\nline2",
			expected: []string{"line1", "line2"},
		},
		{
			name:     "trailing newline",
			input:    "line1\n",
			expected: []string{"line1"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{""},
		},
		{
			name:     "crlf line endings",
			input:    "line1\r\nline2\r\n",
			expected: []string{"line1", "line2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := splitLines(tt.input)
			if len(result) != len(tt.expected) {
				t.Errorf("splitLines(%q) returned %d lines, want %d",
					tt.input, len(result), len(tt.expected))
				return
			}
			for i, line := range result {
				if line != tt.expected[i] {
					t.Errorf("splitLines(%q)[%d] = %q, want %q",
						tt.input, i, line, tt.expected[i])
				}
			}
		})
	}
}

func newRunningHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	t.Cleanup(hub.Close)
	return hub
}

func waitForClients(t *testing.T, hub *Hub, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("ClientCount() = %d, want %d", hub.ClientCount(), want)
		}
		time.Sleep(time.Millisecond)
	}
}

func receive(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(time.Second):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestHub_RegisterAndBroadcast(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient(hub, "viewer1")
	if !hub.Register(client) {
		t.Fatal("Register() = false on a running hub")
	}
	waitForClients(t, hub, 1)

	hub.BroadcastEvent("timer_tick", "tick")

	if got, want := receive(t, client), "event: timer_tick\ndata: tick\n\n"; got != want {
		t.Errorf("client received %q, want %q", got, want)
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient(hub, "viewer1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Unregister(client)
	waitForClients(t, hub, 0)

	if _, ok := <-client.send; ok {
		t.Error("send channel still open after unregister")
	}
}

func TestHub_BroadcastToMultipleClients(t *testing.T) {
	hub := newRunningHub(t)

	clients := []*Client{
		NewClient(hub, "viewer1"),
		NewClient(hub, "viewer2"),
		NewClient(hub, "viewer3"),
	}
	for _, c := range clients {
		hub.Register(c)
	}
	waitForClients(t, hub, 3)

	hub.BroadcastEvent("update", "data")

	for i, c := range clients {
		if got, want := receive(t, c), "event: update\ndata: data\n\n"; got != want {
			t.Errorf("client %d received %q, want %q", i+1, got, want)
		}
	}
}

func TestHub_ReplaysLatestToNewClients(t *testing.T) {
	hub := newRunningHub(t)

	first := NewClient(hub, "viewer1")
	hub.Register(first)
	waitForClients(t, hub, 1)

	hub.BroadcastEvent("clue_received", "one")
	hub.BroadcastEvent("guess_correct", "two")
	receive(t, first)
	receive(t, first)

	late := NewClient(hub, "viewer2")
	hub.Register(late)

	if got := receive(t, late); !strings.Contains(got, "event: guess_correct") {
		t.Errorf("late client received %q, want the latest message", got)
	}
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	hub := newRunningHub(t)

	client := NewClient(hub, "viewer1")
	hub.Register(client)
	waitForClients(t, hub, 1)

	hub.Close()
	hub.Close() // Idempotent

	select {
	case _, ok := <-client.send:
		if ok {
			t.Error("expected closed send channel")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed")
	}

	if hub.Register(NewClient(hub, "viewer2")) {
		t.Error("Register() = true on a closed hub")
	}
}

func TestServeSSE_StreamsUntilHubCloses(t *testing.T) {
	hub := newRunningHub(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/events", nil)

	done := make(chan struct{})
	go func() {
		ServeSSE(rec, req, hub)
		close(done)
	}()

	waitForClients(t, hub, 1)
	hub.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("ServeSSE did not return after hub closed")
	}

	if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
	if !strings.Contains(rec.Body.String(), "event: connected") {
		t.Errorf("body missing connected event: %q", rec.Body.String())
	}
}
