package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dukerupert/choreboard/internal/board"
	"github.com/dukerupert/choreboard/internal/clock"
)

func TestWriteError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &board.ValidationError{Field: "title", Reason: "is required"}, http.StatusBadRequest},
		{"wrapped not found", fmt.Errorf("chore %q: %w", "c1", board.ErrNotFound), http.StatusNotFound},
		{"internal", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, logger, tt.err, "do thing")
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var body map[string]string
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body["error"] == "" {
				t.Error("expected error message")
			}
			if tt.want == http.StatusInternalServerError && body["error"] != "failed to do thing" {
				t.Errorf("internal error leaked: %q", body["error"])
			}
		})
	}
}

func TestDateParam(t *testing.T) {
	loc := time.FixedZone("local", -5*3600)
	clk := clock.NewFixed(time.Date(2024, 3, 10, 23, 0, 0, 0, loc))

	rec := httptest.NewRecorder()
	d, ok := dateParam(rec, httptest.NewRequest("GET", "/?date=2024-03-13", nil), clk)
	if !ok || clock.DateString(d) != "2024-03-13" || d.Location() != loc {
		t.Errorf("date = %v, ok = %v", d, ok)
	}

	d, ok = dateParam(rec, httptest.NewRequest("GET", "/", nil), clk)
	if !ok || clock.DateString(d) != "2024-03-10" {
		t.Errorf("default date = %v, want 2024-03-10", d)
	}

	rec = httptest.NewRecorder()
	if _, ok := dateParam(rec, httptest.NewRequest("GET", "/?date=03/13/2024", nil), clk); ok {
		t.Error("expected bad date to be rejected")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
