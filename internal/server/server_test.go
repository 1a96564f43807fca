package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lgbarn/pgnview-go/internal/library"
	"github.com/lgbarn/pgnview-go/internal/output"
	"github.com/lgbarn/pgnview-go/internal/replay"
	promstats "github.com/lgbarn/pgnview-go/internal/stats/prometheus"
	"github.com/lgbarn/pgnview-go/internal/store/memstore"
)

const shortPGN = "[White \"Carlsen\"]\n[Black \"Nakamura\"]\n\n1. e4 c5 2. Nf3 *\n"

func newTestServer(t *testing.T) (*Server, *library.Library, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewRegistry()
	collector := promstats.New(reg)

	r, err := replay.New(replay.WithStats(collector))
	if err != nil {
		t.Fatal(err)
	}
	lib := library.New(memstore.New(), r, library.WithStats(collector))
	if _, err := lib.SeedSample(context.Background()); err != nil {
		t.Fatal(err)
	}
	return New(lib, WithMetrics(reg)), lib, reg
}

// do sends a request and decodes a JSON response into out when non-nil.
func do(t *testing.T, s *Server, method, target, contentType, body string, out any) int {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatalf("%s %s: %v", method, target, err)
	}
	defer resp.Body.Close()

	if out != nil {
		data, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(data, out); err != nil {
			t.Fatalf("%s %s: decoding %q: %v", method, target, data, err)
		}
	}
	return resp.StatusCode
}

func TestHealthz(t *testing.T) {
	s, _, _ := newTestServer(t)
	var body map[string]string
	if code := do(t, s, http.MethodGet, "/healthz", "", "", &body); code != http.StatusOK || body["status"] != "ok" {
		t.Errorf("GET /healthz = %d %v", code, body)
	}
}

func TestGamesLifecycle(t *testing.T) {
	s, _, _ := newTestServer(t)

	var list []GameSummary
	if code := do(t, s, http.MethodGet, "/api/games", "", "", &list); code != http.StatusOK {
		t.Fatalf("GET /api/games = %d", code)
	}
	if len(list) != 1 || list[0].ID != library.SampleID {
		t.Fatalf("initial list = %+v, want the sample game", list)
	}

	var created GameSummary
	if code := do(t, s, http.MethodPost, "/api/games", "text/plain", shortPGN, &created); code != http.StatusCreated {
		t.Fatalf("POST raw = %d", code)
	}
	if created.ID == "" || created.Tags[0] != (output.TagJSON{Name: "White", Value: "Carlsen"}) {
		t.Errorf("created = %+v", created)
	}

	var fromJSON GameSummary
	body, _ := json.Marshal(map[string]string{"pgn": shortPGN})
	if code := do(t, s, http.MethodPost, "/api/games", "application/json", string(body), &fromJSON); code != http.StatusCreated {
		t.Fatalf("POST json = %d", code)
	}
	if fromJSON.ID == created.ID {
		t.Error("two submissions got the same id")
	}

	var detail GameDetail
	if code := do(t, s, http.MethodGet, "/api/games/"+created.ID, "", "", &detail); code != http.StatusOK {
		t.Fatalf("GET game = %d", code)
	}
	if detail.ID != created.ID || detail.PlyCount != 3 || detail.Moves[1].White != "Nf3" {
		t.Errorf("detail = %+v", detail)
	}

	if code := do(t, s, http.MethodDelete, "/api/games/"+created.ID, "", "", nil); code != http.StatusNoContent {
		t.Errorf("DELETE = %d, want 204", code)
	}
	var errBody map[string]string
	if code := do(t, s, http.MethodGet, "/api/games/"+created.ID, "", "", &errBody); code != http.StatusNotFound || errBody["error"] == "" {
		t.Errorf("GET deleted = %d %v, want 404", code, errBody)
	}
	if code := do(t, s, http.MethodDelete, "/api/games/"+created.ID, "", "", nil); code != http.StatusNotFound {
		t.Errorf("DELETE deleted = %d, want 404", code)
	}

	do(t, s, http.MethodGet, "/api/games", "", "", &list)
	if len(list) != 2 {
		t.Errorf("final list has %d games, want 2", len(list))
	}
}

func TestAddGame_Rejected(t *testing.T) {
	s, _, _ := newTestServer(t)

	tests := map[string]struct {
		contentType string
		body        string
	}{
		"empty":          {"text/plain", ""},
		"whitespace":     {"text/plain", "   \n"},
		"missing black":  {"text/plain", "[White \"A\"]\n\n1. e4 *"},
		"no headers":     {"text/plain", "1. e4 e5 *"},
		"bad json":       {"application/json", "{"},
		"empty json pgn": {"application/json", `{"pgn": ""}`},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var body map[string]string
			if code := do(t, s, http.MethodPost, "/api/games", tt.contentType, tt.body, &body); code != http.StatusBadRequest {
				t.Errorf("POST = %d %v, want 400", code, body)
			}
			if body["error"] == "" {
				t.Error("missing error message")
			}
		})
	}
}

func TestGetBoard(t *testing.T) {
	s, _, _ := newTestServer(t)
	base := "/api/games/" + library.SampleID + "/board"

	var start output.SnapshotJSON
	if code := do(t, s, http.MethodGet, base, "", "", &start); code != http.StatusOK {
		t.Fatalf("GET board = %d", code)
	}
	if start.ReachedPly != -1 || start.Highlight != nil || *start.Board[0][4] != "bK" {
		t.Errorf("start = %+v", start)
	}

	var final output.SnapshotJSON
	do(t, s, http.MethodGet, base+"?ply=44", "", "", &final)
	if final.ReachedPly != 44 || final.Highlight == nil || final.Highlight.From != "d6" || final.Highlight.To != "e7" {
		t.Errorf("final = %+v", final)
	}
	if final.Check != "checkmate" || *final.Board[0][3] != "bK" {
		t.Errorf("final check = %q, d8 = %v", final.Check, final.Board[0][3])
	}

	var clamped output.SnapshotJSON
	do(t, s, http.MethodGet, base+"?ply=500", "", "", &clamped)
	if clamped.FEN != final.FEN {
		t.Errorf("ply=500 FEN = %s, want %s", clamped.FEN, final.FEN)
	}

	if code := do(t, s, http.MethodGet, base+"?ply=abc", "", "", nil); code != http.StatusBadRequest {
		t.Errorf("ply=abc = %d, want 400", code)
	}
	if code := do(t, s, http.MethodGet, "/api/games/missing/board?ply=1", "", "", nil); code != http.StatusNotFound {
		t.Errorf("missing game board = %d, want 404", code)
	}
}

func TestMetrics(t *testing.T) {
	s, _, _ := newTestServer(t)
	do(t, s, http.MethodGet, "/api/games/"+library.SampleID+"/board?ply=3", "", "", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	resp, err := s.App().Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)

	for _, name := range []string{"pgnview_games_added_total 1", "pgnview_replays_total 1", "pgnview_games_stored 1"} {
		if !strings.Contains(string(data), name) {
			t.Errorf("/metrics missing %q", name)
		}
	}
}

func TestClosedLibrary(t *testing.T) {
	s, lib, _ := newTestServer(t)
	lib.Close()

	var body map[string]string
	if code := do(t, s, http.MethodGet, "/api/games", "", "", &body); code != http.StatusServiceUnavailable {
		t.Errorf("GET after Close = %d, want 503", code)
	}
}
