package httpapi

import (
	"bufio"
	"context"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/games/snake"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	*Server
	store    *storage.MemoryStore
	registry *session.Registry
}

func newTestServer(t *testing.T, cfg config.SnakeConfig) testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	reg := session.NewRegistry()
	t.Cleanup(reg.StopAll)
	store := storage.NewMemoryStore()
	srv := New(ctx, reg, store, config.NewLive(cfg), nil, Options{
		Seed: func() int64 { return 42 },
	})
	return testServer{Server: srv, store: store, registry: reg}
}

func (ts testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.Handler().ServeHTTP(rec, req)
	return rec
}

func (ts testServer) create(t *testing.T) session.ID {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/sessions", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status %d, body %s", rec.Code, rec.Body)
	}
	var resp createResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("create: bad body: %v", err)
	}
	if resp.ID == "" || resp.Snapshot.State != snake.StateStart {
		t.Fatalf("create: unexpected response %+v", resp)
	}
	return resp.ID
}

func (ts testServer) snapshot(t *testing.T, id session.ID) snake.Snapshot {
	t.Helper()
	rec := ts.do(t, http.MethodGet, "/api/sessions/"+string(id), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get: status %d", rec.Code)
	}
	var snap snake.Snapshot
	if err := json.Unmarshal(rec.Body.Bytes(), &snap); err != nil {
		t.Fatalf("get: bad body: %v", err)
	}
	return snap
}

func (ts testServer) input(t *testing.T, id session.ID, body string) {
	t.Helper()
	rec := ts.do(t, http.MethodPost, "/api/sessions/"+string(id)+"/input", body)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("input %s: status %d, body %s", body, rec.Code, rec.Body)
	}
}

func waitState(t *testing.T, ts testServer, id session.ID, want snake.SessionState) snake.Snapshot {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for {
		snap := ts.snapshot(t, id)
		if snap.State == want {
			return snap
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %v, last state %v", want, snap.State)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, config.DefaultSnakeConfig())
	rec := ts.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("healthz: %d %s", rec.Code, rec.Body)
	}
}

func TestSessionLifecycle(t *testing.T) {
	// A 3x1 grid with a two-cell snake ends after the first meal.
	cfg := config.DefaultSnakeConfig()
	cfg.Grid.Width, cfg.Grid.Height = 3, 1
	cfg.Snake.InitialLength = 2
	cfg.Speed.BaseIntervalMS, cfg.Speed.MinIntervalMS = 5, 1
	ts := newTestServer(t, cfg)

	id := ts.create(t)
	ts.input(t, id, `{"kind":"begin"}`)
	waitState(t, ts, id, snake.StateHighScoreEntry)

	ts.input(t, id, `{"kind":"submit_initials","value":"abc"}`)
	snap := waitState(t, ts, id, snake.StateGameOverDisplay)
	if snap.Best.Score != 10 || snap.Best.Initials != "ABC" {
		t.Errorf("best = %+v, expected (10, ABC)", snap.Best)
	}

	rec := ts.do(t, http.MethodGet, "/api/best", "")
	var best snake.BestScore
	if err := json.Unmarshal(rec.Body.Bytes(), &best); err != nil {
		t.Fatalf("best: bad body: %v", err)
	}
	if best.Score != 10 || best.Initials != "ABC" {
		t.Errorf("stored best = %+v", best)
	}

	ts.input(t, id, `{"kind":"restart"}`)
	waitState(t, ts, id, snake.StateStart)

	rec = ts.do(t, http.MethodDelete, "/api/sessions/"+string(id), "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete: status %d", rec.Code)
	}
	if rec := ts.do(t, http.MethodGet, "/api/sessions/"+string(id), ""); rec.Code != http.StatusNotFound {
		t.Errorf("get after delete: status %d", rec.Code)
	}
}

func TestTurnInput(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Speed.BaseIntervalMS = 10000 // no tick during the test
	ts := newTestServer(t, cfg)

	id := ts.create(t)
	ts.input(t, id, `{"kind":"begin"}`)
	waitState(t, ts, id, snake.StatePlaying)
	ts.input(t, id, `{"kind":"direction","value":"up"}`)

	deadline := time.Now().Add(2 * time.Second)
	for ts.snapshot(t, id).Heading.String() != "up" {
		if time.Now().After(deadline) {
			t.Fatal("heading never changed to up")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestInputErrors(t *testing.T) {
	ts := newTestServer(t, config.DefaultSnakeConfig())
	id := ts.create(t)

	tests := []struct {
		name     string
		path     string
		body     string
		expected int
	}{
		{"unknown session", "/api/sessions/nope/input", `{"kind":"begin"}`, http.StatusNotFound},
		{"malformed json", "/api/sessions/" + string(id) + "/input", `{`, http.StatusBadRequest},
		{"missing kind", "/api/sessions/" + string(id) + "/input", `{"value":"up"}`, http.StatusBadRequest},
		{"unknown kind", "/api/sessions/" + string(id) + "/input", `{"kind":"jump"}`, http.StatusBadRequest},
		{"bad direction", "/api/sessions/" + string(id) + "/input", `{"kind":"direction","value":"north"}`, http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := ts.do(t, http.MethodPost, tc.path, tc.body)
			if rec.Code != tc.expected {
				t.Errorf("status = %d, expected %d (%s)", rec.Code, tc.expected, rec.Body)
			}
		})
	}
}

func TestBoardPNG(t *testing.T) {
	ts := newTestServer(t, config.DefaultSnakeConfig())
	id := ts.create(t)

	rec := ts.do(t, http.MethodGet, "/api/sessions/"+string(id)+"/board.png?scale=2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("board: status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("content type = %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("board is not a PNG: %v", err)
	}
	if img.Bounds().Dx() != 20*16*2 {
		t.Errorf("width = %d", img.Bounds().Dx())
	}

	for _, scale := range []string{"0", "99", "x"} {
		rec := ts.do(t, http.MethodGet, "/api/sessions/"+string(id)+"/board.png?scale="+scale, "")
		if rec.Code != http.StatusBadRequest {
			t.Errorf("scale=%s: status %d, expected 400", scale, rec.Code)
		}
	}
}

func TestBestEmpty(t *testing.T) {
	ts := newTestServer(t, config.DefaultSnakeConfig())
	rec := ts.do(t, http.MethodGet, "/api/best", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("best: status %d", rec.Code)
	}
	var best snake.BestScore
	if err := json.Unmarshal(rec.Body.Bytes(), &best); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if best.Score != 0 || best.Initials != "" {
		t.Errorf("best = %+v, expected zero", best)
	}
}

func TestStreamSession(t *testing.T) {
	cfg := config.DefaultSnakeConfig()
	cfg.Speed.BaseIntervalMS = 10000 // only input-driven snapshots
	ts := newTestServer(t, cfg)
	id := ts.create(t)

	httpSrv := httptest.NewServer(ts.Handler())
	defer httpSrv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, httpSrv.URL+"/api/sessions/"+string(id)+"/stream", nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("stream request failed: %v", err)
	}
	defer resp.Body.Close()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/event-stream") {
		t.Errorf("content type = %q", ct)
	}

	lines := bufio.NewScanner(resp.Body)
	lines.Buffer(make([]byte, 0, 64*1024), 1<<20)
	// nextState reads events until one carries a snapshot in the given state.
	nextState := func(want string) {
		t.Helper()
		for lines.Scan() {
			if strings.HasPrefix(lines.Text(), "data:") && strings.Contains(lines.Text(), `"state":"`+want+`"`) {
				return
			}
		}
		t.Fatalf("stream ended before state %s: %v", want, lines.Err())
	}

	nextState("start")
	ts.input(t, id, `{"kind":"begin"}`)
	nextState("playing")

	// Stopping the session ends the stream.
	if rec := ts.do(t, http.MethodDelete, "/api/sessions/"+string(id), ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete: status %d", rec.Code)
	}
	for lines.Scan() {
	}
	if err := lines.Err(); err != nil {
		t.Errorf("stream closed with error: %v", err)
	}
}

func TestStreamUnknownSession(t *testing.T) {
	ts := newTestServer(t, config.DefaultSnakeConfig())
	if rec := ts.do(t, http.MethodGet, "/api/sessions/nope/stream", ""); rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected 404", rec.Code)
	}
}
