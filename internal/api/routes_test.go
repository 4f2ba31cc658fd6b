package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/playmatatu/golfcard/internal/auth"
	"github.com/playmatatu/golfcard/internal/card"
	"github.com/playmatatu/golfcard/internal/config"
	"github.com/playmatatu/golfcard/internal/golf"
	"github.com/playmatatu/golfcard/internal/session"
	"github.com/playmatatu/golfcard/internal/ws"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	router   *gin.Engine
	sessions *session.Manager
	issuer   *auth.Issuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerWith(t, session.Options{TickHz: 30, Tuning: golf.DefaultTuning(), Features: golf.AllFeatures()})
}

func newTestServerWith(t *testing.T, opts session.Options) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.Config{Environment: "test", WebRoot: "../../web"}
	issuer := auth.NewIssuer("test-secret", time.Hour)
	codes, err := auth.NewCodeChecker([]string{"K+D"}, nil, bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	sessions := session.NewManager(ctx, nil, issuer, opts)

	router := gin.New()
	SetupRoutes(router, cfg, Services{
		Sessions: sessions,
		Hub:      ws.NewHub(),
		Card:     card.NewService(card.Default(), card.NewMemoryStore()),
		Codes:    codes,
		Issuer:   issuer,
	})
	return &testServer{router: router, sessions: sessions, issuer: issuer}
}

func (s *testServer) do(method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %s: %v", w.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/v1/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]interface{}
	decode(t, w, &body)
	if body["status"] != "ok" {
		t.Errorf("health = %v", body)
	}
}

func TestTeaserIsPublic(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/v1/card/teaser", nil, "")
	var body map[string]interface{}
	decode(t, w, &body)
	if w.Code != http.StatusOK || body["to"] != card.Default().HerName {
		t.Errorf("teaser %d %v", w.Code, body)
	}
	if _, leaked := body["letter"]; leaked {
		t.Errorf("teaser leaked the letter")
	}
}

func TestCardIsLockedWithoutToken(t *testing.T) {
	s := newTestServer(t)
	if w := s.do(http.MethodGet, "/api/v1/card", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestUnlockByCodeOpensCard(t *testing.T) {
	s := newTestServer(t)

	if w := s.do(http.MethodPost, "/api/v1/unlock", gin.H{"code": "nope"}, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong code status = %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/v1/unlock", gin.H{}, ""); w.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d", w.Code)
	}

	w := s.do(http.MethodPost, "/api/v1/unlock", gin.H{"code": " k + d "}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("unlock status = %d: %s", w.Code, w.Body.String())
	}
	var unlocked struct {
		Token  string `json:"token"`
		Method string `json:"method"`
	}
	decode(t, w, &unlocked)
	if unlocked.Method != auth.MethodCode || w.Header().Get("Set-Cookie") == "" {
		t.Errorf("unlock = %+v cookie=%q", unlocked, w.Header().Get("Set-Cookie"))
	}

	w = s.do(http.MethodGet, "/api/v1/card", nil, unlocked.Token)
	if w.Code != http.StatusOK {
		t.Fatalf("card status = %d", w.Code)
	}
	var page struct {
		Letter   string              `json:"letter"`
		Reasons  []string            `json:"reasons"`
		Vouchers []card.VoucherState `json:"vouchers"`
	}
	decode(t, w, &page)
	if page.Letter == "" || len(page.Reasons) == 0 || len(page.Vouchers) == 0 {
		t.Errorf("card page = %+v", page)
	}
}

func TestRedeemVoucher(t *testing.T) {
	s := newTestServer(t)
	token, _, _ := s.issuer.Issue(auth.MethodCode, "", 0)

	w := s.do(http.MethodPost, "/api/v1/card/vouchers/cozy-night-in/redeem", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("redeem status = %d: %s", w.Code, w.Body.String())
	}
	var first card.VoucherState
	decode(t, w, &first)

	w = s.do(http.MethodPost, "/api/v1/card/vouchers/cozy-night-in/redeem", nil, token)
	var second card.VoucherState
	decode(t, w, &second)
	if !first.Redeemed || !second.RedeemedAt.Equal(*first.RedeemedAt) {
		t.Errorf("redeem not idempotent: %+v then %+v", first, second)
	}

	if w := s.do(http.MethodPost, "/api/v1/card/vouchers/pony/redeem", nil, token); w.Code != http.StatusNotFound {
		t.Errorf("unknown voucher status = %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/v1/card/vouchers/cozy-night-in/redeem", nil, ""); w.Code != http.StatusUnauthorized {
		t.Errorf("locked redeem status = %d", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodPost, "/api/v1/sessions", gin.H{"width": 800, "height": 600, "ratio": 2}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Token string `json:"token"`
		WSURL string `json:"ws_url"`
	}
	decode(t, w, &created)
	if created.Token == "" || created.WSURL != "/api/v1/sessions/"+created.Token+"/ws" {
		t.Errorf("created = %+v", created)
	}

	w = s.do(http.MethodGet, "/api/v1/sessions/"+created.Token, nil, "")
	var snap session.Snapshot
	decode(t, w, &snap)
	if w.Code != http.StatusOK || snap.Token != created.Token || snap.Width != 800 {
		t.Errorf("snapshot %d %+v", w.Code, snap)
	}

	if w := s.do(http.MethodPost, "/api/v1/unlock", gin.H{"session": created.Token}, ""); w.Code != http.StatusForbidden {
		t.Errorf("unlock before winning status = %d", w.Code)
	}
	if w := s.do(http.MethodGet, "/api/v1/sessions/missing", nil, ""); w.Code != http.StatusNotFound {
		t.Errorf("missing session status = %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/v1/sessions", gin.H{"width": -3}, ""); w.Code != http.StatusBadRequest {
		t.Errorf("negative viewport status = %d", w.Code)
	}
	if w := s.do(http.MethodPost, "/api/v1/sessions", gin.H{"width": 800, "height": 1e18}, ""); w.Code != http.StatusBadRequest {
		t.Errorf("oversized viewport status = %d", w.Code)
	}
}

func TestCreateSessionLimit(t *testing.T) {
	s := newTestServerWith(t, session.Options{TickHz: 30, MaxSessions: 1})
	if w := s.do(http.MethodPost, "/api/v1/sessions", gin.H{"width": 800, "height": 600}, ""); w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d: %s", w.Code, w.Body.String())
	}
	w := s.do(http.MethodPost, "/api/v1/sessions", gin.H{"width": 800, "height": 600}, "")
	if w.Code != http.StatusTooManyRequests {
		t.Errorf("second create status = %d, want 429", w.Code)
	}
	if s.sessions.Count() != 1 {
		t.Errorf("live sessions = %d, want 1", s.sessions.Count())
	}
}

func TestCreateSessionWithoutBody(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Errorf("status = %d: %s", w.Code, w.Body.String())
	}
}

func TestWebShellServed(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/", nil, "")
	if w.Code != http.StatusOK || !bytes.Contains(w.Body.Bytes(), []byte("<canvas")) {
		t.Errorf("index status = %d", w.Code)
	}
}
