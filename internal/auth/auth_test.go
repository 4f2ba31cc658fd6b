package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func TestNormalizeCode(t *testing.T) {
	for _, in := range []string{"K+D", "k+d", " K + D ", "k\t+ d\n"} {
		if got := NormalizeCode(in); got != "K+D" {
			t.Errorf("NormalizeCode(%q) = %q, want K+D", in, got)
		}
	}
}

func TestCodeChecker(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("SECRET"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	c, err := NewCodeChecker([]string{"K+D", "KD"}, []string{string(hash)}, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("NewCodeChecker failed: %v", err)
	}

	for _, ok := range []string{"K+D", "K + D", "kd", " secret "} {
		if err := c.Check(ok); err != nil {
			t.Errorf("Check(%q) = %v, want accepted", ok, err)
		}
	}
	for _, bad := range []string{"", "  ", "K-D", "KDD"} {
		if err := c.Check(bad); err != ErrWrongCode {
			t.Errorf("Check(%q) = %v, want ErrWrongCode", bad, err)
		}
	}
}

func TestCodeCheckerRejectsBadHash(t *testing.T) {
	if _, err := NewCodeChecker(nil, []string{"plaintext"}, bcrypt.MinCost); err == nil {
		t.Errorf("non-bcrypt hash accepted")
	}
}

func TestIssueAndParse(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)
	token, exp, err := iss.Issue(MethodWin, "abc", 4)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if time.Until(exp) < 59*time.Minute {
		t.Errorf("expiry %v is too soon", exp)
	}

	claims, err := iss.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.Method != MethodWin || claims.Session != "abc" || claims.Strokes != 4 {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseRejects(t *testing.T) {
	iss := NewIssuer("s3cret", time.Hour)
	other, _, _ := NewIssuer("other", time.Hour).Issue(MethodCode, "", 0)
	if _, err := iss.Parse(other); err != ErrInvalidToken {
		t.Errorf("token from another secret: err = %v", err)
	}

	expired := NewIssuer("s3cret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, _ := expired.Issue(MethodCode, "", 0)
	if _, err := iss.Parse(old); err != ErrInvalidToken {
		t.Errorf("expired token: err = %v", err)
	}

	if _, err := iss.Parse("not.a.token"); err != ErrInvalidToken {
		t.Errorf("garbage token: err = %v", err)
	}
}

func TestRequireUnlock(t *testing.T) {
	gin.SetMode(gin.TestMode)
	iss := NewIssuer("s3cret", time.Hour)
	token, _, _ := iss.Issue(MethodCode, "", 0)

	r := gin.New()
	r.GET("/card", RequireUnlock(iss), func(c *gin.Context) {
		c.String(http.StatusOK, Claims(c).Method)
	})

	cases := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"none", func(*http.Request) {}, http.StatusUnauthorized},
		{"bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }, http.StatusOK},
		{"cookie", func(r *http.Request) { r.AddCookie(&http.Cookie{Name: CookieName, Value: token}) }, http.StatusOK},
		{"bad", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/card", nil)
		tc.setup(req)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != tc.status {
			t.Errorf("%s: status = %d, want %d", tc.name, w.Code, tc.status)
		}
		if tc.status == http.StatusOK && w.Body.String() != MethodCode {
			t.Errorf("%s: body = %q", tc.name, w.Body.String())
		}
	}
}
