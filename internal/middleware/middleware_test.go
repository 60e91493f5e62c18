package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/harentsoaR/doctors-portal/internal/auth"
	"github.com/harentsoaR/doctors-portal/internal/models"
	"github.com/harentsoaR/doctors-portal/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(t *testing.T) (*gin.Engine, *auth.Issuer, *store.Memory) {
	t.Helper()
	iss, err := auth.NewIssuer("test-secret")
	if err != nil {
		t.Fatalf("issuer: %v", err)
	}
	st := store.NewMemory()
	r := gin.New()
	r.GET("/me", RequireIdentity(iss), func(c *gin.Context) {
		id, _ := IdentityFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": id.Email})
	})
	r.GET("/admin", RequireIdentity(iss), RequireAdmin(auth.NewAuthorizer(st)), func(c *gin.Context) {
		admin, ok := AdminFrom(c)
		c.JSON(http.StatusOK, gin.H{"email": admin.Email(), "ok": ok})
	})
	r.GET("/admin-only", RequireAdmin(auth.NewAuthorizer(st)), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, iss, st
}

func do(r http.Handler, path, authz string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return body.Message
}

func TestRequireIdentity(t *testing.T) {
	r, iss, _ := protectedRouter(t)
	tok, _ := iss.Issue("a@x.com")

	tests := []struct {
		name   string
		authz  string
		status int
		msg    string
	}{
		{"no header", "", http.StatusUnauthorized, "UnAuthorized access"},
		{"scheme only", "Bearer", http.StatusForbidden, "Forbidden access"},
		{"bad token", "Bearer abc.def.ghi", http.StatusForbidden, "Forbidden access"},
		{"valid", "Bearer " + tok, http.StatusOK, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(r, "/me", tt.authz)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.msg != "" && message(t, w) != tt.msg {
				t.Fatalf("message = %q, want %q", message(t, w), tt.msg)
			}
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	r, iss, st := protectedRouter(t)
	ctx := context.Background()
	st.UpsertUser(ctx, "root@x.com", nil)
	st.SetRole(ctx, "root@x.com", models.RoleAdmin)
	st.UpsertUser(ctx, "user@x.com", nil)

	rootTok, _ := iss.Issue("root@x.com")
	userTok, _ := iss.Issue("user@x.com")
	ghostTok, _ := iss.Issue("ghost@x.com")

	if w := do(r, "/admin", "Bearer "+rootTok); w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "root@x.com") {
		t.Fatalf("admin: %d %s", w.Code, w.Body.String())
	}
	for _, tok := range []string{userTok, ghostTok} {
		w := do(r, "/admin", "Bearer "+tok)
		if w.Code != http.StatusForbidden || message(t, w) != "forbidden" {
			t.Fatalf("non-admin: %d %s", w.Code, w.Body.String())
		}
	}
	if w := do(r, "/admin", ""); w.Code != http.StatusUnauthorized {
		t.Fatalf("no token: %d", w.Code)
	}
	// Without the verifier in front there is no identity.
	if w := do(r, "/admin-only", "Bearer "+rootTok); w.Code != http.StatusUnauthorized {
		t.Fatalf("authorizer alone: %d", w.Code)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := NewRateLimiter(0.001, 2)
	r := gin.New()
	r.PUT("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPut, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("codes = %v", codes)
	}

	req := httptest.NewRequest(http.MethodPut, "/login", nil)
	req.RemoteAddr = "10.0.0.2:1234"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("other client limited: %d", w.Code)
	}

	rl.Sweep(0)
	if len(rl.clients) != 0 {
		t.Fatalf("sweep left %d clients", len(rl.clients))
	}
}

func TestLoggerRecordsInternalErrors(t *testing.T) {
	var buf bytes.Buffer
	r := gin.New()
	r.Use(RequestID(), Logger(zerolog.New(&buf)))
	r.GET("/boom", func(c *gin.Context) { AbortWithError(c, errors.New("mongo down")) })

	w := do(r, "/boom", "")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", w.Code)
	}
	if message(t, w) != "internal server error" {
		t.Fatalf("cause leaked: %s", w.Body.String())
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatal("missing request id header")
	}
	line := buf.String()
	if !strings.Contains(line, "mongo down") || !strings.Contains(line, `"status":500`) {
		t.Fatalf("log line = %s", line)
	}
}
