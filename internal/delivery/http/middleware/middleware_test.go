package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tracefield-site/internal/domain"
	"tracefield-site/internal/locale"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(mw...)
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.POST("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	return r
}

func TestMemoryCounter(t *testing.T) {
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	m := NewMemoryCounter()
	m.now = func() time.Time { return now }

	count, resetAt, err := m.Incr(context.Background(), "k", time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, now.Add(time.Minute), resetAt)

	count, _, _ = m.Incr(context.Background(), "k", time.Minute)
	assert.Equal(t, 2, count)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 1, m.Sweep())

	count, _, _ = m.Incr(context.Background(), "k", time.Minute)
	assert.Equal(t, 1, count, "expired window starts over")
}

type failingCounter struct{}

func (failingCounter) Incr(context.Context, string, time.Duration) (int, time.Time, error) {
	return 0, time.Time{}, assert.AnError
}

func TestRateLimitMiddleware(t *testing.T) {
	t.Run("Rejects above the limit", func(t *testing.T) {
		r := newEngine(RateLimitMiddleware(RateLimitConfig{Limit: 2, Window: time.Minute}, nil, nil))

		for i := 0; i < 2; i++ {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, http.StatusOK, w.Code)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	})

	t.Run("Falls back to memory when the primary fails open", func(t *testing.T) {
		fallback := NewMemoryCounter()
		r := newEngine(RateLimitMiddleware(RateLimitConfig{Limit: 1, Window: time.Minute, KeyPrefix: "t:"}, failingCounter{}, fallback))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, fallback.entries, 1)
	})

	t.Run("OnLimited writes the refusal", func(t *testing.T) {
		config := RateLimitConfig{Limit: 1, Window: time.Minute, OnLimited: func(c *gin.Context) {
			c.String(http.StatusTooManyRequests, "slow down")
		}}
		r := newEngine(RateLimitMiddleware(config, nil, nil))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "slow down", w.Body.String())
		assert.NotEmpty(t, w.Header().Get("Retry-After"))
	})

	t.Run("Fails closed when configured", func(t *testing.T) {
		r := newEngine(RateLimitMiddleware(RateLimitConfig{Limit: 1, Window: time.Minute, FailClosed: true}, failingCounter{}, nil))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})
}

func TestRequestID(t *testing.T) {
	r := newEngine(RequestID())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Header().Get(RequestIDHeader))
}

func TestCORSMiddleware(t *testing.T) {
	r := newEngine(CORSMiddleware([]string{"https://tracefield.fr/"}, true))

	tests := []struct {
		name   string
		origin string
		method string
		code   int
		allow  string
	}{
		{"Listed origin", "https://tracefield.fr", http.MethodGet, http.StatusOK, "https://tracefield.fr"},
		{"Unlisted origin gets no headers", "https://evil.example", http.MethodGet, http.StatusOK, ""},
		{"Preflight from listed origin", "https://tracefield.fr", http.MethodOptions, http.StatusNoContent, "https://tracefield.fr"},
		{"Preflight from unlisted origin", "https://evil.example", http.MethodOptions, http.StatusForbidden, ""},
		{"Localhost refused in release", "http://localhost:3000", http.MethodOptions, http.StatusForbidden, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.code, w.Code)
			assert.Equal(t, tt.allow, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestCSRFMiddleware(t *testing.T) {
	r := newEngine(CSRFMiddleware(false))

	t.Run("GET issues a token", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Set-Cookie"), CSRFTokenCookieName+"=")
	})

	t.Run("POST with mismatching header is refused", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: "a"})
		req.Header.Set(CSRFTokenHeaderName, "b")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("POST with matching header passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.AddCookie(&http.Cookie{Name: CSRFTokenCookieName, Value: "a"})
		req.Header.Set(CSRFTokenHeaderName, "a")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestLanguage(t *testing.T) {
	catalog, err := locale.LoadCatalog(locale.EmbeddedFS(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	store := locale.NewCookiePreferenceStore(false)

	r := gin.New()
	r.Use(Language(catalog, store, domain.LanguageFrench))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "%s|%s", LanguageFrom(c), TranslatorFrom(c).Tk(locale.KeyNavHome))
	})

	tests := []struct {
		name   string
		query  string
		cookie string
		accept string
		want   string
	}{
		{"Default", "", "", "", "fr|Accueil"},
		{"Accept-Language", "", "", "th-TH,th;q=0.9", "th|หน้าแรก"},
		{"Cookie beats Accept-Language", "", "en", "th", "en|Home"},
		{"Query beats cookie", "?lang=fr", "en", "", "fr|Accueil"},
		{"Tampered cookie is ignored", "", "xx", "", "fr|Accueil"},
		{"Unsupported query is ignored", "?lang=de", "en", "", "en|Home"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: locale.LanguageCookieName, Value: tt.cookie})
			}
			if tt.accept != "" {
				req.Header.Set("Accept-Language", tt.accept)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}
