package admin

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdityaD28/portfolio/internal/store"
)

const testTemplates = `
{{define "privacy.html"}}privacy{{end}}
{{define "admin-login.html"}}login {{.error}}{{end}}
{{define "admin-error.html"}}error {{.error}}{{end}}
{{define "admin-dashboard.html"}}total={{.stats.TotalVisitors}}{{end}}
{{define "admin-visitors.html"}}{{range .visitors}}{{.Path}};{{end}}{{end}}
`

func setup(t *testing.T) (*gin.Engine, *Admin, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	a, err := New(st, Config{Username: "root", Password: "pw", Retention: time.Hour})
	require.NoError(t, err)
	a.track = func(f func()) { f() }

	r := gin.New()
	r.SetHTMLTemplate(template.Must(template.New("").Parse(testTemplates)))
	r.Use(a.TrackingMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "home") })
	a.Register(r)
	return r, a, st
}

func login(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	form := url.Values{"username": {"root"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/dashboard", w.Header().Get("Location"))

	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName {
			return c
		}
	}
	t.Fatal("no admin cookie set")
	return nil
}

func TestHashIPIsStableAndTruncated(t *testing.T) {
	_, a, _ := setup(t)
	h := a.HashIP("203.0.113.7")
	assert.Len(t, h, 16)
	assert.Equal(t, h, a.HashIP("203.0.113.7"))
	assert.NotEqual(t, h, a.HashIP("203.0.113.8"))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r, _, _ := setup(t)
	form := url.Values{"username": {"root"}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestDashboardRequiresToken(t *testing.T) {
	r, _, _ := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil))
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/admin/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/api/stats", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestTrackingFeedsDashboard(t *testing.T) {
	r, _, st := setup(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	r.ServeHTTP(httptest.NewRecorder(), dnt)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/privacy", nil))

	stats, err := st.Stats(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.TotalVisitors)

	cookie := login(t, r)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "total=1", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/admin/export/stats", nil)
	req.AddCookie(cookie)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "admin-stats.json")

	var exported store.Stats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &exported))
	assert.EqualValues(t, 1, exported.TotalVisitors)
	require.Len(t, exported.RecentVisitors, 1)
	assert.NotContains(t, exported.RecentVisitors[0].HashedIP, ".")
}

func TestLogoutClearsCookie(t *testing.T) {
	r, _, _ := setup(t)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/logout", nil))
	assert.Equal(t, http.StatusFound, w.Code)

	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == cookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestDefaultCredentials(t *testing.T) {
	a, err := New(nil, Config{})
	require.NoError(t, err)
	assert.True(t, a.checkCredentials(defaultUsername, defaultPassword))
	assert.False(t, a.checkCredentials(defaultUsername, ""))
}
