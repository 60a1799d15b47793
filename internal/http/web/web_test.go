package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/darshan/internal/directory"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

type browser struct {
	t      *testing.T
	router *gin.Engine
	id     string
}

func newBrowser(t *testing.T) *browser {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := session.NewManager(session.Options{Directory: directory.Builtin()})
	t.Cleanup(m.Close)

	tmpl, err := Templates()
	require.NoError(t, err)
	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	Register(r, m, false)
	return &browser{t: t, router: r, id: uuid.NewString()}
}

func (b *browser) get() string {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.SessionHeader, b.id)
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	require.Equal(b.t, http.StatusOK, w.Code)
	return w.Body.String()
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	b.t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set(middleware.SessionHeader, b.id)
	w := httptest.NewRecorder()
	b.router.ServeHTTP(w, req)
	return w
}

// submit posts a form and follows the redirect back to the page.
func (b *browser) submit(path string, form url.Values) string {
	b.t.Helper()
	w := b.post(path, form)
	require.Equal(b.t, http.StatusSeeOther, w.Code)
	require.Equal(b.t, "/", w.Header().Get("Location"))
	return b.get()
}

func TestLandingPageListsPopularTemples(t *testing.T) {
	b := newBrowser(t)
	page := b.get()

	assert.Contains(t, page, "Popular Temples")
	assert.Contains(t, page, "Tirumala Venkateswara Temple")
	assert.Contains(t, page, "Somnath Temple")
	// seventh and eighth records are not popular
	assert.NotContains(t, page, "Meenakshi")
}

func TestSearchFromThePage(t *testing.T) {
	b := newBrowser(t)

	page := b.submit("/ui/search", url.Values{"q": {"mumbai"}})
	assert.Contains(t, page, "Siddhivinayak")

	page = b.submit("/ui/search", url.Values{"q": {"nonexistent-xyz"}})
	assert.Contains(t, page, "No temples found")

	page = b.submit("/ui/search", url.Values{"q": {"x"}})
	assert.NotContains(t, page, "No temples found")
}

func TestDetailPageAndActions(t *testing.T) {
	b := newBrowser(t)

	page := b.submit("/ui/select", url.Values{"id": {"golden-temple"}})
	assert.Contains(t, page, "Harmandir Sahib (Golden Temple)")
	assert.Contains(t, page, "Head covering mandatory")

	page = b.submit("/ui/notifications", nil)
	assert.Contains(t, page, "Notifications Enabled")
	assert.Contains(t, page, "Disable Queue Notifications")

	page = b.submit("/ui/actions/safety-guidelines", nil)
	assert.Contains(t, page, "Safety Guidelines")

	w := b.post("/ui/directions", nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.True(t, strings.HasPrefix(w.Header().Get("Location"), "https://www.google.com/maps/search/?api=1&query="))

	page = b.submit("/ui/back", nil)
	assert.Contains(t, page, "Popular Temples")
}

func TestNotFoundPage(t *testing.T) {
	b := newBrowser(t)
	page := b.submit("/ui/select", url.Values{"id": {"atlantis"}})
	assert.Contains(t, page, "Temple not found")
	assert.NotContains(t, page, "Temple Admin Login")
}

func TestAdminPagesRoundTrip(t *testing.T) {
	b := newBrowser(t)
	b.submit("/ui/select", url.Values{"id": {"meenakshi-temple"}})

	page := b.submit("/ui/admin/open", nil)
	assert.Contains(t, page, "Admin Login")
	assert.Contains(t, page, "Try: admin / temple123")

	page = b.submit("/ui/admin/login", url.Values{"username": {"admin"}, "password": {"nope"}})
	assert.Contains(t, page, "Login Failed")
	assert.Contains(t, page, `value="admin"`)

	page = b.submit("/ui/admin/login", url.Values{"username": {"admin"}, "password": {"temple123"}})
	assert.Contains(t, page, "Admin Dashboard")
	assert.Contains(t, page, `value="245"`)
	assert.Contains(t, page, `value="45 mins"`)

	page = b.submit("/ui/admin/status", url.Values{"crowd_count": {"300"}, "wait_time": {"1 hour"}})
	assert.Contains(t, page, "Status Updated")
	assert.Contains(t, page, `value="300"`)

	page = b.submit("/ui/admin/alert", url.Values{"alert_draft": {"  "}})
	assert.Contains(t, page, "Alert Required")

	page = b.submit("/ui/admin/alert", url.Values{"alert_draft": {"Evening closed"}})
	assert.Contains(t, page, "Alert Published")
	assert.NotContains(t, page, "Evening closed")

	page = b.submit("/ui/admin/logout", nil)
	assert.Contains(t, page, "Logged Out")
	assert.Contains(t, page, "Temple Admin Login")
}

func TestWrongScreenActionsJustRedirect(t *testing.T) {
	b := newBrowser(t)
	page := b.submit("/ui/admin/status", url.Values{"crowd_count": {"1"}})
	assert.Contains(t, page, "Popular Temples")
}

func TestPendingSearchShowsSearching(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	sc := session.Screen{
		View:      session.Landing(),
		Search:    session.SearchState{Query: "lotus", Visible: true, Pending: true},
		NoResults: true,
		Language:  session.DefaultLanguage,
		Languages: session.Languages,
	}
	var out strings.Builder
	require.NoError(t, tmpl.ExecuteTemplate(&out, pageTemplate, sc))
	assert.Contains(t, out.String(), "Searching…")
	assert.NotContains(t, out.String(), "No temples found")
}
