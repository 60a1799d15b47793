package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nixie-Tech-LLC/darshan/internal/directory"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/api"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/api/visitor/packets"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

type client struct {
	t      *testing.T
	router *gin.Engine
	id     string
}

func newClient(t *testing.T) *client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	m := session.NewManager(session.Options{Directory: directory.Builtin()})
	t.Cleanup(m.Close)

	r := gin.New()
	api.MountGroup(r, api.GroupConfig{
		Prefix: "/api",
	}, SessionModule(m, false))
	return &client{t: t, router: r, id: uuid.NewString()}
}

func (c *client) do(method, path string, body any) (int, packets.SessionResponse) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, c.id)

	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	var out packets.SessionResponse
	if w.Code == http.StatusOK {
		require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func suggestionIDs(s packets.SessionResponse) []string {
	ids := []string{}
	for _, t := range s.Search.Suggestions {
		ids = append(ids, t.ID)
	}
	return ids
}

func TestLandingPage(t *testing.T) {
	c := newClient(t)

	code, s := c.do(http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, session.KindLanding, s.View.Kind)
	assert.Len(t, s.Popular, 6)
	assert.False(t, s.Search.Visible)
	assert.Equal(t, "en", s.Language)
	assert.Len(t, s.Languages, 6)
}

func TestSearchSuggestions(t *testing.T) {
	c := newClient(t)

	code, s := c.do(http.MethodPost, "/api/session/search", packets.SearchRequest{Query: "nath"})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, s.Search.Visible)
	assert.False(t, s.Search.Pending)
	assert.Equal(t, []string{"jagannath-puri", "kedarnath", "somnath"}, suggestionIDs(s))

	_, s = c.do(http.MethodPost, "/api/session/search", packets.SearchRequest{Query: "n"})
	assert.False(t, s.Search.Visible)
	assert.Empty(t, s.Search.Suggestions)

	_, s = c.do(http.MethodPost, "/api/session/search", packets.SearchRequest{Query: "nonexistent-xyz"})
	assert.True(t, s.Search.Visible)
	assert.True(t, s.Search.NoResults)
}

func TestSelectAndBack(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/session/search", packets.SearchRequest{Query: "somnath"})

	code, s := c.do(http.MethodPost, "/api/session/select", packets.SelectRequest{TempleID: "somnath"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, session.Detail("somnath"), s.View)
	require.NotNil(t, s.Temple)
	assert.Equal(t, "Somnath Temple", s.Temple.Name)
	assert.Empty(t, s.Search.Query)

	code, s = c.do(http.MethodPost, "/api/session/back", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, session.Landing(), s.View)
	assert.Nil(t, s.Temple)

	code, _ = c.do(http.MethodPost, "/api/session/select", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUnknownTempleIsNotFound(t *testing.T) {
	c := newClient(t)

	code, s := c.do(http.MethodPost, "/api/session/select", packets.SelectRequest{TempleID: "atlantis"})
	require.Equal(t, http.StatusOK, code)
	assert.True(t, s.NotFound)
	assert.Nil(t, s.Temple)

	code, _ = c.do(http.MethodPost, "/api/session/directions", nil)
	assert.Equal(t, http.StatusNotFound, code)

	_, s = c.do(http.MethodPost, "/api/session/back", nil)
	assert.Equal(t, session.Landing(), s.View)
}

func TestDetailActions(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/session/select", packets.SelectRequest{TempleID: "vaishno-devi"})

	req := httptest.NewRequest(http.MethodPost, "/api/session/directions", nil)
	req.Header.Set(middleware.SessionHeader, c.id)
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var dir packets.DirectionsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dir))
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=Vaishno%20Devi%20Temple%2C%20Katra%2C%20Jammu%20%26%20Kashmir", dir.URL)
	require.Len(t, dir.Session.Toasts, 1)
	assert.Equal(t, "Opening Directions", dir.Session.Toasts[0].Title)

	_, s := c.do(http.MethodPost, "/api/session/notifications", nil)
	assert.True(t, s.Notifications)
	assert.Equal(t, "Notifications Enabled", s.Toasts[0].Title)
	_, s = c.do(http.MethodPost, "/api/session/notifications", nil)
	assert.False(t, s.Notifications)

	_, s = c.do(http.MethodPost, "/api/session/actions/book-pooja", nil)
	assert.Equal(t, "Booking System", s.Toasts[0].Title)
	code, _ := c.do(http.MethodPost, "/api/session/actions/donate", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, s = c.do(http.MethodDelete, "/api/session/toasts/"+s.Toasts[0].ID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, s.Toasts)
}

func TestDetailActionsNeedDetailPage(t *testing.T) {
	c := newClient(t)

	code, _ := c.do(http.MethodPost, "/api/session/notifications", nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestLanguage(t *testing.T) {
	c := newClient(t)

	code, s := c.do(http.MethodPost, "/api/session/language", packets.LanguageRequest{Code: "mr"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "mr", s.Language)

	code, _ = c.do(http.MethodPost, "/api/session/language", packets.LanguageRequest{Code: "fr"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestEndSession(t *testing.T) {
	c := newClient(t)
	c.do(http.MethodPost, "/api/session/select", packets.SelectRequest{TempleID: "kedarnath"})

	req := httptest.NewRequest(http.MethodDelete, "/api/session", nil)
	req.Header.Set(middleware.SessionHeader, c.id)
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, middleware.SessionCookie, cookies[len(cookies)-1].Name)
	assert.Negative(t, cookies[len(cookies)-1].MaxAge)

	_, s := c.do(http.MethodGet, "/api/session", nil)
	assert.Equal(t, session.Landing(), s.View)
}
