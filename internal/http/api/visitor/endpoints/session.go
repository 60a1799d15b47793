package endpoints

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/darshan/internal/http/api"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/api/visitor/packets"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

// SessionModule mounts the visitor's own session: navigation, search and the
// detail page actions.
func SessionModule(manager *session.Manager, secureCookies bool) api.Module {
	ctl := &SessionController{manager: manager, secure: secureCookies}
	return api.ModuleFunc(func(c *api.Controller) {
		c.GET("/session", ctl.getSession)
		c.DELETE("/session", ctl.endSession)

		c.POST("/session/search", ctl.search)
		c.POST("/session/select", ctl.selectTemple)
		c.POST("/session/back", ctl.back)

		c.POST("/session/directions", ctl.directions)
		c.POST("/session/notifications", ctl.toggleNotifications)
		c.POST("/session/actions/:action", ctl.acknowledge)

		c.POST("/session/language", ctl.setLanguage)
		c.DELETE("/session/toasts/:id", ctl.dismissToast)
	})
}

type SessionController struct {
	manager *session.Manager
	secure  bool
}

// Render answers with the session's current screen.
func Render(ctx *gin.Context, manager *session.Manager, sessionID string) (packets.SessionResponse, *api.APIError) {
	sc, err := manager.Screen(ctx.Request.Context(), sessionID)
	if err != nil {
		return packets.SessionResponse{}, api.FromError(err)
	}
	return packets.NewSessionResponse(sc), nil
}

// GET /api/session
func (s *SessionController) getSession(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	return Render(ctx, s.manager, sessionID)
}

// DELETE /api/session
func (s *SessionController) endSession(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	if err := s.manager.End(ctx.Request.Context(), sessionID); err != nil {
		return nil, api.FromError(err)
	}
	middleware.ClearSession(ctx, s.secure)
	return gin.H{"ended": true}, nil
}

// POST /api/session/search
func (s *SessionController) search(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	var request packets.SearchRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	task, err := s.manager.SetQuery(ctx.Request.Context(), sessionID, request.Query)
	if err != nil {
		return nil, api.FromError(err)
	}
	// a newer query superseding this one is not an error for this request
	if err := api.Await(ctx, task); err != nil &&
		!errors.Is(err, session.ErrStale) && !errors.Is(err, context.DeadlineExceeded) {
		return nil, api.FromError(err)
	}
	return Render(ctx, s.manager, sessionID)
}

// POST /api/session/select
func (s *SessionController) selectTemple(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	var request packets.SelectRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := s.manager.Select(ctx.Request.Context(), sessionID, request.TempleID); err != nil {
		return nil, api.FromError(err)
	}
	return Render(ctx, s.manager, sessionID)
}

// POST /api/session/back
func (s *SessionController) back(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	if err := s.manager.Back(ctx.Request.Context(), sessionID); err != nil {
		return nil, api.FromError(err)
	}
	return Render(ctx, s.manager, sessionID)
}

// POST /api/session/directions
func (s *SessionController) directions(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	link, err := s.manager.Directions(ctx.Request.Context(), sessionID)
	if err != nil {
		return nil, api.FromError(err)
	}
	screen, apiErr := Render(ctx, s.manager, sessionID)
	if apiErr != nil {
		return nil, apiErr
	}
	return packets.DirectionsResponse{URL: link, Session: screen}, nil
}

// POST /api/session/notifications
func (s *SessionController) toggleNotifications(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	if _, err := s.manager.ToggleNotifications(ctx.Request.Context(), sessionID); err != nil {
		return nil, api.FromError(err)
	}
	return Render(ctx, s.manager, sessionID)
}

// POST /api/session/actions/:action
func (s *SessionController) acknowledge(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	stub, err := session.ParseStub(ctx.Param("action"))
	if err != nil {
		return nil, &api.APIError{Code: http.StatusNotFound, Message: err.Error()}
	}
	if err := s.manager.Acknowledge(ctx.Request.Context(), sessionID, stub); err != nil {
		return nil, api.FromError(err)
	}
	return Render(ctx, s.manager, sessionID)
}

// POST /api/session/language
func (s *SessionController) setLanguage(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	var request packets.LanguageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	if err := s.manager.SetLanguage(ctx.Request.Context(), sessionID, request.Code); err != nil {
		return nil, api.FromError(err)
	}
	return Render(ctx, s.manager, sessionID)
}

// DELETE /api/session/toasts/:id
func (s *SessionController) dismissToast(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	if err := s.manager.DismissToast(ctx.Request.Context(), sessionID, ctx.Param("id")); err != nil {
		return nil, api.FromError(err)
	}
	return Render(ctx, s.manager, sessionID)
}
