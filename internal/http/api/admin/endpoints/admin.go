package endpoints

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/darshan/internal/http/api"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/api/admin/packets"
	visitor "github.com/Nixie-Tech-LLC/darshan/internal/http/api/visitor/endpoints"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

// AdminPublicModule mounts the login form endpoints. They run in the
// visitor's cookie session; a successful login hands out the admin token.
func AdminPublicModule(manager *session.Manager, jwtSecret string) api.Module {
	ctl := newAdminController(manager, jwtSecret)
	return api.ModuleFunc(func(c *api.Controller) {
		c.POST("/session/admin/open", ctl.openLogin)
		c.POST("/session/admin/cancel", ctl.cancelLogin)
		c.POST("/session/admin/login", ctl.login)
	})
}

// AdminSessionModule mounts the dashboard endpoints (JWT required).
func AdminSessionModule(manager *session.Manager) api.Module {
	ctl := newAdminController(manager, "")
	return api.ModuleFunc(func(c *api.Controller) {
		c.PUT("/session/admin/dashboard", ctl.editDashboard)
		c.POST("/session/admin/status", ctl.updateStatus)
		c.POST("/session/admin/alert", ctl.publishAlert)
		c.POST("/session/admin/logout", ctl.logout)
	})
}

type AdminController struct {
	manager   *session.Manager
	jwtSecret string
}

func newAdminController(manager *session.Manager, secret string) *AdminController {
	return &AdminController{manager: manager, jwtSecret: secret}
}

// POST /api/session/admin/open
func (a *AdminController) openLogin(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	if err := a.manager.OpenAdminLogin(ctx.Request.Context(), sessionID); err != nil {
		return nil, api.FromError(err)
	}
	return visitor.Render(ctx, a.manager, sessionID)
}

// POST /api/session/admin/cancel
func (a *AdminController) cancelLogin(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	if err := a.manager.CancelLogin(ctx.Request.Context(), sessionID); err != nil {
		return nil, api.FromError(err)
	}
	return visitor.Render(ctx, a.manager, sessionID)
}

// POST /api/session/admin/login
func (a *AdminController) login(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	var request packets.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}

	task, err := a.manager.SubmitLogin(ctx.Request.Context(), sessionID, request.Username, request.Password)
	if err != nil {
		return nil, api.FromError(err)
	}
	waitErr := api.Await(ctx, task)
	if waitErr != nil && !errors.Is(waitErr, context.DeadlineExceeded) {
		return nil, api.FromError(waitErr)
	}

	screen, apiErr := visitor.Render(ctx, a.manager, sessionID)
	if apiErr != nil {
		return nil, apiErr
	}
	if screen.View.Kind != session.KindAdminDashboard {
		return packets.LoginResponse{Session: screen}, nil
	}

	token, exp, err := middleware.GenerateJWT(sessionID, screen.View.TempleID, a.jwtSecret)
	if err != nil {
		log.Error().Err(err).Str("session", sessionID).Msg("could not generate admin token")
		return nil, &api.APIError{Code: http.StatusInternalServerError, Message: "could not generate token"}
	}
	return packets.LoginResponse{Token: token, ExpiresAt: exp.Format(time.RFC3339), Session: screen}, nil
}

// authorize checks that the token still belongs to the dashboard the
// session is on. Logging out or navigating away ends the token's use.
func (a *AdminController) authorize(ctx *gin.Context, sessionID string) *api.APIError {
	temple, ok := middleware.GetAdminTemple(ctx)
	if !ok {
		return &api.APIError{Code: http.StatusUnauthorized, Message: "unauthorized"}
	}
	st, err := a.manager.State(ctx.Request.Context(), sessionID)
	if err != nil {
		return api.FromError(err)
	}
	if st.View != session.AdminDashboard(temple) {
		return &api.APIError{Code: http.StatusUnauthorized, Message: "admin session has ended"}
	}
	return nil
}

// PUT /api/session/admin/dashboard
func (a *AdminController) editDashboard(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	if apiErr := a.authorize(ctx, sessionID); apiErr != nil {
		return nil, apiErr
	}
	var request packets.DashboardRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		return nil, &api.APIError{Code: http.StatusBadRequest, Message: err.Error()}
	}
	edit := session.DashboardEdit{
		CrowdCount: request.CrowdCount,
		WaitTime:   request.WaitTime,
		AlertDraft: request.AlertDraft,
	}
	if err := a.manager.EditDashboard(ctx.Request.Context(), sessionID, edit); err != nil {
		return nil, api.FromError(err)
	}
	return visitor.Render(ctx, a.manager, sessionID)
}

// POST /api/session/admin/status
func (a *AdminController) updateStatus(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	if apiErr := a.authorize(ctx, sessionID); apiErr != nil {
		return nil, apiErr
	}
	task, err := a.manager.UpdateStatus(ctx.Request.Context(), sessionID)
	if err != nil {
		return nil, api.FromError(err)
	}
	return a.finish(ctx, sessionID, task)
}

// POST /api/session/admin/alert
func (a *AdminController) publishAlert(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	if apiErr := a.authorize(ctx, sessionID); apiErr != nil {
		return nil, apiErr
	}
	task, err := a.manager.PublishAlert(ctx.Request.Context(), sessionID)
	if err != nil {
		return nil, api.FromError(err)
	}
	return a.finish(ctx, sessionID, task)
}

// POST /api/session/admin/logout
func (a *AdminController) logout(ctx *gin.Context, sessionID string) (any, *api.APIError) {
	if apiErr := a.authorize(ctx, sessionID); apiErr != nil {
		return nil, apiErr
	}
	if err := a.manager.Logout(ctx.Request.Context(), sessionID); err != nil {
		return nil, api.FromError(err)
	}
	return visitor.Render(ctx, a.manager, sessionID)
}

func (a *AdminController) finish(ctx *gin.Context, sessionID string, task *session.Task) (any, *api.APIError) {
	if err := api.Await(ctx, task); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, api.FromError(err)
	}
	return visitor.Render(ctx, a.manager, sessionID)
}
