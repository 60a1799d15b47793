// Package web serves the server-rendered pages. Every form posts to a /ui
// action that changes the session and redirects back to the page.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/darshan/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

//go:embed templates/*.html
var templateFS embed.FS

const pageTemplate = "page.html"

// formWait bounds how long a form post waits for a delayed operation.
const formWait = 10 * time.Second

// Templates parses the embedded page templates.
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

type Pages struct {
	manager *session.Manager
}

// Register mounts the page and its form actions. The engine must have the
// templates from Templates set.
func Register(r *gin.Engine, manager *session.Manager, secureCookies bool) {
	p := &Pages{manager: manager}

	g := r.Group("/", middleware.Sessions(secureCookies))
	g.GET("/", p.page)

	ui := g.Group("/ui")
	ui.POST("/search", p.action(p.search))
	ui.POST("/select", p.action(p.selectTemple))
	ui.POST("/back", p.action(p.back))
	ui.POST("/directions", p.directions)
	ui.POST("/notifications", p.action(p.toggleNotifications))
	ui.POST("/actions/:action", p.action(p.acknowledge))
	ui.POST("/language", p.action(p.setLanguage))
	ui.POST("/toasts/:id/dismiss", p.action(p.dismissToast))

	ui.POST("/admin/open", p.action(p.openLogin))
	ui.POST("/admin/cancel", p.action(p.cancelLogin))
	ui.POST("/admin/login", p.action(p.login))
	ui.POST("/admin/status", p.action(p.updateStatus))
	ui.POST("/admin/alert", p.action(p.publishAlert))
	ui.POST("/admin/logout", p.action(p.logout))
}

// GET /
func (p *Pages) page(c *gin.Context) {
	id, _ := middleware.GetSessionID(c)
	sc, err := p.manager.Screen(c.Request.Context(), id)
	if err != nil {
		log.Error().Err(err).Str("session", id).Msg("could not render page")
		c.String(http.StatusInternalServerError, "Something went wrong, please try again")
		return
	}
	c.HTML(http.StatusOK, pageTemplate, sc)
}

type actionFunc func(c *gin.Context, sessionID string) error

// action runs fn and sends the browser back to the page. Rule violations
// are not errors here: the page shows whatever state the session is in.
func (p *Pages) action(fn actionFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := middleware.GetSessionID(c)
		err := fn(c, id)
		switch {
		case err == nil, expected(err):
			if err != nil {
				log.Debug().Err(err).Str("session", id).Str("path", c.FullPath()).Msg("form action refused")
			}
			c.Redirect(http.StatusSeeOther, "/")
		default:
			log.Error().Err(err).Str("session", id).Str("path", c.FullPath()).Msg("form action failed")
			c.String(http.StatusInternalServerError, "Something went wrong, please try again")
		}
	}
}

func expected(err error) bool {
	for _, target := range []error{
		session.ErrTempleNotFound, session.ErrValidation, session.ErrInvalidCredentials,
		session.ErrWrongView, session.ErrBusy, session.ErrStale,
		context.DeadlineExceeded,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func await(ctx context.Context, task *session.Task) error {
	wctx, cancel := context.WithTimeout(ctx, formWait)
	defer cancel()
	return task.Wait(wctx)
}

func (p *Pages) search(c *gin.Context, id string) error {
	ctx := c.Request.Context()
	task, err := p.manager.SetQuery(ctx, id, c.PostForm("q"))
	if err != nil {
		return err
	}
	return await(ctx, task)
}

func (p *Pages) selectTemple(c *gin.Context, id string) error {
	return p.manager.Select(c.Request.Context(), id, c.PostForm("id"))
}

func (p *Pages) back(c *gin.Context, id string) error {
	return p.manager.Back(c.Request.Context(), id)
}

// POST /ui/directions sends the browser straight to the map.
func (p *Pages) directions(c *gin.Context) {
	id, _ := middleware.GetSessionID(c)
	link, err := p.manager.Directions(c.Request.Context(), id)
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	c.Redirect(http.StatusSeeOther, link)
}

func (p *Pages) toggleNotifications(c *gin.Context, id string) error {
	_, err := p.manager.ToggleNotifications(c.Request.Context(), id)
	return err
}

func (p *Pages) acknowledge(c *gin.Context, id string) error {
	stub, err := session.ParseStub(c.Param("action"))
	if err != nil {
		return err
	}
	return p.manager.Acknowledge(c.Request.Context(), id, stub)
}

func (p *Pages) setLanguage(c *gin.Context, id string) error {
	return p.manager.SetLanguage(c.Request.Context(), id, c.PostForm("code"))
}

func (p *Pages) dismissToast(c *gin.Context, id string) error {
	return p.manager.DismissToast(c.Request.Context(), id, c.Param("id"))
}

func (p *Pages) openLogin(c *gin.Context, id string) error {
	return p.manager.OpenAdminLogin(c.Request.Context(), id)
}

func (p *Pages) cancelLogin(c *gin.Context, id string) error {
	return p.manager.CancelLogin(c.Request.Context(), id)
}

func (p *Pages) login(c *gin.Context, id string) error {
	ctx := c.Request.Context()
	task, err := p.manager.SubmitLogin(ctx, id, c.PostForm("username"), c.PostForm("password"))
	if err != nil {
		return err
	}
	return await(ctx, task)
}

// saveDrafts copies whichever dashboard fields the form carried.
func (p *Pages) saveDrafts(c *gin.Context, id string) error {
	var edit session.DashboardEdit
	if v, ok := c.GetPostForm("crowd_count"); ok {
		n, _ := strconv.Atoi(v) // unparsable counts as 0
		edit.CrowdCount = &n
	}
	if v, ok := c.GetPostForm("wait_time"); ok {
		edit.WaitTime = &v
	}
	if v, ok := c.GetPostForm("alert_draft"); ok {
		edit.AlertDraft = &v
	}
	return p.manager.EditDashboard(c.Request.Context(), id, edit)
}

func (p *Pages) updateStatus(c *gin.Context, id string) error {
	ctx := c.Request.Context()
	if err := p.saveDrafts(c, id); err != nil {
		return err
	}
	task, err := p.manager.UpdateStatus(ctx, id)
	if err != nil {
		return err
	}
	return await(ctx, task)
}

func (p *Pages) publishAlert(c *gin.Context, id string) error {
	ctx := c.Request.Context()
	if err := p.saveDrafts(c, id); err != nil {
		return err
	}
	task, err := p.manager.PublishAlert(ctx, id)
	if err != nil {
		return err
	}
	return await(ctx, task)
}

func (p *Pages) logout(c *gin.Context, id string) error {
	return p.manager.Logout(c.Request.Context(), id)
}
