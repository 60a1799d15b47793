package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/darshan/internal/http/middleware"
)

// Module is a pluggable feature that attaches its endpoints to a Controller (a gin group).
type Module interface {
	Mount(c *Controller)
}

// ModuleFunc lets you define a Module with a simple function.
type ModuleFunc func(c *Controller)

func (f ModuleFunc) Mount(c *Controller) { f(c) }

// GroupConfig tells the api package how to mount a group.
//
// Every group resolves a session before its modules run. Public groups take
// it from the session cookie or header and issue a cookie when there is
// none; Auth groups take it from the admin token and never issue cookies.
type GroupConfig struct {
	Prefix string
	Auth   bool
	// SecretKey signs admin tokens; required when Auth is set.
	SecretKey string
	// SecureCookies marks issued session cookies Secure.
	SecureCookies bool
	Middleware    []gin.HandlerFunc // runs after the session is resolved
}

func (cfg GroupConfig) handlers() []gin.HandlerFunc {
	hs := make([]gin.HandlerFunc, 0, len(cfg.Middleware)+1)
	if cfg.Auth {
		if cfg.SecretKey == "" {
			panic("api.MountGroup: Auth enabled but SecretKey is empty")
		}
		hs = append(hs, middleware.JWTMiddleware(cfg.SecretKey))
	} else {
		hs = append(hs, middleware.Sessions(cfg.SecureCookies))
	}
	return append(hs, cfg.Middleware...)
}

// MountGroup mounts one or more Modules under a prefix and returns the group.
func MountGroup(parent gin.IRouter, cfg GroupConfig, modules ...Module) *gin.RouterGroup {
	grp := parent.Group(cfg.Prefix, cfg.handlers()...)

	controller := &Controller{Group: grp}
	for _, m := range modules {
		m.Mount(controller)
	}
	return grp
}
