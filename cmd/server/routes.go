package main

import (
	"html/template"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Nixie-Tech-LLC/darshan/internal/config"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/api"
	adminapi "github.com/Nixie-Tech-LLC/darshan/internal/http/api/admin/endpoints"
	templesapi "github.com/Nixie-Tech-LLC/darshan/internal/http/api/temples/endpoints"
	visitorapi "github.com/Nixie-Tech-LLC/darshan/internal/http/api/visitor/endpoints"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/darshan/internal/http/web"
	"github.com/Nixie-Tech-LLC/darshan/internal/session"
)

// RegisterRoutes sets up all application routes
func RegisterRoutes(r *gin.Engine, cfg *config.Config, manager *session.Manager, tmpl *template.Template) {
	r.SetHTMLTemplate(tmpl)
	secure := !cfg.Development()

	// CORS
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool { return true },
		AllowMethods: []string{
			"GET",
			"POST",
			"PUT",
			"DELETE",
			"OPTIONS",
			"HEAD",
		},
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Authorization",
			"Accept",
			middleware.SessionHeader,
		},
		ExposeHeaders: []string{
			"Content-Length",
			middleware.SessionHeader,
		},
		AllowCredentials: false,
	}))

	api.MountGroup(r, api.GroupConfig{
		Prefix:        "/api",
		SecureCookies: secure,
	},
		templesapi.TemplesModule(manager.Machine().Directory),
		visitorapi.SessionModule(manager, secure),
		adminapi.AdminPublicModule(manager, cfg.JWTSecret),
	)

	// dashboard endpoints act on the session named in the token
	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api",
		Auth:      true,
		SecretKey: cfg.JWTSecret,
	},
		adminapi.AdminSessionModule(manager),
	)

	web.Register(r, manager, secure)
}
