package httpserver

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "crm_session"

//go:embed templates/*.html
var templatesFS embed.FS

// buildRouter wires HTML pages, the JSON API and probes.
func buildRouter(logger *log.Logger, deps Deps) (*gin.Engine, error) {
	if deps.CustomerSvc == nil {
		return nil, errors.New("customer service is required")
	}
	if deps.SessionSecret == "" {
		return nil, errors.New("session secret is required")
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.SetHTMLTemplate(tmpl)

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Store))

	store := cookie.NewStore([]byte(deps.SessionSecret))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int((24 * time.Hour).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	pages := &pageHandlers{svc: deps.CustomerSvc, logger: logger}
	web := router.Group("", sessions.Sessions(sessionName, store))
	web.GET("/", pages.index)
	web.GET("/customers", pages.list)
	web.GET("/customers/add", pages.addForm)
	web.POST("/customers/add", pages.add)
	web.GET("/customers/:id", pages.detail)

	api := &apiHandlers{svc: deps.CustomerSvc, logger: logger}
	apiGroup := router.Group("/api")
	if len(deps.CORSAllowOrigins) > 0 {
		corsCfg := cors.Config{
			AllowOrigins: deps.CORSAllowOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
			MaxAge:       12 * time.Hour,
		}
		if err := corsCfg.Validate(); err != nil {
			return nil, fmt.Errorf("cors config: %w", err)
		}
		apiGroup.Use(cors.New(corsCfg))
	}
	apiGroup.GET("/customers", api.list)
	apiGroup.POST("/customers", api.create)
	apiGroup.GET("/customers/:id", api.get)

	router.NoRoute(func(c *gin.Context) {
		c.HTML(http.StatusNotFound, "error.html", gin.H{"Title": "Not found", "Message": "Page not found."})
	})

	return router, nil
}
