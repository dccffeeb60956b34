package webserver

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"path/filepath"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/modderpro/site/internal/app"
)

//go:embed templates/*.html
var templatesFS embed.FS

const SessionName = "modsite_session"

var server *WebServer

// WebServer wraps the echo instance and the application context shared by
// all handlers.
type WebServer struct {
	root   *echo.Echo
	appctx app.AppContext
}

// Init builds the web server singleton: session middleware, static assets,
// template renderer and the top-level error handler.
func Init(appctx app.AppContext) *WebServer {
	cfg := appctx.Config()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	secret := cfg.Web.SessionSecret
	if secret == "" {
		zap.L().Warn("no session secret configured, sessions will not survive restarts")
		secret = fmt.Sprintf("modsite-%d", cfg.Web.Port)
	}
	store := sessions.NewCookieStore([]byte(secret))
	// MaxAge must go through the setter so the securecookie codecs enforce
	// the TTL server-side; assigning Options alone only changes the cookie
	// header and a replayed cookie would validate for the 30-day default.
	store.MaxAge(cfg.Web.SessionMaxAge)
	store.Options.Path = "/"
	store.Options.HttpOnly = true

	e.Use(middleware.Recover())
	e.Use(session.Middleware(store))
	e.Use(injectAppContext(appctx))
	e.Use(requestLogger())

	e.Renderer = newTemplateRenderer()
	e.HTTPErrorHandler = errorHandler

	e.Static("/uploads", cfg.Web.UploadDir)
	e.Static("/images", filepath.Join(cfg.Web.PublicDir, "images"))
	e.Static("/css", filepath.Join(cfg.Web.PublicDir, "css"))
	e.Static("/js", filepath.Join(cfg.Web.PublicDir, "js"))

	server = &WebServer{root: e, appctx: appctx}
	return server
}

// Listen starts the HTTP server and blocks until it stops.
func (s *WebServer) Listen() error {
	addr := fmt.Sprintf("%s:%d", s.appctx.Config().Web.Host, s.appctx.Config().Web.Port)
	zap.L().Info("web server listening", zap.String("addr", addr))
	return s.root.Start(addr)
}

// Shutdown stops the HTTP server gracefully.
func (s *WebServer) Shutdown(ctx context.Context) error {
	return s.root.Shutdown(ctx)
}

func injectAppContext(appctx app.AppContext) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(appCtxKey, appctx)
			return next(c)
		}
	}
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			zap.L().Debug("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status))
			return nil
		},
	})
}

// errorHandler logs the real error and returns a generic message; stack
// traces never reach clients.
func errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
	}
	if code >= http.StatusInternalServerError {
		zap.L().Error("unhandled request error", zap.String("uri", c.Request().RequestURI), zap.Error(err))
	}
	if c.Response().Committed {
		return
	}
	if code == http.StatusNotFound {
		_ = c.String(code, "Page not found")
		return
	}
	_ = c.JSON(code, map[string]interface{}{"success": false, "message": http.StatusText(code)})
}

type templateRenderer struct {
	templates *template.Template
}

func newTemplateRenderer() *templateRenderer {
	return &templateRenderer{
		templates: template.Must(template.ParseFS(templatesFS, "templates/*.html")),
	}
}

func (r *templateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
