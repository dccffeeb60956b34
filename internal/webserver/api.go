package webserver

import (
	"net/http"
	"strings"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/modderpro/site/internal/app"
)

const appCtxKey = "appctx"

// GetApp returns the application context bound to the request.
func GetApp(c echo.Context) app.AppContext {
	return c.Get(appCtxKey).(app.AppContext)
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	return GetApp(c).DB()
}

// Public route registration

func PubGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h)
}

func PubPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h)
}

// Admin route registration, gated by RequireAdmin

func ApiGET(path string, h echo.HandlerFunc) {
	server.root.GET(path, h, RequireAdmin)
}

func ApiPOST(path string, h echo.HandlerFunc) {
	server.root.POST(path, h, RequireAdmin)
}

func ApiPUT(path string, h echo.HandlerFunc) {
	server.root.PUT(path, h, RequireAdmin)
}

func ApiDELETE(path string, h echo.HandlerFunc) {
	server.root.DELETE(path, h, RequireAdmin)
}

// Session values
const (
	sessValAdmin = "admin"
	sessValUID   = "uid"
)

// MarkAuthenticated binds the session to an admin identity after a
// successful credential check.
func MarkAuthenticated(c echo.Context, adminID int64) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return err
	}
	sess.Values[sessValAdmin] = true
	sess.Values[sessValUID] = cast.ToString(adminID)
	return sess.Save(c.Request(), c.Response())
}

// ClearSession destroys the session state. Safe to call on an already
// anonymous session.
func ClearSession(c echo.Context) error {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return nil
	}
	sess.Options.MaxAge = -1
	sess.Values = map[interface{}]interface{}{}
	return sess.Save(c.Request(), c.Response())
}

// IsAuthenticated reports whether the request carries an admin session.
func IsAuthenticated(c echo.Context) bool {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return false
	}
	admin, _ := sess.Values[sessValAdmin].(bool)
	return admin
}

// CurrentAdminID returns the admin id bound to the session, 0 when anonymous.
func CurrentAdminID(c echo.Context) int64 {
	sess, err := session.Get(SessionName, c)
	if err != nil {
		return 0
	}
	return cast.ToInt64(sess.Values[sessValUID])
}

// RequireAdmin is the session gate applied to every privileged route.
// Browser pages bounce to the login form; JSON API paths get a 401 body.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if IsAuthenticated(c) {
			return next(c)
		}
		if strings.HasPrefix(c.Path(), "/admin/api") || wantsJSON(c) {
			return c.JSON(http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Authentication required",
			})
		}
		return c.Redirect(http.StatusFound, "/admin/login")
	}
}

func wantsJSON(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	ctype := c.Request().Header.Get(echo.HeaderContentType)
	return strings.Contains(accept, echo.MIMEApplicationJSON) ||
		strings.Contains(ctype, echo.MIMEApplicationJSON)
}
