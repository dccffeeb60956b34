package webserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionEchoTTL(maxAge int) *echo.Echo {
	e := echo.New()
	store := sessions.NewCookieStore([]byte("test-secret"))
	store.MaxAge(maxAge)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	e.Use(session.Middleware(store))
	return e
}

func newSessionEcho() *echo.Echo {
	return newSessionEchoTTL(86400)
}

func TestRequireAdmin_RedirectsAnonymousBrowser(t *testing.T) {
	e := newSessionEcho()
	e.GET("/admin/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, "dashboard")
	}, RequireAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRequireAdmin_JSONPathGets401(t *testing.T) {
	e := newSessionEcho()
	e.GET("/admin/api/services", func(c echo.Context) error {
		return c.String(http.StatusOK, "[]")
	}, RequireAdmin)

	req := httptest.NewRequest(http.MethodGet, "/admin/api/services", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), `"success":false`)
}

func TestSessionLifecycle_LoginThenAccessThenLogout(t *testing.T) {
	e := newSessionEcho()
	e.POST("/login", func(c echo.Context) error {
		if err := MarkAuthenticated(c, 99); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/admin/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, "welcome")
	}, RequireAdmin)
	e.GET("/admin/logout", func(c echo.Context) error {
		_ = ClearSession(c)
		return c.Redirect(http.StatusFound, "/admin/login")
	})

	// Login establishes the session cookie.
	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	loginRec := httptest.NewRecorder()
	e.ServeHTTP(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)
	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	// The very next authenticated request succeeds.
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "welcome", rec.Body.String())

	// Logout invalidates the cookie.
	outReq := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	for _, ck := range cookies {
		outReq.AddCookie(ck)
	}
	outRec := httptest.NewRecorder()
	e.ServeHTTP(outRec, outReq)
	assert.Equal(t, http.StatusFound, outRec.Code)

	expired := outRec.Result().Cookies()
	require.NotEmpty(t, expired)
	assert.LessOrEqual(t, expired[0].MaxAge, 0)
}

func TestRequireAdmin_RejectsExpiredSessionCookie(t *testing.T) {
	e := newSessionEchoTTL(1)
	e.POST("/login", func(c echo.Context) error {
		if err := MarkAuthenticated(c, 7); err != nil {
			return err
		}
		return c.NoContent(http.StatusOK)
	})
	e.GET("/admin/dashboard", func(c echo.Context) error {
		return c.String(http.StatusOK, "welcome")
	}, RequireAdmin)

	loginReq := httptest.NewRequest(http.MethodPost, "/login", nil)
	loginRec := httptest.NewRecorder()
	e.ServeHTTP(loginRec, loginReq)
	require.Equal(t, http.StatusOK, loginRec.Code)
	cookies := loginRec.Result().Cookies()
	require.NotEmpty(t, cookies)

	time.Sleep(2 * time.Second)

	// Replaying the cookie past its lifetime must fail server-side, not
	// just rely on the browser discarding it.
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get(echo.HeaderLocation))
}

func TestLogout_IdempotentWhenAnonymous(t *testing.T) {
	e := newSessionEcho()
	e.GET("/admin/logout", func(c echo.Context) error {
		_ = ClearSession(c)
		return c.Redirect(http.StatusFound, "/admin/login")
	})

	req := httptest.NewRequest(http.MethodGet, "/admin/logout", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin/login", rec.Header().Get(echo.HeaderLocation))
}

func TestCurrentAdminID_Anonymous(t *testing.T) {
	e := newSessionEcho()
	e.GET("/whoami", func(c echo.Context) error {
		assert.False(t, IsAuthenticated(c))
		assert.Zero(t, CurrentAdminID(c))
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
