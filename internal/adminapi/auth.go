package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/modderpro/site/internal/auth"
	"github.com/modderpro/site/internal/domain"
	"github.com/modderpro/site/internal/webserver"
)

func registerAuthRoutes() {
	webserver.PubGET("/admin/login", loginPage)
	webserver.PubPOST("/admin/login", login)
	webserver.PubGET("/admin/logout", logout)
	webserver.ApiGET("/admin/dashboard", dashboard)
	webserver.ApiPOST("/admin/update-credentials", updateCredentials)
}

func loginPage(c echo.Context) error {
	if webserver.IsAuthenticated(c) {
		return c.Redirect(http.StatusFound, "/admin/dashboard")
	}
	return c.Render(http.StatusOK, "admin_login.html", map[string]interface{}{})
}

func login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	admin, err := webserver.GetApp(c).Auth().Authenticate(c.Request().Context(), username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			zap.L().Error("login failed", zap.Error(err))
		}
		// One generic message for unknown user and wrong password alike.
		return c.Render(http.StatusOK, "admin_login.html", map[string]interface{}{
			"Error": "Invalid credentials",
		})
	}

	if err := webserver.MarkAuthenticated(c, admin.ID); err != nil {
		zap.L().Error("failed to establish session", zap.Error(err))
		return c.Render(http.StatusOK, "admin_login.html", map[string]interface{}{
			"Error": "Login failed",
		})
	}
	zap.L().Info("admin logged in", zap.String("username", admin.Username))
	return c.Redirect(http.StatusFound, "/admin/dashboard")
}

// logout destroys the session. Calling it while anonymous is a no-op that
// still redirects to the login page.
func logout(c echo.Context) error {
	_ = webserver.ClearSession(c)
	return c.Redirect(http.StatusFound, "/admin/login")
}

func dashboard(c echo.Context) error {
	appctx := webserver.GetApp(c)

	data := map[string]interface{}{
		"Username": "",
		"Services": nil,
	}
	var admin domain.AdminUser
	if err := webserver.GetDB(c).Where("id = ?", webserver.CurrentAdminID(c)).First(&admin).Error; err == nil {
		data["Username"] = admin.Username
	}

	services, err := appctx.Catalog().ListAdmin(c.Request().Context())
	if err != nil {
		zap.L().Error("dashboard listing failed", zap.Error(err))
		data["LoadError"] = true
	}
	data["Services"] = services
	return c.Render(http.StatusOK, "admin_dashboard.html", data)
}

type credentialsPayload struct {
	Username        string `json:"username" form:"username"`
	CurrentPassword string `json:"currentPassword" form:"currentPassword"`
	NewPassword     string `json:"newPassword" form:"newPassword"`
	ConfirmPassword string `json:"confirmPassword" form:"confirmPassword"`
}

func updateCredentials(c echo.Context) error {
	var payload credentialsPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse request", err.Error())
	}
	if payload.CurrentPassword == "" {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Current password is required", nil)
	}

	id := webserver.CurrentAdminID(c)
	err := webserver.GetApp(c).Auth().UpdateCredentials(c.Request().Context(),
		id, payload.Username, payload.CurrentPassword, payload.NewPassword, payload.ConfirmPassword)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Current password is incorrect", nil)
	case errors.Is(err, auth.ErrBadInput):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update credentials", err.Error())
	}
	return okMsg(c, "Credentials updated successfully", nil)
}
