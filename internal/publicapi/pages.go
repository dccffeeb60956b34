package publicapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/modderpro/site/internal/app"
	"github.com/modderpro/site/internal/catalog"
	"github.com/modderpro/site/internal/webserver"
)

// homePage renders the public homepage with active services. A store outage
// swaps in the fallback dataset instead of failing the page.
func homePage(c echo.Context) error {
	appctx := webserver.GetApp(c)

	storeDown := false
	services, err := appctx.Catalog().ListActive(c.Request().Context(), "")
	if err != nil {
		zap.L().Error("homepage listing failed, serving fallback data", zap.Error(err))
		services = catalog.FallbackServices()
		storeDown = true
	}

	siteName := appctx.GetSettingValue(app.SettingSiteName)
	if siteName == "" {
		siteName = "Ntando Modder Pro"
	}
	logoUrl := appctx.GetSettingValue(app.SettingLogoUrl)
	if logoUrl == "" {
		logoUrl = "/images/logo.png"
	}

	return c.Render(http.StatusOK, "index.html", map[string]interface{}{
		"SiteName":    siteName,
		"Description": appctx.GetSettingValue(app.SettingSiteDescription),
		"LogoUrl":     logoUrl,
		"Services":    services,
		"StoreDown":   storeDown,
	})
}
