package adminapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/modderpro/site/internal/catalog"
	"github.com/modderpro/site/internal/domain"
	"github.com/modderpro/site/internal/webserver"
)

// registerServiceRoutes registers catalog management endpoints
func registerServiceRoutes() {
	webserver.ApiGET("/admin/api/services", listServices)
	webserver.ApiGET("/admin/api/services/export", exportServices)
	webserver.ApiGET("/admin/api/services/:id", getService)
	webserver.ApiPOST("/admin/services", createService)
	webserver.ApiPUT("/admin/services/:id", updateService)
	webserver.ApiDELETE("/admin/services/:id", deleteService)
}

// listServices returns every service, inactive ones included, newest-first.
// A store failure degrades to an empty list with an error flag so the admin
// UI stays usable, same as the dashboard page.
func listServices(c echo.Context) error {
	services, err := webserver.GetApp(c).Catalog().ListAdmin(c.Request().Context())
	if err != nil {
		zap.L().Error("admin listing failed", zap.Error(err))
		return c.JSON(http.StatusOK, map[string]interface{}{
			"success": false,
			"code":    "DATABASE_ERROR",
			"message": "Failed to query services",
			"data":    []domain.Service{},
		})
	}
	return ok(c, services)
}

func getService(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	svc, err := webserver.GetApp(c).Catalog().Get(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query service", err.Error())
	}
	return ok(c, svc)
}

func createService(c echo.Context) error {
	var payload catalog.ServiceInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse service", err.Error())
	}
	svc, err := webserver.GetApp(c).Catalog().Create(c.Request().Context(), payload)
	if err != nil {
		if catalog.IsValidation(err) {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		}
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create service", err.Error())
	}
	return okMsg(c, "Service added successfully", svc)
}

func updateService(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	var payload catalog.ServiceInput
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse service", err.Error())
	}
	svc, err := webserver.GetApp(c).Catalog().Update(c.Request().Context(), id, payload)
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	case err != nil && catalog.IsValidation(err):
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update service", err.Error())
	}
	return okMsg(c, "Service updated successfully", svc)
}

func deleteService(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid service ID", nil)
	}
	err = webserver.GetApp(c).Catalog().Delete(c.Request().Context(), id)
	if errors.Is(err, catalog.ErrNotFound) {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Service not found", nil)
	} else if err != nil {
		return fail(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete service", err.Error())
	}
	return okMsg(c, "Service deleted successfully", nil)
}

type serviceExportRow struct {
	ID        int64  `csv:"id"`
	Name      string `csv:"name"`
	Category  string `csv:"category"`
	Price     string `csv:"price"`
	Duration  string `csv:"duration"`
	Features  string `csv:"features"`
	Active    bool   `csv:"active"`
	CreatedAt string `csv:"created_at"`
}

// exportServices streams the full catalog as CSV for offline editing
func exportServices(c echo.Context) error {
	services, err := webserver.GetApp(c).Catalog().ListAdmin(c.Request().Context())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query services", err.Error())
	}

	rows := make([]serviceExportRow, 0, len(services))
	for _, s := range services {
		rows = append(rows, serviceExportRow{
			ID:        s.ID,
			Name:      s.Name,
			Category:  s.Category,
			Price:     s.Price,
			Duration:  s.Duration,
			Features:  strings.Join(s.Features, "|"),
			Active:    s.Active,
			CreatedAt: s.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_FAILED", "Failed to export services", err.Error())
	}

	filename := fmt.Sprintf("services-%s.csv", time.Now().Format("20060102"))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}
