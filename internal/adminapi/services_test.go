package adminapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jsoniter "github.com/json-iterator/go"

	"github.com/modderpro/site/internal/catalog"
	"github.com/modderpro/site/internal/domain"
	"github.com/modderpro/site/pkg/common"
)

func jsonRequest(t *testing.T, method, target, body string) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, jsoniter.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestCreateService_Scenario(t *testing.T) {
	fake := newFakeApp(t, newMemRepo())
	req := jsonRequest(t, http.MethodPost, "/admin/services",
		`{"name":"Bot Pack","description":"WhatsApp bot bundle","price":"$49","category":"whatsapp-bots","features":"auto-reply, custom commands"}`)
	c, rec := newTestContext(t, fake, req)

	require.NoError(t, createService(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Service added successfully", resp["message"])

	svc, _ := resp["service"].(map[string]interface{})
	require.NotNil(t, svc)
	assert.Equal(t, []interface{}{"auto-reply", "custom commands"}, svc["features"])
	assert.Equal(t, true, svc["active"])
	assert.Equal(t, "Contact for details", svc["duration"])
}

func TestCreateService_MissingRequiredField(t *testing.T) {
	fake := newFakeApp(t, newMemRepo())
	req := jsonRequest(t, http.MethodPost, "/admin/services",
		`{"description":"d","price":"$1","category":"modded-apps"}`)
	c, rec := newTestContext(t, fake, req)

	require.NoError(t, createService(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, false, resp["success"])
}

func TestUpdateService_UnknownID(t *testing.T) {
	fake := newFakeApp(t, newMemRepo())
	req := jsonRequest(t, http.MethodPut, "/admin/services/12345",
		`{"name":"X","description":"d","price":"$1","category":"modded-apps"}`)
	c, rec := newTestContext(t, fake, req)
	c.SetPath("/admin/services/:id")
	c.SetParamNames("id")
	c.SetParamValues("12345")

	require.NoError(t, updateService(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	// A failed update must never have created the record.
	services, err := fake.cat.ListAdmin(req.Context())
	require.NoError(t, err)
	assert.Empty(t, services)
}

func TestDeleteService_SecondDeleteIsNotFound(t *testing.T) {
	repo := newMemRepo()
	fake := newFakeApp(t, repo)

	id := common.UUIDint64()
	require.NoError(t, repo.Create(nil, &domain.Service{
		ID: id, Name: "Doomed", Description: "d", Price: "$1",
		Category: domain.CategoryDeployment, Active: true,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	del := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/admin/services/"+strconv.FormatInt(id, 10), nil)
		c, rec := newTestContext(t, fake, req)
		c.SetPath("/admin/services/:id")
		c.SetParamNames("id")
		c.SetParamValues(strconv.FormatInt(id, 10))
		require.NoError(t, deleteService(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, del().Code)
	assert.Equal(t, http.StatusNotFound, del().Code)
}

func TestListServices_AdminSeesInactive(t *testing.T) {
	repo := newMemRepo()
	fake := newFakeApp(t, repo)

	now := time.Now()
	require.NoError(t, repo.Create(nil, &domain.Service{
		ID: 1, Name: "Visible", Category: domain.CategoryModdedApps,
		Active: true, CreatedAt: now.Add(-time.Hour),
	}))
	require.NoError(t, repo.Create(nil, &domain.Service{
		ID: 2, Name: "Hidden", Category: domain.CategoryModdedApps,
		Active: false, CreatedAt: now,
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/api/services", nil)
	c, rec := newTestContext(t, fake, req)
	require.NoError(t, listServices(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	data, _ := resp["data"].([]interface{})
	require.Len(t, data, 2)
	// Newest first.
	first, _ := data[0].(map[string]interface{})
	assert.Equal(t, "Hidden", first["name"])
}

// downRepo fails every call, simulating a dead store.
type downRepo struct{}

var errStoreDown = errors.New("store unreachable")

func (downRepo) Create(context.Context, *domain.Service) error { return errStoreDown }
func (downRepo) Update(context.Context, *domain.Service) error { return errStoreDown }
func (downRepo) Delete(context.Context, int64) error           { return errStoreDown }
func (downRepo) GetByID(context.Context, int64) (*domain.Service, error) {
	return nil, errStoreDown
}
func (downRepo) List(context.Context, catalog.Filter) ([]domain.Service, error) {
	return nil, errStoreDown
}

func TestListServices_StoreErrorYieldsEmptyListWithFlag(t *testing.T) {
	fake := newFakeApp(t, downRepo{})

	req := httptest.NewRequest(http.MethodGet, "/admin/api/services", nil)
	c, rec := newTestContext(t, fake, req)
	require.NoError(t, listServices(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, false, resp["success"])
	data, isList := resp["data"].([]interface{})
	assert.True(t, isList)
	assert.Empty(t, data)
}

func TestExportServices_CSV(t *testing.T) {
	repo := newMemRepo()
	fake := newFakeApp(t, repo)
	require.NoError(t, repo.Create(nil, &domain.Service{
		ID: 1, Name: "Exported", Category: domain.CategoryPremiumApps,
		Price: "$10", Features: domain.StringList{"a", "b"},
		Active: true, CreatedAt: time.Now(),
	}))

	req := httptest.NewRequest(http.MethodGet, "/admin/api/services/export", nil)
	c, rec := newTestContext(t, fake, req)
	require.NoError(t, exportServices(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	body := rec.Body.String()
	assert.Contains(t, body, "Exported")
	assert.Contains(t, body, "a|b")
}
