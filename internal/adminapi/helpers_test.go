package adminapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/modderpro/site/config"
	"github.com/modderpro/site/internal/app"
	"github.com/modderpro/site/internal/auth"
	"github.com/modderpro/site/internal/catalog"
	"github.com/modderpro/site/internal/domain"
	"github.com/modderpro/site/internal/mailer"
)

// memRepo is an in-memory catalog.Repository for handler tests.
type memRepo struct {
	mu    sync.Mutex
	items map[int64]domain.Service
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[int64]domain.Service{}}
}

func (r *memRepo) Create(_ context.Context, svc *domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[svc.ID] = *svc
	return nil
}

func (r *memRepo) Update(_ context.Context, svc *domain.Service) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[svc.ID] = *svc
	return nil
}

func (r *memRepo) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	svc, found := r.items[id]
	if !found {
		return nil, catalog.ErrNotFound
	}
	return &svc, nil
}

func (r *memRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, found := r.items[id]; !found {
		return catalog.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *memRepo) List(_ context.Context, filter catalog.Filter) ([]domain.Service, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Service
	for _, svc := range r.items {
		if filter.ActiveOnly && !svc.Active {
			continue
		}
		if filter.Category != "" && svc.Category != filter.Category {
			continue
		}
		out = append(out, svc)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// fakeApp satisfies app.AppContext for handler tests.
type fakeApp struct {
	cfg      *config.AppConfig
	cat      *catalog.Catalog
	settings map[string]string
}

var _ app.AppContext = (*fakeApp)(nil)

func newFakeApp(t *testing.T, repo catalog.Repository) *fakeApp {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.Web.UploadDir = t.TempDir()
	return &fakeApp{
		cfg:      &cfg,
		cat:      catalog.NewCatalog(repo),
		settings: map[string]string{},
	}
}

func (f *fakeApp) DB() *gorm.DB                 { return nil }
func (f *fakeApp) Config() *config.AppConfig    { return f.cfg }
func (f *fakeApp) Catalog() *catalog.Catalog    { return f.cat }
func (f *fakeApp) Auth() *auth.Service          { return nil }
func (f *fakeApp) Mailer() *mailer.Mailer       { return mailer.NewMailer(config.SmtpConfig{}) }
func (f *fakeApp) MigrateDB(track bool) error   { return nil }
func (f *fakeApp) InitDb()                      {}
func (f *fakeApp) DropAll()                     {}
func (f *fakeApp) GetSettingValue(name string) string {
	return f.settings[name]
}
func (f *fakeApp) SaveSetting(name, value string) error {
	f.settings[name] = value
	return nil
}

// newTestContext builds an echo context with the fake application bound the
// same way the webserver middleware binds the real one.
func newTestContext(t *testing.T, fake *fakeApp, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	store := sessions.NewCookieStore([]byte("test-secret"))
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("appctx", fake)
	// Same context key the echo-contrib session middleware uses.
	c.Set("_session_store", store)
	return c, rec
}
