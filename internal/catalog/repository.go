package catalog

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	jsoniter "github.com/json-iterator/go"

	"github.com/modderpro/site/internal/domain"
)

// Filter narrows a service listing. The zero value lists everything
// (the admin view); ActiveOnly is the public view.
type Filter struct {
	ActiveOnly bool
	Category   string
}

// Repository handles database operations for catalog services.
type Repository interface {
	// Create inserts a new service record
	Create(ctx context.Context, svc *domain.Service) error

	// Update persists all mutable fields of an existing record
	Update(ctx context.Context, svc *domain.Service) error

	// GetByID retrieves a service by ID, ErrNotFound when unknown
	GetByID(ctx context.Context, id int64) (*domain.Service, error)

	// Delete removes a service, ErrNotFound when the id does not exist
	Delete(ctx context.Context, id int64) error

	// List retrieves services newest-first according to the filter
	List(ctx context.Context, filter Filter) ([]domain.Service, error)
}

// GormRepository is the GORM implementation of Repository with an optional
// redis read-cache in front of the public listings. The database remains the
// source of truth: every mutation synchronously invalidates the cache before
// returning, so a write is always visible to the very next read.
type GormRepository struct {
	db       *gorm.DB
	rdb      *redis.Client
	cacheTTL time.Duration
	// cacheDirty is set when a post-write invalidation fails; while set,
	// reads bypass the cache entirely so a surviving stale entry cannot
	// be served. Cleared by the next successful invalidation.
	cacheDirty atomic.Bool
}

const activeListCacheKey = "catalog:active"

// NewGormRepository creates a new GORM-based repository. rdb may be nil to
// disable caching.
func NewGormRepository(db *gorm.DB, rdb *redis.Client) *GormRepository {
	return &GormRepository{db: db, rdb: rdb, cacheTTL: 5 * time.Minute}
}

func (r *GormRepository) Create(ctx context.Context, svc *domain.Service) error {
	if err := r.db.WithContext(ctx).Create(svc).Error; err != nil {
		return errors.Wrap(err, "create service")
	}
	r.invalidate(ctx)
	return nil
}

func (r *GormRepository) Update(ctx context.Context, svc *domain.Service) error {
	// Save writes all fields, which is what the full-record-replace
	// contract wants (including Active=false).
	res := r.db.WithContext(ctx).Save(svc)
	if res.Error != nil {
		return errors.Wrap(res.Error, "update service")
	}
	r.invalidate(ctx)
	return nil
}

func (r *GormRepository) GetByID(ctx context.Context, id int64) (*domain.Service, error) {
	var svc domain.Service
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&svc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query service")
	}
	return &svc, nil
}

func (r *GormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Service{})
	if res.Error != nil {
		return errors.Wrap(res.Error, "delete service")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	r.invalidate(ctx)
	return nil
}

func (r *GormRepository) List(ctx context.Context, filter Filter) ([]domain.Service, error) {
	if key, ok := r.cacheKey(filter); ok {
		if cached, err := r.cacheGet(ctx, key); err == nil {
			return cached, nil
		}
	}

	db := r.db.WithContext(ctx).Model(&domain.Service{})
	if filter.ActiveOnly {
		db = db.Where("active = ?", true)
	}
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}

	var services []domain.Service
	if err := db.Order("created_at DESC, id DESC").Find(&services).Error; err != nil {
		return nil, errors.Wrap(err, "query services")
	}

	if key, ok := r.cacheKey(filter); ok {
		r.cacheSet(ctx, key, services)
	}
	return services, nil
}

// cacheKey returns the redis key for a filter. Only public active listings
// are cached; admin listings always hit the database.
func (r *GormRepository) cacheKey(filter Filter) (string, bool) {
	if r.rdb == nil || !filter.ActiveOnly {
		return "", false
	}
	if filter.Category == "" {
		return activeListCacheKey, true
	}
	return activeListCacheKey + ":" + filter.Category, true
}

func (r *GormRepository) cacheGet(ctx context.Context, key string) ([]domain.Service, error) {
	if r.cacheDirty.Load() {
		return nil, redis.Nil
	}
	raw, err := r.rdb.Get(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	var services []domain.Service
	if err := jsoniter.UnmarshalFromString(raw, &services); err != nil {
		return nil, err
	}
	return services, nil
}

func (r *GormRepository) cacheSet(ctx context.Context, key string, services []domain.Service) {
	if r.cacheDirty.Load() {
		return
	}
	raw, err := jsoniter.MarshalToString(services)
	if err != nil {
		return
	}
	if err := r.rdb.Set(ctx, key, raw, r.cacheTTL).Err(); err != nil {
		zap.L().Debug("catalog cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// invalidate drops every cached public listing after a mutation.
func (r *GormRepository) invalidate(ctx context.Context) {
	if r.rdb == nil {
		return
	}
	keys := []string{activeListCacheKey}
	for _, cat := range domain.ServiceCategories {
		keys = append(keys, activeListCacheKey+":"+cat)
	}
	if err := r.rdb.Del(ctx, keys...).Err(); err != nil {
		r.cacheDirty.Store(true)
		zap.L().Warn("catalog cache invalidate failed, bypassing cache", zap.Error(err))
		return
	}
	r.cacheDirty.Store(false)
}
