package catalog

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/modderpro/site/internal/domain"
	"github.com/modderpro/site/pkg/common"
)

// ServiceInput carries the mutable fields of a service as submitted by the
// admin UI. Features arrives as free text, newline- or comma-delimited.
type ServiceInput struct {
	Name          string `json:"name" form:"name"`
	Description   string `json:"description" form:"description"`
	Price         string `json:"price" form:"price"`
	Category      string `json:"category" form:"category"`
	Features      string `json:"features" form:"features"`
	Duration      string `json:"duration" form:"duration"`
	Active        *bool  `json:"active" form:"active"`
	ContactMethod string `json:"contact_method" form:"contact_method"`
	ContactInfo   string `json:"contact_info" form:"contact_info"`
}

// NormalizeFeatures splits raw feature text on newlines and commas, trims
// each entry and drops empty ones, preserving input order.
func NormalizeFeatures(raw string) domain.StringList {
	out := domain.StringList{}
	for _, line := range strings.Split(raw, "\n") {
		for _, part := range strings.Split(line, ",") {
			if f := strings.TrimSpace(part); f != "" {
				out = append(out, f)
			}
		}
	}
	return out
}

// Catalog implements the service catalog operations over a Repository.
type Catalog struct {
	repo Repository
}

// NewCatalog creates the catalog service layer.
func NewCatalog(repo Repository) *Catalog {
	return &Catalog{repo: repo}
}

func (c *Catalog) validate(in *ServiceInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Price = strings.TrimSpace(in.Price)
	in.Category = strings.TrimSpace(in.Category)
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "is required"}
	}
	if in.Description == "" {
		return &ValidationError{Field: "description", Reason: "is required"}
	}
	if in.Price == "" {
		return &ValidationError{Field: "price", Reason: "is required"}
	}
	if !domain.ValidCategory(in.Category) {
		return &ValidationError{Field: "category", Reason: "must be one of " + strings.Join(domain.ServiceCategories, ", ")}
	}
	return nil
}

// apply copies input onto a record, filling absent optional fields with
// their documented defaults.
func (c *Catalog) apply(svc *domain.Service, in *ServiceInput) {
	svc.Name = in.Name
	svc.Description = in.Description
	svc.Price = in.Price
	svc.Category = in.Category
	svc.Features = NormalizeFeatures(in.Features)

	svc.Duration = strings.TrimSpace(in.Duration)
	if svc.Duration == "" {
		svc.Duration = domain.DefaultDuration
	}
	svc.ContactMethod = strings.TrimSpace(in.ContactMethod)
	if svc.ContactMethod == "" {
		svc.ContactMethod = domain.DefaultContactMethod
	}
	svc.ContactInfo = strings.TrimSpace(in.ContactInfo)

	svc.Active = true
	if in.Active != nil {
		svc.Active = *in.Active
	}
}

// Create validates the input and persists a new service record.
func (c *Catalog) Create(ctx context.Context, in ServiceInput) (*domain.Service, error) {
	if err := c.validate(&in); err != nil {
		return nil, err
	}
	now := time.Now()
	svc := &domain.Service{
		ID:        common.UUIDint64(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	c.apply(svc, &in)
	if err := c.repo.Create(ctx, svc); err != nil {
		return nil, err
	}
	zap.L().Info("service created", zap.Int64("id", svc.ID), zap.String("name", svc.Name))
	return svc, nil
}

// Update replaces the mutable fields of an existing record. Unknown ids
// yield ErrNotFound and never create a record. Concurrent updates follow
// last-writer-wins; there is no version check.
func (c *Catalog) Update(ctx context.Context, id int64, in ServiceInput) (*domain.Service, error) {
	svc, err := c.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.validate(&in); err != nil {
		return nil, err
	}
	c.apply(svc, &in)
	svc.UpdatedAt = time.Now()
	if err := c.repo.Update(ctx, svc); err != nil {
		return nil, err
	}
	zap.L().Info("service updated", zap.Int64("id", svc.ID), zap.String("name", svc.Name))
	return svc, nil
}

// Delete removes a service permanently. Deleting an unknown id yields
// ErrNotFound, so a second delete of the same id fails cleanly.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	if err := c.repo.Delete(ctx, id); err != nil {
		return err
	}
	zap.L().Info("service deleted", zap.Int64("id", id))
	return nil
}

// Get retrieves a single service by id.
func (c *Catalog) Get(ctx context.Context, id int64) (*domain.Service, error) {
	return c.repo.GetByID(ctx, id)
}

// ListAdmin returns every service newest-first, inactive ones included.
func (c *Catalog) ListAdmin(ctx context.Context) ([]domain.Service, error) {
	return c.repo.List(ctx, Filter{})
}

// ListActive returns active services newest-first, optionally restricted to
// one category. Inactive records never appear here.
func (c *Catalog) ListActive(ctx context.Context, category string) ([]domain.Service, error) {
	return c.repo.List(ctx, Filter{ActiveOnly: true, Category: category})
}
