package catalog

import (
	"time"

	"github.com/modderpro/site/internal/domain"
)

// FallbackServices returns the fixed dataset served by public reads when the
// backing store is unreachable, so the site stays renderable during an outage.
func FallbackServices() []domain.Service {
	now := time.Now()
	return []domain.Service{
		{
			ID:            1,
			Name:          "Premium Modded Apps",
			Category:      domain.CategoryModdedApps,
			Price:         "$15",
			Duration:      "1 month",
			Description:   "Get access to premium modded applications",
			Features:      domain.StringList{"Ad-free experience", "Premium features unlocked", "Regular updates"},
			Active:        true,
			ContactMethod: domain.DefaultContactMethod,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            2,
			Name:          "Custom Website Creation",
			Category:      domain.CategoryWebsiteCreation,
			Price:         "$99",
			Duration:      "1-2 weeks",
			Description:   "Professional website development services",
			Features:      domain.StringList{"Responsive design", "SEO optimized", "Admin panel"},
			Active:        true,
			ContactMethod: domain.DefaultContactMethod,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
		{
			ID:            3,
			Name:          "WhatsApp Bot Development",
			Category:      domain.CategoryWhatsappBots,
			Price:         "$49",
			Duration:      "3-5 days",
			Description:   "Custom WhatsApp bot for your business",
			Features:      domain.StringList{"Auto-reply", "Custom commands", "Easy setup"},
			Active:        true,
			ContactMethod: domain.DefaultContactMethod,
			CreatedAt:     now,
			UpdatedAt:     now,
		},
	}
}

// FallbackByCategory filters the fallback dataset the same way the live
// public listing filters the store.
func FallbackByCategory(category string) []domain.Service {
	if category == "" {
		return FallbackServices()
	}
	var out []domain.Service
	for _, s := range FallbackServices() {
		if s.Category == category {
			out = append(out, s)
		}
	}
	return out
}
