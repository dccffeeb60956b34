package domain

import (
	"database/sql/driver"
	"time"

	"github.com/pkg/errors"

	jsoniter "github.com/json-iterator/go"
)

// Service categories form a closed set; anything else is rejected on write.
const (
	CategoryModdedApps      = "modded-apps"
	CategoryWebsiteCreation = "website-creation"
	CategoryPremiumApps     = "premium-apps"
	CategoryWhatsappBots    = "whatsapp-bots"
	CategoryModifications   = "modifications"
	CategoryDeployment      = "deployment"
)

var ServiceCategories = []string{
	CategoryModdedApps,
	CategoryWebsiteCreation,
	CategoryPremiumApps,
	CategoryWhatsappBots,
	CategoryModifications,
	CategoryDeployment,
}

// ValidCategory reports whether c belongs to the fixed category set.
func ValidCategory(c string) bool {
	for _, v := range ServiceCategories {
		if v == c {
			return true
		}
	}
	return false
}

const (
	DefaultDuration      = "Contact for details"
	DefaultContactMethod = "whatsapp"
)

// StringList stores an ordered list of strings as a JSON text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return jsoniter.MarshalToString(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return jsoniter.Unmarshal(v, l)
	case string:
		return jsoniter.UnmarshalFromString(v, l)
	default:
		return errors.Errorf("unsupported column type %T for StringList", value)
	}
}

// Service represents a sellable offering shown on the public site and
// managed from the admin area.
type Service struct {
	ID            int64      `gorm:"primaryKey" json:"id,string" form:"id"`
	Name          string     `gorm:"size:200;index" json:"name" form:"name"`
	Description   string     `gorm:"type:text" json:"description" form:"description"`
	Price         string     `gorm:"size:64" json:"price" form:"price"` // display string, e.g. "$15" or "Contact for details"
	Category      string     `gorm:"size:50;index" json:"category" form:"category"`
	Features      StringList `gorm:"type:text" json:"features"`
	Duration      string     `gorm:"size:100" json:"duration" form:"duration"`
	Active        bool       `gorm:"index;default:true" json:"active" form:"active"`
	ContactMethod string     `gorm:"size:32" json:"contact_method" form:"contact_method"`
	ContactInfo   string     `gorm:"size:200" json:"contact_info" form:"contact_info"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName Specify table name
func (Service) TableName() string {
	return "site_service"
}
