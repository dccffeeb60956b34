package domain

import (
	"time"
)

// AdminUser is the administrative credential record. Password always holds
// a bcrypt hash, never plaintext.
type AdminUser struct {
	ID        int64     `json:"id,string" form:"id"`
	Username  string    `gorm:"size:100;uniqueIndex" json:"username" form:"username"`
	Password  string    `gorm:"size:200" json:"-"`
	Level     string    `gorm:"size:20" json:"level" form:"level"`
	Status    string    `gorm:"size:20" json:"status" form:"status"`
	LastLogin time.Time `json:"last_login"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (AdminUser) TableName() string {
	return "sys_admin"
}

// SiteSetting is a key/value site configuration entry (site name, logo URL...).
type SiteSetting struct {
	ID        int64     `json:"id,string" form:"id"`
	Sort      int       `json:"sort" form:"sort"`
	Name      string    `gorm:"size:100;uniqueIndex" json:"name" form:"name"`
	Value     string    `gorm:"type:text" json:"value" form:"value"`
	Remark    string    `gorm:"size:200" json:"remark" form:"remark"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (SiteSetting) TableName() string {
	return "sys_setting"
}

// ContactMessage is a contact/order submission from the public site.
type ContactMessage struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `gorm:"size:200" json:"name" form:"name"`
	Email     string    `gorm:"size:200" json:"email" form:"email"`
	Message   string    `gorm:"type:text" json:"message" form:"message"`
	Service   string    `gorm:"size:200" json:"service" form:"service"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName Specify table name
func (ContactMessage) TableName() string {
	return "site_contact_message"
}
