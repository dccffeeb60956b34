package domain

var Tables = []interface{}{
	// System
	&AdminUser{},
	&SiteSetting{},
	// Catalog
	&Service{},
	&ContactMessage{},
}
