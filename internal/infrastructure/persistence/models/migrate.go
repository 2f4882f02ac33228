package models

// All returns every model in migration order
func All() []interface{} {
	return []interface{}{
		&ProfileModel{},
		&DocumentModel{},
		&RejectionModel{},
		&NotificationModel{},
		&ShareLinkModel{},
		&QRCodeModel{},
		&PortfolioModel{},
	}
}
