package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей планировщика встреч.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Meeting{},
		&MeetingEvent{},
		&ReminderDelivery{},
	)
}
