package model

import "time"

// User - a Telegram account that owns subscriptions.
type User struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	TelegramID int64     `gorm:"column:telegram_id;uniqueIndex;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (*User) TableName() string {
	return "users"
}
