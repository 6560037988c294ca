package model

import "time"

// Product is a monitored storefront item. URL is its canonical identity,
// LastPrice is the baseline in the smallest currency unit. The baseline is
// advanced only together with a decision to notify, so the stored price never
// drifts from the last notified one.
type Product struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	URL       string    `gorm:"column:url;uniqueIndex;not null"`
	Name      string    `gorm:"column:name"`
	LastPrice int64     `gorm:"column:last_price"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (*Product) TableName() string {
	return "products"
}
