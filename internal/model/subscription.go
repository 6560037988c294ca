package model

import "time"

// Subscription links a user to a product with a notification policy.
//
// There is deliberately no unique index on (user_id, product_id): a user may
// hold several independent watches on the same product, each notified on its
// own terms.
type Subscription struct {
	ID               int64     `gorm:"column:id;primaryKey"`
	UserID           int64     `gorm:"column:user_id;not null;index"`
	User             User      `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
	ProductID        int64     `gorm:"column:product_id;not null;index"`
	Product          Product   `gorm:"foreignKey:ProductID;references:ID;constraint:OnDelete:CASCADE"`
	ThresholdPrice   int64     `gorm:"column:threshold_price"`
	IsAnyChange      bool      `gorm:"column:is_any_change"`
	ConsidersBonuses bool      `gorm:"column:considers_bonuses"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (*Subscription) TableName() string {
	return "subscriptions"
}
