package subscriptions

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"pricewatch/internal/model"
	"pricewatch/internal/validate"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Policy is the notification policy attached to a new subscription.
type Policy struct {
	ThresholdPrice   int64 `validate:"gte=0"`
	IsAnyChange      bool
	ConsidersBonuses bool
}

type createInput struct {
	UserID    int64 `validate:"required,gt=0"`
	ProductID int64 `validate:"required,gt=0"`
}

// Create inserts a new subscription row. Every call creates a fresh row even
// when an identical watch already exists for the pair.
func (that *Repository) Create(ctx context.Context, userID int64, productID int64, policy Policy) (int64, error) {
	if err := validate.Struct(createInput{UserID: userID, ProductID: productID}); err != nil {
		return 0, err
	}
	if err := validate.Struct(policy); err != nil {
		return 0, err
	}

	subscription := &model.Subscription{
		UserID:           userID,
		ProductID:        productID,
		ThresholdPrice:   policy.ThresholdPrice,
		IsAnyChange:      policy.IsAnyChange,
		ConsidersBonuses: policy.ConsidersBonuses,
	}

	if err := that.db.WithContext(ctx).Create(subscription).Error; err != nil {
		return 0, model.NewStoreError("create subscription", err)
	}

	return subscription.ID, nil
}

type deleteInput struct {
	SubscriptionID int64 `validate:"required,gt=0"`
}

// Delete removes a subscription and returns the removed record, with its
// user and product loaded, for confirmation messages.
func (that *Repository) Delete(ctx context.Context, subscriptionID int64) (*model.Subscription, error) {
	if err := validate.Struct(deleteInput{SubscriptionID: subscriptionID}); err != nil {
		return nil, err
	}

	var subscription model.Subscription
	query := that.db.WithContext(ctx).Preload("User").Preload("Product")
	if err := query.First(&subscription, subscriptionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("subscription %d: %w", subscriptionID, model.ErrNotFound)
		}
		return nil, model.NewStoreError("fetch subscription", err)
	}

	if err := that.db.WithContext(ctx).Delete(&model.Subscription{}, subscriptionID).Error; err != nil {
		return nil, model.NewStoreError("delete subscription", err)
	}

	return &subscription, nil
}

type listForUserInput struct {
	TelegramID int64 `validate:"required"`
}

// ListForUser returns the subscriptions owned by the given Telegram identity
// with their products loaded.
func (that *Repository) ListForUser(ctx context.Context, telegramID int64) ([]*model.Subscription, error) {
	if err := validate.Struct(listForUserInput{TelegramID: telegramID}); err != nil {
		return nil, err
	}

	var subscriptions []*model.Subscription
	query := that.db.WithContext(ctx).
		Joins("JOIN users ON users.id = subscriptions.user_id").
		Where("users.telegram_id = ?", telegramID).
		Preload("User").
		Preload("Product")

	if err := query.Find(&subscriptions).Error; err != nil {
		return nil, model.NewStoreError("list subscriptions for user", err)
	}

	return subscriptions, nil
}

// ListForMonitoring returns every subscription with user and product loaded,
// ordered by product URL so the monitoring sweep can extract each distinct
// page only once.
func (that *Repository) ListForMonitoring(ctx context.Context) ([]*model.Subscription, error) {
	var subscriptions []*model.Subscription
	query := that.db.WithContext(ctx).
		Joins("JOIN products ON products.id = subscriptions.product_id").
		Order("products.url").
		Preload("User").
		Preload("Product")

	if err := query.Find(&subscriptions).Error; err != nil {
		return nil, model.NewStoreError("list subscriptions for monitoring", err)
	}

	return subscriptions, nil
}
