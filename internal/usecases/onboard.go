package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"pricewatch/internal/repository/subscriptions"
	"pricewatch/internal/validate"
)

type OnboardUsersRepository interface {
	GetOrCreate(ctx context.Context, telegramID int64) (int64, error)
}

type OnboardProductsRepository interface {
	GetOrCreate(ctx context.Context, url string, name string, price int64) (int64, error)
}

type OnboardSubscriptionsRepository interface {
	Create(ctx context.Context, userID int64, productID int64, policy subscriptions.Policy) (int64, error)
}

// OnboardInput carries everything a submitted URL resolves to.
type OnboardInput struct {
	TelegramID       int64  `validate:"required"`
	ProductURL       string `validate:"required,url"`
	ProductName      string `validate:"required"`
	ObservedPrice    int64  `validate:"gte=0"`
	IsAnyChange      bool
	ThresholdPrice   int64 `validate:"gte=0"`
	ConsidersBonuses bool
}

type OnboardUseCase struct {
	logger        *slog.Logger
	users         OnboardUsersRepository
	products      OnboardProductsRepository
	subscriptions OnboardSubscriptionsRepository
}

func NewOnboardUseCase(logger *slog.Logger, users OnboardUsersRepository, products OnboardProductsRepository, subscriptions OnboardSubscriptionsRepository) *OnboardUseCase {
	return &OnboardUseCase{logger: logger.With("component", "onboard"), users: users, products: products, subscriptions: subscriptions}
}

// Onboard links a user and a product with a fresh subscription and returns
// its id. User and product are get-or-create; the subscription row is always
// new, so a repeated submission yields a second independent watch. An
// existing product has its name and baseline re-seeded from the observed
// values. A failure mid-sequence leaves the already-created user and product
// rows behind; they are harmless and reused on retry.
func (that *OnboardUseCase) Onboard(ctx context.Context, input OnboardInput) (int64, error) {
	log := that.logger.With("method", "Onboard", "telegram_id", input.TelegramID)

	if err := validate.Struct(input); err != nil {
		return 0, err
	}

	userID, err := that.users.GetOrCreate(ctx, input.TelegramID)
	if err != nil {
		return 0, fmt.Errorf("resolve user: %w", err)
	}

	productID, err := that.products.GetOrCreate(ctx, input.ProductURL, input.ProductName, input.ObservedPrice)
	if err != nil {
		return 0, fmt.Errorf("resolve product: %w", err)
	}

	subscriptionID, err := that.subscriptions.Create(ctx, userID, productID, subscriptions.Policy{
		ThresholdPrice:   input.ThresholdPrice,
		IsAnyChange:      input.IsAnyChange,
		ConsidersBonuses: input.ConsidersBonuses,
	})
	if err != nil {
		return 0, fmt.Errorf("create subscription: %w", err)
	}

	log.Info("subscription created", "subscription_id", subscriptionID, "product_id", productID, "url", input.ProductURL)

	return subscriptionID, nil
}
