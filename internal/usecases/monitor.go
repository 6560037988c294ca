package usecases

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"pricewatch/internal/interaction/ozon"
	"pricewatch/internal/model"
	"pricewatch/internal/pricing"
)

const ParallelNotifyLimit = 100

type MonitorSubscriptionsRepository interface {
	ListForMonitoring(ctx context.Context) ([]*model.Subscription, error)
	Delete(ctx context.Context, subscriptionID int64) (*model.Subscription, error)
}

type MonitorProductsRepository interface {
	AdvanceBaseline(ctx context.Context, productID int64, oldPrice int64, newPrice int64) (bool, error)
}

type Extractor interface {
	GetOffer(ctx context.Context, url string, considerBonuses bool) (ozon.Offer, error)
}

type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

type Composer interface {
	Compose(languageCode string, name string, url string, oldPrice int64, newPrice int64) (string, error)
}

type MonitorUseCase struct {
	logger        *slog.Logger
	subscriptions MonitorSubscriptionsRepository
	products      MonitorProductsRepository
	extractor     Extractor
	notifier      Notifier
	composer      Composer
	language      string
}

func NewMonitorUseCase(logger *slog.Logger, subscriptions MonitorSubscriptionsRepository, products MonitorProductsRepository, extractor Extractor, notifier Notifier, composer Composer, language string) *MonitorUseCase {
	return &MonitorUseCase{
		logger:        logger.With("component", "monitor"),
		subscriptions: subscriptions,
		products:      products,
		extractor:     extractor,
		notifier:      notifier,
		composer:      composer,
		language:      language,
	}
}

type offerKey struct {
	url             string
	considerBonuses bool
}

// Run performs one monitoring sweep: re-extract every distinct product page,
// evaluate each subscription's policy against the fresh price, notify, and
// advance baselines. Notification delivery is best-effort and never rolls
// back an already-committed baseline advance; persistence is the source of
// truth.
func (that *MonitorUseCase) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	subs, err := that.subscriptions.ListForMonitoring(ctx)
	if err != nil {
		log.Error("failed to list subscriptions", "error", err)
		return
	}

	if len(subs) == 0 {
		log.Info("no subscriptions to monitor")
		return
	}

	// The list is ordered by product URL, so each page variant is extracted
	// exactly once per sweep.
	offers := make(map[offerKey]ozon.Offer)
	for _, sub := range subs {
		key := offerKey{url: sub.Product.URL, considerBonuses: sub.ConsidersBonuses}
		if _, ok := offers[key]; ok {
			continue
		}

		offer, err := that.extract(ctx, key)
		if err != nil {
			log.Error("failed to extract product page", "error", err, "url", key.url)
			continue
		}

		offers[key] = offer
	}

	parallelSend, parallelSendCtx := errgroup.WithContext(ctx)
	parallelSend.SetLimit(ParallelNotifyLimit)

	advanced := make(map[int64]bool, len(offers))

	for _, sub := range subs {
		offer, ok := offers[offerKey{url: sub.Product.URL, considerBonuses: sub.ConsidersBonuses}]
		if !ok {
			continue
		}

		policy := pricing.Policy{IsAnyChange: sub.IsAnyChange, ThresholdPrice: sub.ThresholdPrice}
		decision, err := policy.Evaluate(sub.Product.LastPrice, offer.Price)
		if err != nil {
			log.Error("failed to evaluate policy", "error", err, "subscription_id", sub.ID)
			continue
		}

		if decision.Notify {
			text, err := that.composer.Compose(that.language, offer.Name, sub.Product.URL, sub.Product.LastPrice, offer.Price)
			if err != nil {
				log.Error("failed to compose message", "error", err, "subscription_id", sub.ID)
				continue
			}

			chatID := sub.User.TelegramID
			parallelSend.Go(func() error {
				if err := that.notifier.SendMessage(parallelSendCtx, chatID, text); err != nil {
					log.Error("failed to deliver notification", "error", err, "chat_id", chatID)
				}
				return nil
			})
		}

		if decision.AdvanceBaseline && !advanced[sub.ProductID] {
			advanced[sub.ProductID] = true

			moved, err := that.products.AdvanceBaseline(ctx, sub.ProductID, sub.Product.LastPrice, offer.Price)
			if err != nil {
				log.Error("failed to advance baseline", "error", err, "product_id", sub.ProductID)
			} else if !moved {
				log.Debug("baseline already advanced by a fresher observation", "product_id", sub.ProductID)
			}
		}

		if decision.Fulfilled {
			if _, err := that.subscriptions.Delete(ctx, sub.ID); err != nil {
				log.Error("failed to delete fulfilled subscription", "error", err, "subscription_id", sub.ID)
				continue
			}

			log.Info("threshold reached, subscription fulfilled", "subscription_id", sub.ID, "product_id", sub.ProductID)
		}
	}

	// Wait for all parallel sends to finish
	_ = parallelSend.Wait()
}

// extract reads a page once, retrying a single time when the layout lookup
// misses. Site layout hiccups resolve on a second read often enough.
func (that *MonitorUseCase) extract(ctx context.Context, key offerKey) (ozon.Offer, error) {
	offer, err := that.extractor.GetOffer(ctx, key.url, key.considerBonuses)
	if err != nil && errors.Is(err, model.ErrNotFound) {
		return that.extractor.GetOffer(ctx, key.url, key.considerBonuses)
	}

	return offer, err
}
