package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	telegramBot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/nicksnyder/go-i18n/v2/i18n"

	"pricewatch/internal/config"
	"pricewatch/internal/interaction/ozon"
	"pricewatch/internal/model"
	"pricewatch/internal/usecases"
)

var ErrWrongNumberOfArguments = fmt.Errorf("wrong number of arguments")

type Onboarder interface {
	Onboard(ctx context.Context, input usecases.OnboardInput) (int64, error)
}

type SubscriptionsRepository interface {
	ListForUser(ctx context.Context, telegramID int64) ([]*model.Subscription, error)
	Delete(ctx context.Context, subscriptionID int64) (*model.Subscription, error)
}

type Extractor interface {
	GetOffer(ctx context.Context, url string, considerBonuses bool) (ozon.Offer, error)
}

type Interaction struct {
	logger        *slog.Logger
	TgBot         *telegramBot.Bot
	bundle        *i18n.Bundle
	onboarder     Onboarder
	subscriptions SubscriptionsRepository
	extractor     Extractor
}

func NewInteraction(logger *slog.Logger, token string, client telegramBot.HttpClient, bundle *i18n.Bundle, onboarder Onboarder, subscriptions SubscriptionsRepository, extractor Extractor) *Interaction {
	cnt := &Interaction{
		logger:        logger.With("component", "telegram"),
		bundle:        bundle,
		onboarder:     onboarder,
		subscriptions: subscriptions,
		extractor:     extractor,
	}

	opts := []telegramBot.Option{
		telegramBot.WithHTTPClient(time.Minute, client),
		telegramBot.WithSkipGetMe(),
		telegramBot.WithDefaultHandler(cnt.handler),
	}

	b, _ := telegramBot.New(token, opts...)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/start", telegramBot.MatchTypeExact, cnt.handlerStart)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/help", telegramBot.MatchTypeExact, cnt.handlerHelp)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/list", telegramBot.MatchTypeExact, cnt.handlerList)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/track", telegramBot.MatchTypePrefix, cnt.handlerTrack)
	b.RegisterHandler(telegramBot.HandlerTypeMessageText, "/delete", telegramBot.MatchTypePrefix, cnt.handlerDelete)

	cnt.TgBot = b
	return cnt
}

func (that *Interaction) Start(ctx context.Context) {
	that.TgBot.Start(ctx)
}

// SendMessage delivers a notification to a chat. One attempt per call.
func (that *Interaction) SendMessage(ctx context.Context, chatID int64, text string) error {
	if _, err := that.TgBot.SendMessage(ctx, &telegramBot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
		return fmt.Errorf("send message to telegram user: %w", err)
	}

	return nil
}

// getUserLocalizer returns a localizer for the user.
func (that *Interaction) getUserLocalizer(update *models.Update) *i18n.Localizer {
	lang := update.Message.From.LanguageCode // "en", "ru", etc.
	if lang == "" {
		lang = config.DefaultLanguageCode
	}

	return i18n.NewLocalizer(that.bundle, lang)
}

// renderLocaledMessage renders a localized message.
func (that *Interaction) renderLocaledMessage(update *models.Update, messageID string, args ...string) (string, error) {
	if len(args)%2 != 0 {
		return "", ErrWrongNumberOfArguments
	}

	templateData := make(map[string]string, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		templateData[args[i]] = args[i+1]
	}

	text, err := that.getUserLocalizer(update).Localize(&i18n.LocalizeConfig{MessageID: messageID, TemplateData: templateData})
	if err != nil {
		return "", fmt.Errorf("localize message: %w", err)
	}

	return text, nil
}

// sendLocaledMessage sends a localized message to the user.
func (that *Interaction) sendLocaledMessage(ctx context.Context, bot *telegramBot.Bot, update *models.Update, messageID string, args ...string) (*models.Message, error) {
	text, err := that.renderLocaledMessage(update, messageID, args...)
	if err != nil {
		return nil, fmt.Errorf("render localed message: %w", err)
	}

	msg, err := bot.SendMessage(ctx, &telegramBot.SendMessageParams{ChatID: update.Message.Chat.ID, Text: text})
	if err != nil {
		return nil, fmt.Errorf("send message to telegram user: %w", err)
	}

	return msg, nil
}
