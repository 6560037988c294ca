package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	telegramBot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"pricewatch/internal/usecases"
)

func (that *Interaction) handler(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	log := that.logger.With("method", "handler", "user_id", update.Message.From.ID)
	log.Info("handling message", "text", update.Message.Text)

	// A bare link is almost certainly a track attempt.
	if strings.HasPrefix(update.Message.Text, "http") {
		if _, err := that.sendLocaledMessage(ctx, bot, update, "trackUsage"); err != nil {
			log.Error("failed to send message", "error", err)
		}
	}
}

func (that *Interaction) handlerStart(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerStart", "user_id", update.Message.From.ID, "language", update.Message.From.LanguageCode)

	if _, err := that.sendLocaledMessage(ctx, bot, update, "startWelcomeMessage"); err != nil {
		log.Error("failed to send message", "error", err)
		return
	}
}

func (that *Interaction) handlerHelp(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerHelp", "user_id", update.Message.From.ID)

	if _, err := that.sendLocaledMessage(ctx, bot, update, "helpMessage"); err != nil {
		log.Error("error sending message", "error", err)
		return
	}
}

// handlerTrack handles "/track <url> [threshold] [bonus]". A bare URL
// creates an any-change watch; a threshold switches the watch to fire once
// when the price falls to or below it. The "bonus" argument reads the
// loyalty-card price variant.
func (that *Interaction) handlerTrack(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerTrack", "user_id", update.Message.From.ID)

	args := strings.Fields(update.Message.Text)[1:]
	if len(args) == 0 || !strings.HasPrefix(args[0], "http") {
		if _, err := that.sendLocaledMessage(ctx, bot, update, "trackUsage"); err != nil {
			log.Error("failed to send message", "error", err)
		}
		return
	}

	url := args[0]
	isAnyChange := true
	considersBonuses := false
	var thresholdPrice int64

	for _, arg := range args[1:] {
		if arg == "bonus" {
			considersBonuses = true
			continue
		}

		value, err := strconv.ParseInt(arg, 10, 64)
		if err != nil || value < 0 {
			if _, err = that.sendLocaledMessage(ctx, bot, update, "trackUsage"); err != nil {
				log.Error("failed to send message", "error", err)
			}
			return
		}

		thresholdPrice = value
		isAnyChange = false
	}

	offer, err := that.extractor.GetOffer(ctx, url, considersBonuses)
	if err != nil {
		log.Error("failed to extract product page", "error", err, "url", url)
		if _, err = that.sendLocaledMessage(ctx, bot, update, "trackFailed"); err != nil {
			log.Error("failed to send message", "error", err)
		}
		return
	}

	subscriptionID, err := that.onboarder.Onboard(ctx, usecases.OnboardInput{
		TelegramID:       update.Message.From.ID,
		ProductURL:       url,
		ProductName:      offer.Name,
		ObservedPrice:    offer.Price,
		IsAnyChange:      isAnyChange,
		ThresholdPrice:   thresholdPrice,
		ConsidersBonuses: considersBonuses,
	})
	if err != nil {
		log.Error("failed to onboard subscription", "error", err, "url", url)
		if _, err = that.sendLocaledMessage(ctx, bot, update, "trackFailed"); err != nil {
			log.Error("failed to send message", "error", err)
		}
		return
	}

	_, err = that.sendLocaledMessage(ctx, bot, update, "trackCreated",
		"Name", offer.Name,
		"Price", strconv.FormatInt(offer.Price, 10),
		"ID", strconv.FormatInt(subscriptionID, 10),
	)
	if err != nil {
		log.Error("failed to send message", "error", err)
		return
	}
}

func (that *Interaction) handlerList(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerList", "user_id", update.Message.From.ID)

	subs, err := that.subscriptions.ListForUser(ctx, update.Message.From.ID)
	if err != nil {
		log.Error("failed to list subscriptions", "error", err)
		return
	}

	if len(subs) == 0 {
		if _, err = that.sendLocaledMessage(ctx, bot, update, "listEmptyMessage"); err != nil {
			log.Error("failed to send message", "error", err)
		}
		return
	}

	var sb strings.Builder
	for _, sub := range subs {
		mode, _ := that.renderLocaledMessage(update, "modeAnyChange")
		if !sub.IsAnyChange {
			mode, _ = that.renderLocaledMessage(update, "modeThreshold", "Threshold", strconv.FormatInt(sub.ThresholdPrice, 10))
		}

		sb.WriteString(fmt.Sprintf("#%d %s — %d (%s)\n%s\n", sub.ID, sub.Product.Name, sub.Product.LastPrice, mode, sub.Product.URL))
	}

	if _, err = bot.SendMessage(ctx, &telegramBot.SendMessageParams{ChatID: update.Message.Chat.ID, Text: sb.String()}); err != nil {
		log.Error("error sending message", "error", err)
		return
	}
}

// handlerDelete handles "/delete <subscription id>". Only the caller's own
// subscriptions can be removed.
func (that *Interaction) handlerDelete(ctx context.Context, bot *telegramBot.Bot, update *models.Update) {
	log := that.logger.With("method", "handlerDelete", "user_id", update.Message.From.ID)

	args := strings.Fields(update.Message.Text)[1:]
	if len(args) != 1 {
		if _, err := that.sendLocaledMessage(ctx, bot, update, "deleteUsage"); err != nil {
			log.Error("failed to send message", "error", err)
		}
		return
	}

	subscriptionID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		if _, err = that.sendLocaledMessage(ctx, bot, update, "deleteUsage"); err != nil {
			log.Error("failed to send message", "error", err)
		}
		return
	}

	subs, err := that.subscriptions.ListForUser(ctx, update.Message.From.ID)
	if err != nil {
		log.Error("failed to list subscriptions", "error", err)
		return
	}

	var owned bool
	for _, sub := range subs {
		if sub.ID == subscriptionID {
			owned = true
			break
		}
	}

	if !owned {
		if _, err = that.sendLocaledMessage(ctx, bot, update, "deleteNotFound"); err != nil {
			log.Error("failed to send message", "error", err)
		}
		return
	}

	removed, err := that.subscriptions.Delete(ctx, subscriptionID)
	if err != nil {
		log.Error("failed to delete subscription", "error", err, "subscription_id", subscriptionID)
		return
	}

	if _, err = that.sendLocaledMessage(ctx, bot, update, "deleteDone", "Name", removed.Product.Name); err != nil {
		log.Error("failed to send message", "error", err)
		return
	}
}
