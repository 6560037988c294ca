package cmd

import (
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"pricewatch/internal/interaction/ozon"
	"pricewatch/internal/interaction/telegram"
	"pricewatch/internal/pricing"
	"pricewatch/internal/repository/products"
	"pricewatch/internal/repository/subscriptions"
	"pricewatch/internal/repository/users"
	"pricewatch/internal/scheduler"
	"pricewatch/internal/storage"
	"pricewatch/internal/usecases"
	"pricewatch/locales"
)

var serveCmd = &cobra.Command{
	Use: "serve",
	Run: func(cmd *cobra.Command, _ []string) {
		log := logger.With("package", "cmd")
		ctx := cmd.Context()

		// Initialize database connection
		postgresConnection := storage.MustNewPostgresConnection(logger, cnf.Database.ConnString(), cnf.Logger.ParsedGORMLevel)
		defer postgresConnection.MustClose()

		postgresConnection.MustMigration()

		// Initialize repositories
		usersRepository := users.NewRepository(postgresConnection.DB)
		productsRepository := products.NewRepository(postgresConnection.DB)
		subscriptionsRepository := subscriptions.NewRepository(postgresConnection.DB)

		bundle, err := locales.GetBundle("./")
		cobra.CheckErr(err)

		// Initialize HTTP clients
		telegramClient := &http.Client{Timeout: time.Minute}
		ozonClient := &http.Client{Timeout: cnf.Monitoring.ExtractorTimeout}

		// Initialize interactions
		ozonInteractor := ozon.NewInteraction(logger, ozonClient)

		// Initialize usecases
		composer := pricing.NewComposer(bundle)
		onboardUC := usecases.NewOnboardUseCase(logger, usersRepository, productsRepository, subscriptionsRepository)

		telegramInteractor := telegram.NewInteraction(logger, cnf.Telegram.Token, telegramClient, bundle, onboardUC, subscriptionsRepository, ozonInteractor)

		monitorUC := usecases.NewMonitorUseCase(logger, subscriptionsRepository, productsRepository, ozonInteractor, telegramInteractor, composer, cnf.Monitoring.Language)

		// Initialize scheduler
		sched := scheduler.New(ctx, logger, time.Local)
		sched.Add("monitor", cnf.Monitoring.CronSpec, monitorUC.Run)
		go sched.Start()

		log.Info("starting telegram bot")
		telegramInteractor.Start(ctx)
	},
}
