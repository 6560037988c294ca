package subscriptions_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pricewatch/internal/model"
	"pricewatch/internal/repository/products"
	"pricewatch/internal/repository/subscriptions"
	"pricewatch/internal/repository/users"
	"pricewatch/testing/suite"
)

func Test_Create(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())

	usersRepository := users.NewRepository(st.GetDB())
	productsRepository := products.NewRepository(st.GetDB())
	repository := subscriptions.NewRepository(st.GetDB())

	userID, err := usersRepository.GetOrCreate(ctx, 100)
	require.NoError(t, err)

	productID, err := productsRepository.GetOrCreate(ctx, "https://shop.example/widget", "Widget", 600)
	require.NoError(t, err)

	t.Run("duplicate watches on the same pair get distinct rows", func(t *testing.T) {
		// When: The same user subscribes to the same product twice
		firstID, err := repository.Create(ctx, userID, productID, subscriptions.Policy{IsAnyChange: true})
		require.NoError(t, err)

		secondID, err := repository.Create(ctx, userID, productID, subscriptions.Policy{ThresholdPrice: 500})
		require.NoError(t, err)

		// Then: Both watches exist independently
		require.NotEqual(t, firstID, secondID)
	})

	t.Run("rejects a negative threshold", func(t *testing.T) {
		_, err := repository.Create(ctx, userID, productID, subscriptions.Policy{ThresholdPrice: -1})
		require.ErrorIs(t, err, model.ErrValidation)
	})

	t.Run("rejects missing identifiers", func(t *testing.T) {
		_, err := repository.Create(ctx, 0, productID, subscriptions.Policy{})
		require.ErrorIs(t, err, model.ErrValidation)
	})
}

func Test_Delete(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())

	usersRepository := users.NewRepository(st.GetDB())
	productsRepository := products.NewRepository(st.GetDB())
	repository := subscriptions.NewRepository(st.GetDB())

	userID, err := usersRepository.GetOrCreate(ctx, 100)
	require.NoError(t, err)

	productID, err := productsRepository.GetOrCreate(ctx, "https://shop.example/widget", "Widget", 600)
	require.NoError(t, err)

	t.Run("returns the removed record for confirmation", func(t *testing.T) {
		subscriptionID, err := repository.Create(ctx, userID, productID, subscriptions.Policy{IsAnyChange: true})
		require.NoError(t, err)

		removed, err := repository.Delete(ctx, subscriptionID)
		require.NoError(t, err)

		require.Equal(t, subscriptionID, removed.ID)
		require.Equal(t, "Widget", removed.Product.Name)
		require.EqualValues(t, 100, removed.User.TelegramID)

		var count int64
		require.NoError(t, st.GetDB().WithContext(ctx).Model(&model.Subscription{}).Where("id = ?", subscriptionID).Count(&count).Error)
		require.EqualValues(t, 0, count)
	})

	t.Run("fails with not found for a missing subscription", func(t *testing.T) {
		_, err := repository.Delete(ctx, 987654)
		require.ErrorIs(t, err, model.ErrNotFound)
	})
}

func Test_ListForUser(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())

	usersRepository := users.NewRepository(st.GetDB())
	productsRepository := products.NewRepository(st.GetDB())
	repository := subscriptions.NewRepository(st.GetDB())

	ownerID, err := usersRepository.GetOrCreate(ctx, 100)
	require.NoError(t, err)

	otherID, err := usersRepository.GetOrCreate(ctx, 200)
	require.NoError(t, err)

	productID, err := productsRepository.GetOrCreate(ctx, "https://shop.example/widget", "Widget", 600)
	require.NoError(t, err)

	_, err = repository.Create(ctx, ownerID, productID, subscriptions.Policy{IsAnyChange: true})
	require.NoError(t, err)

	_, err = repository.Create(ctx, otherID, productID, subscriptions.Policy{ThresholdPrice: 500})
	require.NoError(t, err)

	t.Run("returns only the caller's subscriptions with products loaded", func(t *testing.T) {
		subs, err := repository.ListForUser(ctx, 100)
		require.NoError(t, err)

		require.Len(t, subs, 1)
		require.EqualValues(t, 100, subs[0].User.TelegramID)
		require.Equal(t, "Widget", subs[0].Product.Name)
	})

	t.Run("unknown identity yields an empty list", func(t *testing.T) {
		subs, err := repository.ListForUser(ctx, 300)
		require.NoError(t, err)
		require.Empty(t, subs)
	})
}

func Test_ListForMonitoring(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())

	usersRepository := users.NewRepository(st.GetDB())
	productsRepository := products.NewRepository(st.GetDB())
	repository := subscriptions.NewRepository(st.GetDB())

	userID, err := usersRepository.GetOrCreate(ctx, 100)
	require.NoError(t, err)

	// Given: Subscriptions created against products in non-alphabetical order
	zebraID, err := productsRepository.GetOrCreate(ctx, "https://shop.example/zebra", "Zebra", 900)
	require.NoError(t, err)

	appleID, err := productsRepository.GetOrCreate(ctx, "https://shop.example/apple", "Apple", 300)
	require.NoError(t, err)

	_, err = repository.Create(ctx, userID, zebraID, subscriptions.Policy{IsAnyChange: true})
	require.NoError(t, err)

	_, err = repository.Create(ctx, userID, appleID, subscriptions.Policy{IsAnyChange: true})
	require.NoError(t, err)

	_, err = repository.Create(ctx, userID, zebraID, subscriptions.Policy{ThresholdPrice: 800})
	require.NoError(t, err)

	t.Run("orders by product url so each page is extracted once", func(t *testing.T) {
		subs, err := repository.ListForMonitoring(ctx)
		require.NoError(t, err)

		require.Len(t, subs, 3)
		require.Equal(t, "https://shop.example/apple", subs[0].Product.URL)
		require.Equal(t, "https://shop.example/zebra", subs[1].Product.URL)
		require.Equal(t, "https://shop.example/zebra", subs[2].Product.URL)

		// Users come preloaded for notification addressing
		require.EqualValues(t, 100, subs[0].User.TelegramID)
	})
}
