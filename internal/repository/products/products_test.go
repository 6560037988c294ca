package products_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pricewatch/internal/model"
	"pricewatch/internal/repository/products"
	"pricewatch/testing/suite"
)

func Test_GetOrCreate(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())
	repository := products.NewRepository(st.GetDB())

	t.Run("never creates a second row for the same url", func(t *testing.T) {
		firstID, err := repository.GetOrCreate(ctx, "https://shop.example/widget", "Widget", 600)
		require.NoError(t, err)

		secondID, err := repository.GetOrCreate(ctx, "https://shop.example/widget", "Widget", 600)
		require.NoError(t, err)

		require.Equal(t, firstID, secondID)

		var count int64
		require.NoError(t, st.GetDB().WithContext(ctx).Model(&model.Product{}).Where("url = ?", "https://shop.example/widget").Count(&count).Error)
		require.EqualValues(t, 1, count)
	})

	t.Run("refreshes name and baseline on an existing product", func(t *testing.T) {
		productID, err := repository.GetOrCreate(ctx, "https://shop.example/gadget", "Gadget", 600)
		require.NoError(t, err)

		// When: The same url is onboarded again with fresh values
		sameID, err := repository.GetOrCreate(ctx, "https://shop.example/gadget", "Gadget v2", 550)
		require.NoError(t, err)
		require.Equal(t, productID, sameID)

		// Then: The row is re-seeded with the caller-supplied values
		var product model.Product
		require.NoError(t, st.GetDB().WithContext(ctx).First(&product, productID).Error)
		require.Equal(t, "Gadget v2", product.Name)
		require.EqualValues(t, 550, product.LastPrice)
	})

	t.Run("rejects malformed input before touching the store", func(t *testing.T) {
		_, err := repository.GetOrCreate(ctx, "", "Widget", 600)
		require.ErrorIs(t, err, model.ErrValidation)

		_, err = repository.GetOrCreate(ctx, "https://shop.example/w", "", 600)
		require.ErrorIs(t, err, model.ErrValidation)

		_, err = repository.GetOrCreate(ctx, "https://shop.example/w", "Widget", -1)
		require.ErrorIs(t, err, model.ErrValidation)
	})
}

func Test_UpdatePrice(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())
	repository := products.NewRepository(st.GetDB())

	t.Run("overwrites the baseline of an existing product", func(t *testing.T) {
		productID, err := repository.GetOrCreate(ctx, "https://shop.example/a", "A", 600)
		require.NoError(t, err)

		require.NoError(t, repository.UpdatePrice(ctx, productID, 400))

		var product model.Product
		require.NoError(t, st.GetDB().WithContext(ctx).First(&product, productID).Error)
		require.EqualValues(t, 400, product.LastPrice)
	})

	t.Run("fails with not found for a missing product", func(t *testing.T) {
		err := repository.UpdatePrice(ctx, 987654, 400)
		require.ErrorIs(t, err, model.ErrNotFound)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		err := repository.UpdatePrice(ctx, 1, -5)
		require.ErrorIs(t, err, model.ErrValidation)
	})
}

func Test_AdvanceBaseline(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())
	repository := products.NewRepository(st.GetDB())

	t.Run("moves the baseline when the expected old price still holds", func(t *testing.T) {
		productID, err := repository.GetOrCreate(ctx, "https://shop.example/b", "B", 600)
		require.NoError(t, err)

		moved, err := repository.AdvanceBaseline(ctx, productID, 600, 450)
		require.NoError(t, err)
		require.True(t, moved)

		var product model.Product
		require.NoError(t, st.GetDB().WithContext(ctx).First(&product, productID).Error)
		require.EqualValues(t, 450, product.LastPrice)
	})

	t.Run("a stale observation loses the race and does not clobber", func(t *testing.T) {
		productID, err := repository.GetOrCreate(ctx, "https://shop.example/c", "C", 600)
		require.NoError(t, err)

		// Given: A fresher worker already advanced the baseline
		moved, err := repository.AdvanceBaseline(ctx, productID, 600, 450)
		require.NoError(t, err)
		require.True(t, moved)

		// When: A slow worker still expects the old baseline
		moved, err = repository.AdvanceBaseline(ctx, productID, 600, 500)
		require.NoError(t, err)

		// Then: The write is refused and the fresher price stays
		require.False(t, moved)

		var product model.Product
		require.NoError(t, st.GetDB().WithContext(ctx).First(&product, productID).Error)
		require.EqualValues(t, 450, product.LastPrice)
	})
}
