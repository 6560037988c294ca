package users_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pricewatch/internal/model"
	"pricewatch/internal/repository/users"
	"pricewatch/testing/suite"
)

func Test_GetOrCreate(t *testing.T) {
	ctx, st := suite.New(t, suite.WithPostgres())
	repository := users.NewRepository(st.GetDB())

	t.Run("creates a row for an unseen identity and reuses it afterwards", func(t *testing.T) {
		// When: The same identity is resolved twice
		firstID, err := repository.GetOrCreate(ctx, 100)
		require.NoError(t, err)

		secondID, err := repository.GetOrCreate(ctx, 100)
		require.NoError(t, err)

		// Then: Both calls resolve to the same single row
		require.Equal(t, firstID, secondID)

		var count int64
		require.NoError(t, st.GetDB().WithContext(ctx).Model(&model.User{}).Where("telegram_id = ?", 100).Count(&count).Error)
		require.EqualValues(t, 1, count)
	})

	t.Run("distinct identities get distinct rows", func(t *testing.T) {
		firstID, err := repository.GetOrCreate(ctx, 200)
		require.NoError(t, err)

		secondID, err := repository.GetOrCreate(ctx, 201)
		require.NoError(t, err)

		require.NotEqual(t, firstID, secondID)
	})

	t.Run("zero identity is rejected before touching the store", func(t *testing.T) {
		_, err := repository.GetOrCreate(ctx, 0)
		require.ErrorIs(t, err, model.ErrValidation)
	})
}
