package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pricewatch/internal/model"
	"pricewatch/internal/pricing"
	"pricewatch/locales"
	"pricewatch/testing/suite"
)

func newComposer(t *testing.T) *pricing.Composer {
	t.Helper()

	_, st := suite.New(t)
	bundle, err := locales.GetBundle(st.BaseDir + "/")
	require.NoError(t, err)

	return pricing.NewComposer(bundle)
}

func Test_Composer_Compose(t *testing.T) {
	t.Run("drop message carries all six fields - en", func(t *testing.T) {
		composer := newComposer(t)

		text, err := composer.Compose("en", "Widget", "http://x", 600, 400)
		require.NoError(t, err)

		require.Contains(t, text, "Widget")
		require.Contains(t, text, "http://x")
		require.Contains(t, text, "decreased")
		require.Contains(t, text, "200")
		require.Contains(t, text, "33.3")
		require.Contains(t, text, "600")
		require.Contains(t, text, "400")
	})

	t.Run("raise message carries the direction - ru", func(t *testing.T) {
		composer := newComposer(t)

		text, err := composer.Compose("ru", "Widget", "http://x", 400, 600)
		require.NoError(t, err)

		require.Contains(t, text, "увеличилась")
		require.Contains(t, text, "200")
		require.Contains(t, text, "50.0")
		require.Contains(t, text, "Старая цена: 400")
		require.Contains(t, text, "Новая цена: 600")
	})

	t.Run("equal prices are a caller bug", func(t *testing.T) {
		composer := newComposer(t)

		_, err := composer.Compose("en", "Widget", "http://x", 600, 600)
		require.ErrorIs(t, err, model.ErrValidation)
	})
}
