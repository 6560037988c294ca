package users

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"pricewatch/internal/model"
	"pricewatch/internal/validate"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type getOrCreateInput struct {
	TelegramID int64 `validate:"required"`
}

// GetOrCreate returns the id of the user mapped to telegramID, inserting a
// row if this identity has never been seen. The insert goes through an
// ON CONFLICT DO NOTHING on the unique telegram_id index, so concurrent
// calls with the same identity resolve to a single row.
func (that *Repository) GetOrCreate(ctx context.Context, telegramID int64) (int64, error) {
	if err := validate.Struct(getOrCreateInput{TelegramID: telegramID}); err != nil {
		return 0, err
	}

	user := &model.User{TelegramID: telegramID}
	query := that.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "telegram_id"}},
		DoNothing: true,
	})

	if err := query.Create(user).Error; err != nil {
		return 0, model.NewStoreError("create user", err)
	}

	if user.ID != 0 {
		return user.ID, nil
	}

	// Conflict path: the identity already existed, fetch its id.
	var existing model.User
	if err := that.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&existing).Error; err != nil {
		return 0, model.NewStoreError("fetch user", err)
	}

	return existing.ID, nil
}
