package products

import (
	"context"
	"fmt"

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
	URL   string `validate:"required"`
	Name  string `validate:"required"`
	Price int64  `validate:"gte=0"`
}

// GetOrCreate upserts the product keyed on its URL and returns its id. When
// the product already exists, its name and baseline price are refreshed to
// the given values: onboarding always re-seeds the baseline from the price
// the submitter just saw.
func (that *Repository) GetOrCreate(ctx context.Context, url string, name string, price int64) (int64, error) {
	if err := validate.Struct(getOrCreateInput{URL: url, Name: name, Price: price}); err != nil {
		return 0, err
	}

	product := &model.Product{URL: url, Name: name, LastPrice: price}
	query := that.db.WithContext(ctx).Clauses(
		clause.OnConflict{
			Columns: []clause.Column{{Name: "url"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"name":       name,
				"last_price": price,
			}),
		},
		clause.Returning{
			Columns: []clause.Column{{Name: "id"}},
		},
	)

	if err := query.Create(product).Error; err != nil {
		return 0, model.NewStoreError("upsert product", err)
	}

	return product.ID, nil
}

type updatePriceInput struct {
	ProductID int64 `validate:"required,gt=0"`
	NewPrice  int64 `validate:"gte=0"`
}

// UpdatePrice overwrites the stored baseline of an existing product.
func (that *Repository) UpdatePrice(ctx context.Context, productID int64, newPrice int64) error {
	if err := validate.Struct(updatePriceInput{ProductID: productID, NewPrice: newPrice}); err != nil {
		return err
	}

	result := that.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", productID).Update("last_price", newPrice)
	if err := result.Error; err != nil {
		return model.NewStoreError("update product price", err)
	}

	if result.RowsAffected == 0 {
		return fmt.Errorf("product %d: %w", productID, model.ErrNotFound)
	}

	return nil
}

type advanceBaselineInput struct {
	ProductID int64 `validate:"required,gt=0"`
	OldPrice  int64 `validate:"gte=0"`
	NewPrice  int64 `validate:"gte=0"`
}

// AdvanceBaseline moves last_price from oldPrice to newPrice. It reports
// false when the stored baseline no longer equals oldPrice, meaning a
// fresher observation already won the race; the loser must not overwrite it.
func (that *Repository) AdvanceBaseline(ctx context.Context, productID int64, oldPrice int64, newPrice int64) (bool, error) {
	if err := validate.Struct(advanceBaselineInput{ProductID: productID, OldPrice: oldPrice, NewPrice: newPrice}); err != nil {
		return false, err
	}

	result := that.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND last_price = ?", productID, oldPrice).
		Update("last_price", newPrice)
	if err := result.Error; err != nil {
		return false, model.NewStoreError("advance baseline", err)
	}

	return result.RowsAffected > 0, nil
}
