package stockrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"deliveryno/internal/adapters/out/postgres/pgerr"
	"deliveryno/internal/core/domain/model/kernel"
	"deliveryno/internal/core/domain/model/stock"
	"deliveryno/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormStockRepository struct {
	db *gorm.DB
}

func NewGormStockRepository(db *gorm.DB) *GormStockRepository {
	return &GormStockRepository{db: db}
}

func (r *GormStockRepository) Add(ctx context.Context, aggregate *stock.Stock) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if pgerr.IsUniqueViolation(err) {
			return errs.NewValueIsInvalidErrorWithCause("item",
				fmt.Errorf("seller already stocks %q", aggregate.Item()))
		}
		return pgerr.Translate(err, "stock")
	}
	return nil
}

// Update is guarded by the version the entry was loaded with.
func (r *GormStockRepository) Update(ctx context.Context, aggregate *stock.Stock) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&StockDTO{}).
		Where("id = ? AND version = ?", dto.ID, aggregate.LoadedVersion()).
		Updates(map[string]any{
			"item_name":  dto.ItemName,
			"quantity":   dto.Quantity,
			"approved":   dto.Approved,
			"version":    dto.Version,
			"updated_at": dto.UpdatedAt,
		})
	if result.Error != nil {
		if pgerr.IsUniqueViolation(result.Error) {
			return errs.NewValueIsInvalidErrorWithCause("item",
				fmt.Errorf("seller already stocks %q", aggregate.Item()))
		}
		return pgerr.Translate(result.Error, "stock")
	}

	if result.RowsAffected == 0 {
		if _, err := r.Get(ctx, aggregate.ID()); err != nil {
			return err
		}
		return errs.NewVersionIsInvalidError("stock")
	}
	return nil
}

func (r *GormStockRepository) Get(ctx context.Context, id kernel.UUID) (*stock.Stock, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormStockRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&StockDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return pgerr.Translate(result.Error, "stock")
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("stock", id.String())
	}
	return nil
}

func (r *GormStockRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*stock.Stock, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormStockRepository) FindBySellerAndItem(
	ctx context.Context, sellerID kernel.UUID, item string,
) (*stock.Stock, error) {
	var dto StockDTO
	err := r.db.WithContext(ctx).
		First(&dto, "seller_id = ? AND item_name = ?", sellerID.Bytes(), item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, stock.NewItemNotFoundError(sellerID, item)
		}
		return nil, pgerr.Translate(err, "stock")
	}

	return toDomain(dto)
}

// DecrementIfAvailable issues a single conditional UPDATE; the row lock it takes
// makes concurrent decrements of the same entry apply one after another.
func (r *GormStockRepository) DecrementIfAvailable(
	ctx context.Context, sellerID kernel.UUID, item string, quantity int,
) (bool, error) {
	result := r.db.WithContext(ctx).Model(&StockDTO{}).
		Where("seller_id = ? AND item_name = ? AND quantity >= ?", sellerID.Bytes(), item, quantity).
		Updates(map[string]any{
			"quantity":   gorm.Expr("quantity - ?", quantity),
			"version":    gorm.Expr("version + 1"),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, pgerr.Translate(result.Error, "stock")
	}
	return result.RowsAffected == 1, nil
}

func (r *GormStockRepository) get(db *gorm.DB, id kernel.UUID) (*stock.Stock, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto StockDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("stock", id.String())
		}
		return nil, pgerr.Translate(err, "stock")
	}

	return toDomain(dto)
}
