package ledger

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/uzretail/storebot/internal/domain"
	"github.com/uzretail/storebot/pkg/common"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Stats is the aggregate over the current product set.
type Stats struct {
	ProductCount int64   `json:"product_count"`
	TotalUnits   int64   `json:"total_units"`
	TotalValue   float64 `json:"total_value"`
}

// Repository handles inventory storage. Each mutating call commits the
// quantity change together with its audit log row in a single transaction;
// the quantity guard runs inside the UPDATE statement itself, so concurrent
// mutations of the same product serialize at the database.
type Repository interface {
	// AddAccumulate creates the product or adds qty to an existing one with
	// the same name, then appends an `add` audit row. A duplicate name is the
	// accumulation path, never an error.
	AddAccumulate(ctx context.Context, name string, qty int64, price float64, category, reason string, actorID int64) (*domain.Product, error)

	// DecrementGuarded subtracts qty if and only if the current quantity is
	// sufficient, then appends a `remove` audit row. Returns ErrNotFound or
	// ErrInsufficientStock with no partial write.
	DecrementGuarded(ctx context.Context, name string, qty int64, reason string, actorID int64) (*domain.Product, error)

	// Overwrite sets the quantity directly (administrative correction) and
	// appends an `update` audit row.
	Overwrite(ctx context.Context, name string, qty int64, reason string, actorID int64) (*domain.Product, error)

	GetByName(ctx context.Context, name string) (*domain.Product, error)

	// List returns all products ordered by name ascending.
	List(ctx context.Context) ([]domain.Product, error)

	Stats(ctx context.Context) (Stats, error)

	// Logs returns the audit trail for one product, oldest first.
	Logs(ctx context.Context, productID int64, limit int) ([]domain.InventoryLog, error)
}

// GormRepository is the GORM implementation of Repository.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) AddAccumulate(ctx context.Context, name string, qty int64, price float64, category, reason string, actorID int64) (*domain.Product, error) {
	var out domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		p := domain.Product{
			ID:        common.UUIDint64(),
			Name:      name,
			Quantity:  qty,
			Price:     price,
			Category:  category,
			CreatedAt: now,
			UpdatedAt: now,
		}
		// Single conditional write: insert, or accumulate into the existing
		// row on name conflict. Unqualified columns in DO UPDATE refer to the
		// existing row on both sqlite and postgres.
		res := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("quantity + ?", qty),
				"updated_at": now,
			}),
		}).Create(&p)
		if res.Error != nil {
			return errors.Wrap(res.Error, "upsert product")
		}

		if err := tx.Where("name = ?", name).First(&out).Error; err != nil {
			return errors.Wrap(err, "reload product")
		}

		return appendLog(tx, &domain.InventoryLog{
			ID:             common.UUIDint64(),
			ProductID:      out.ID,
			ChangeType:     domain.ChangeTypeAdd,
			QuantityChange: qty,
			NewQuantity:    out.Quantity,
			Reason:         reason,
			UserID:         actorID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GormRepository) DecrementGuarded(ctx context.Context, name string, qty int64, reason string, actorID int64) (*domain.Product, error) {
	var out domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now()
		res := tx.Model(&domain.Product{}).
			Where("name = ? AND quantity >= ?", name, qty).
			Updates(map[string]interface{}{
				"quantity":   gorm.Expr("quantity - ?", qty),
				"updated_at": now,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "decrement product")
		}
		if res.RowsAffected == 0 {
			// The guard rejected the write: tell the missing product apart
			// from insufficient stock.
			var count int64
			if err := tx.Model(&domain.Product{}).Where("name = ?", name).Count(&count).Error; err != nil {
				return errors.Wrap(err, "count product")
			}
			if count == 0 {
				return ErrNotFound
			}
			return ErrInsufficientStock
		}

		if err := tx.Where("name = ?", name).First(&out).Error; err != nil {
			return errors.Wrap(err, "reload product")
		}

		return appendLog(tx, &domain.InventoryLog{
			ID:             common.UUIDint64(),
			ProductID:      out.ID,
			ChangeType:     domain.ChangeTypeRemove,
			QuantityChange: -qty,
			NewQuantity:    out.Quantity,
			Reason:         reason,
			UserID:         actorID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GormRepository) Overwrite(ctx context.Context, name string, qty int64, reason string, actorID int64) (*domain.Product, error) {
	var out domain.Product
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev domain.Product
		if err := tx.Where("name = ?", name).First(&prev).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return errors.Wrap(err, "load product")
		}

		now := time.Now()
		res := tx.Model(&domain.Product{}).
			Where("id = ?", prev.ID).
			Updates(map[string]interface{}{
				"quantity":   qty,
				"updated_at": now,
			})
		if res.Error != nil {
			return errors.Wrap(res.Error, "overwrite product")
		}

		out = prev
		out.Quantity = qty
		out.UpdatedAt = now

		return appendLog(tx, &domain.InventoryLog{
			ID:             common.UUIDint64(),
			ProductID:      prev.ID,
			ChangeType:     domain.ChangeTypeUpdate,
			QuantityChange: qty - prev.Quantity,
			NewQuantity:    qty,
			Reason:         reason,
			UserID:         actorID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *GormRepository) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "query product")
	}
	return &p, nil
}

func (r *GormRepository) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

func (r *GormRepository) Stats(ctx context.Context) (Stats, error) {
	var s Stats
	row := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("COUNT(*), COALESCE(SUM(quantity), 0), COALESCE(SUM(quantity * price), 0)").
		Row()
	if err := row.Scan(&s.ProductCount, &s.TotalUnits, &s.TotalValue); err != nil {
		return Stats{}, errors.Wrap(err, "aggregate products")
	}
	return s, nil
}

func (r *GormRepository) Logs(ctx context.Context, productID int64, limit int) ([]domain.InventoryLog, error) {
	var logs []domain.InventoryLog
	q := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at ASC, id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&logs).Error; err != nil {
		return nil, errors.Wrap(err, "list inventory logs")
	}
	return logs, nil
}

func appendLog(tx *gorm.DB, entry *domain.InventoryLog) error {
	if err := tx.Create(entry).Error; err != nil {
		return errors.Wrap(err, "append inventory log")
	}
	return nil
}
