package ledger

import (
	"context"
	"strings"

	"github.com/asaskevich/EventBus"
	"github.com/uzretail/storebot/internal/domain"
	"go.uber.org/zap"
)

// TopicInventoryChange is published after every successful mutation.
const TopicInventoryChange = "ledger:inventory_change"

// LowStockThreshold marks the quantity at which a change event is flagged
// so subscribers can warn the administrator.
const LowStockThreshold = 5

// ChangeEvent describes one committed ledger mutation.
type ChangeEvent struct {
	Product    domain.Product
	ChangeType string
	Delta      int64
	LowStock   bool
}

// Service owns the product quantities and the append-only audit trail.
// All invariants (non-negative quantity, one audit row per mutation) are
// enforced here and in the repository's conditional writes.
type Service struct {
	repo Repository
	bus  EventBus.Bus
}

func NewService(repo Repository, bus EventBus.Bus) *Service {
	return &Service{repo: repo, bus: bus}
}

// AddProduct creates a product or accumulates quantity into an existing one.
// Quantity and price must not be negative; a duplicate name is not an error.
func (s *Service) AddProduct(ctx context.Context, name string, qty int64, price float64, category, reason string, actorID int64) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if qty < 0 {
		return nil, ErrInvalidQuantity
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}

	p, err := s.repo.AddAccumulate(ctx, name, qty, price, category, reason, actorID)
	if err != nil {
		zap.L().Error("ledger: add product failed",
			zap.String("name", name), zap.Int64("qty", qty), zap.Error(err))
		return nil, err
	}

	zap.L().Info("ledger: product added",
		zap.String("name", p.Name),
		zap.Int64("delta", qty),
		zap.Int64("quantity", p.Quantity),
		zap.Int64("actor", actorID))
	s.publish(p, domain.ChangeTypeAdd, qty)
	return p, nil
}

// RemoveProduct subtracts qty from the named product. The sufficiency check
// and the write execute as one guarded statement, so two concurrent removals
// can never jointly overdraw the stock.
func (s *Service) RemoveProduct(ctx context.Context, name string, qty int64, reason string, actorID int64) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	p, err := s.repo.DecrementGuarded(ctx, name, qty, reason, actorID)
	if err != nil {
		// NotFound and InsufficientStock are expected business outcomes.
		zap.L().Debug("ledger: remove product rejected",
			zap.String("name", name), zap.Int64("qty", qty), zap.Error(err))
		return nil, err
	}

	zap.L().Info("ledger: product removed",
		zap.String("name", p.Name),
		zap.Int64("delta", -qty),
		zap.Int64("quantity", p.Quantity),
		zap.Int64("actor", actorID))
	s.publish(p, domain.ChangeTypeRemove, -qty)
	return p, nil
}

// SetQuantity overwrites the quantity directly. Used by administrative
// correction flows; the reason is optional metadata.
func (s *Service) SetQuantity(ctx context.Context, name string, qty int64, reason string, actorID int64) (*domain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	if qty < 0 {
		return nil, ErrInvalidQuantity
	}

	prev, err := s.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.Overwrite(ctx, name, qty, reason, actorID)
	if err != nil {
		return nil, err
	}

	delta := qty - prev.Quantity
	zap.L().Info("ledger: quantity corrected",
		zap.String("name", p.Name),
		zap.Int64("quantity", qty),
		zap.Int64("delta", delta),
		zap.Int64("actor", actorID))
	s.publish(p, domain.ChangeTypeUpdate, delta)
	return p, nil
}

func (s *Service) GetProduct(ctx context.Context, name string) (*domain.Product, error) {
	return s.repo.GetByName(ctx, strings.TrimSpace(name))
}

// ListProducts returns all products sorted by name ascending.
func (s *Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Stats aggregates the current product set; an empty ledger yields zeros.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	return s.repo.Stats(ctx)
}

// History returns the audit trail for one product, oldest first.
func (s *Service) History(ctx context.Context, name string, limit int) ([]domain.InventoryLog, error) {
	p, err := s.repo.GetByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	return s.repo.Logs(ctx, p.ID, limit)
}

func (s *Service) publish(p *domain.Product, changeType string, delta int64) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(TopicInventoryChange, ChangeEvent{
		Product:    *p,
		ChangeType: changeType,
		Delta:      delta,
		LowStock:   p.Quantity <= LowStockThreshold,
	})
}
