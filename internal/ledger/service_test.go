package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/asaskevich/EventBus"
	"github.com/uzretail/storebot/internal/domain"
)

// mockRepo implements Repository in memory with the same guard semantics as
// the SQL adapter.
type mockRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	logs     []domain.InventoryLog
	nextID   int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{products: make(map[string]*domain.Product), nextID: 1}
}

func (m *mockRepo) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *mockRepo) AddAccumulate(ctx context.Context, name string, qty int64, price float64, category, reason string, actorID int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[name]
	if !ok {
		p = &domain.Product{ID: m.id(), Name: name, Price: price, Category: category}
		m.products[name] = p
	}
	p.Quantity += qty
	m.logs = append(m.logs, domain.InventoryLog{
		ID: m.id(), ProductID: p.ID, ChangeType: domain.ChangeTypeAdd,
		QuantityChange: qty, NewQuantity: p.Quantity, Reason: reason, UserID: actorID,
	})
	out := *p
	return &out, nil
}

func (m *mockRepo) DecrementGuarded(ctx context.Context, name string, qty int64, reason string, actorID int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[name]
	if !ok {
		return nil, ErrNotFound
	}
	if p.Quantity < qty {
		return nil, ErrInsufficientStock
	}
	p.Quantity -= qty
	m.logs = append(m.logs, domain.InventoryLog{
		ID: m.id(), ProductID: p.ID, ChangeType: domain.ChangeTypeRemove,
		QuantityChange: -qty, NewQuantity: p.Quantity, Reason: reason, UserID: actorID,
	})
	out := *p
	return &out, nil
}

func (m *mockRepo) Overwrite(ctx context.Context, name string, qty int64, reason string, actorID int64) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[name]
	if !ok {
		return nil, ErrNotFound
	}
	delta := qty - p.Quantity
	p.Quantity = qty
	m.logs = append(m.logs, domain.InventoryLog{
		ID: m.id(), ProductID: p.ID, ChangeType: domain.ChangeTypeUpdate,
		QuantityChange: delta, NewQuantity: qty, Reason: reason, UserID: actorID,
	})
	out := *p
	return &out, nil
}

func (m *mockRepo) GetByName(ctx context.Context, name string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.products[name]
	if !ok {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

func (m *mockRepo) List(ctx context.Context) ([]domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockRepo) Stats(ctx context.Context) (Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var s Stats
	for _, p := range m.products {
		s.ProductCount++
		s.TotalUnits += p.Quantity
		s.TotalValue += float64(p.Quantity) * p.Price
	}
	return s, nil
}

func (m *mockRepo) Logs(ctx context.Context, productID int64, limit int) ([]domain.InventoryLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.InventoryLog
	for _, l := range m.logs {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestAddProductValidation(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	ctx := context.Background()

	if _, err := svc.AddProduct(ctx, "  ", 1, 0, "", "", 1); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.AddProduct(ctx, "Kola", -1, 0, "", "", 1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.AddProduct(ctx, "Kola", 1, -5, "", "", 1); !errors.Is(err, ErrInvalidPrice) {
		t.Errorf("expected ErrInvalidPrice, got %v", err)
	}
}

func TestRemoveProductValidation(t *testing.T) {
	svc := NewService(newMockRepo(), nil)
	ctx := context.Background()

	if _, err := svc.RemoveProduct(ctx, "", 1, "", 1); !errors.Is(err, ErrInvalidName) {
		t.Errorf("expected ErrInvalidName, got %v", err)
	}
	if _, err := svc.RemoveProduct(ctx, "Kola", 0, "", 1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for zero qty, got %v", err)
	}
	if _, err := svc.RemoveProduct(ctx, "Kola", -3, "", 1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for negative qty, got %v", err)
	}
}

func TestSetQuantityValidation(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	if _, err := svc.SetQuantity(ctx, "Kola", -1, "", 1); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity, got %v", err)
	}
	if _, err := svc.SetQuantity(ctx, "Kola", 5, "", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	if _, err := svc.AddProduct(ctx, "Kola", 10, 0, "", "", 1); err != nil {
		t.Fatal(err)
	}
	p, err := svc.SetQuantity(ctx, "Kola", 0, "", 1)
	if err != nil {
		t.Fatalf("zero is a valid corrected quantity: %v", err)
	}
	if p.Quantity != 0 {
		t.Errorf("expected quantity 0, got %d", p.Quantity)
	}
}

func TestChangeEventsPublished(t *testing.T) {
	bus := EventBus.New()
	svc := NewService(newMockRepo(), bus)
	ctx := context.Background()

	var mu sync.Mutex
	var events []ChangeEvent
	if err := bus.Subscribe(TopicInventoryChange, func(ev ChangeEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddProduct(ctx, "Kola", 100, 8000, "Ichimliklar", "", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.RemoveProduct(ctx, "Kola", 97, "", 1); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].ChangeType != domain.ChangeTypeAdd || events[0].Delta != 100 {
		t.Errorf("add event wrong: %+v", events[0])
	}
	if events[1].ChangeType != domain.ChangeTypeRemove || events[1].Delta != -97 {
		t.Errorf("remove event wrong: %+v", events[1])
	}
	if !events[1].LowStock {
		t.Errorf("expected low stock flag at quantity %d", events[1].Product.Quantity)
	}
}

func TestCorrectionEventCarriesDelta(t *testing.T) {
	bus := EventBus.New()
	svc := NewService(newMockRepo(), bus)
	ctx := context.Background()

	var mu sync.Mutex
	var events []ChangeEvent
	if err := bus.Subscribe(TopicInventoryChange, func(ev ChangeEvent) {
		mu.Lock()
		events = append(events, ev)
		mu.Unlock()
	}); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AddProduct(ctx, "Kola", 10, 0, "", "", 1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetQuantity(ctx, "Kola", 4, "inventarizatsiya", 1); err != nil {
		t.Fatal(err)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	ev := events[1]
	if ev.ChangeType != domain.ChangeTypeUpdate || ev.Delta != -6 {
		t.Errorf("correction event wrong: %+v", ev)
	}
	if !ev.LowStock {
		t.Errorf("expected low stock flag at quantity %d", ev.Product.Quantity)
	}
}

func TestConcurrentRemoveThroughService(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	if _, err := svc.AddProduct(ctx, "X", 100, 0, "", "", 1); err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup
	results := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.RemoveProduct(ctx, "X", 60, "", 1)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var ok, rejected int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, ErrInsufficientStock):
			rejected++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if ok != 1 || rejected != 1 {
		t.Fatalf("expected one success and one rejection, got %d/%d", ok, rejected)
	}
	p, _ := svc.GetProduct(ctx, "X")
	if p.Quantity != 40 {
		t.Errorf("expected quantity 40, got %d", p.Quantity)
	}
}
