package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// memSweetRepo is an in-memory SweetRepository. DecrementStock mirrors the
// store's atomic conditional decrement under a mutex, so the concurrency
// guarantees of the real repository hold in tests too.
type memSweetRepo struct {
	mu     sync.Mutex
	nextID int
	sweets map[string]*domain.Sweet
}

func newMemSweetRepo() *memSweetRepo {
	return &memSweetRepo{sweets: make(map[string]*domain.Sweet)}
}

func (r *memSweetRepo) Insert(_ context.Context, s *domain.Sweet) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	clone := *s
	clone.ID = "sweet-" + strconv.Itoa(r.nextID)
	r.sweets[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memSweetRepo) FindByID(_ context.Context, id string) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *memSweetRepo) FindAll(_ context.Context) ([]*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Sweet, 0, len(r.sweets))
	for _, s := range r.sweets {
		clone := *s
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memSweetRepo) DecrementStock(_ context.Context, id string) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if s.Quantity <= 0 {
		return nil, domain.ErrOutOfStock
	}
	s.Quantity--
	clone := *s
	return &clone, nil
}

func (r *memSweetRepo) IncrementStock(_ context.Context, id string, amount int) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	s.Quantity += amount
	clone := *s
	return &clone, nil
}

func (r *memSweetRepo) UpdateFields(_ context.Context, id string, patch ports.SweetPatch) (*domain.Sweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sweets[id]
	if !ok {
		return nil, domain.ErrSweetNotFound
	}
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.Category != nil {
		s.Category = *patch.Category
	}
	if patch.Price != nil {
		s.Price = *patch.Price
	}
	if patch.Quantity != nil {
		s.Quantity = *patch.Quantity
	}
	clone := *s
	return &clone, nil
}

func (r *memSweetRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sweets[id]; !ok {
		return domain.ErrSweetNotFound
	}
	delete(r.sweets, id)
	return nil
}

func newTestSweetService() (*SweetService, *memSweetRepo) {
	repo := newMemSweetRepo()
	return NewSweetService(repo, zerolog.Nop()), repo
}

func mustCreate(t *testing.T, svc *SweetService, in ports.CreateSweetInput) *domain.Sweet {
	t.Helper()
	sweet, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return sweet
}

func TestSweetService_Create_Validation(t *testing.T) {
	svc, _ := newTestSweetService()

	cases := []struct {
		name string
		in   ports.CreateSweetInput
	}{
		{"missing name", ports.CreateSweetInput{Category: "Gummy", Price: 1, Quantity: 1}},
		{"missing category", ports.CreateSweetInput{Name: "Gummy Bears", Price: 1, Quantity: 1}},
		{"negative price", ports.CreateSweetInput{Name: "Gummy Bears", Category: "Gummy", Price: -1, Quantity: 1}},
		{"negative quantity", ports.CreateSweetInput{Name: "Gummy Bears", Category: "Gummy", Price: 1, Quantity: -1}},
	}
	for _, tc := range cases {
		if _, err := svc.Create(context.Background(), tc.in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Fatalf("%s: expected ErrInvalidInput, got %v", tc.name, err)
		}
	}
}

func TestSweetService_Search(t *testing.T) {
	svc, _ := newTestSweetService()
	mustCreate(t, svc, ports.CreateSweetInput{Name: "Chocolate Bar", Category: "Chocolate", Price: 5, Quantity: 10})
	mustCreate(t, svc, ports.CreateSweetInput{Name: "Gummy Bears", Category: "Gummy", Price: 3, Quantity: 20})
	mustCreate(t, svc, ports.CreateSweetInput{Name: "Lollipop", Category: "Hard Candy", Price: 1, Quantity: 50})

	// Empty query returns the same set as List.
	all, err := svc.Search(context.Background(), "")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 sweets for empty query, got %d", len(all))
	}

	// Case-insensitive match on name.
	byName, err := svc.Search(context.Background(), "bear")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byName) != 1 || byName[0].Name != "Gummy Bears" {
		t.Fatalf("expected Gummy Bears, got %+v", byName)
	}

	// Match on category.
	byCategory, err := svc.Search(context.Background(), "hard")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(byCategory) != 1 || byCategory[0].Name != "Lollipop" {
		t.Fatalf("expected Lollipop, got %+v", byCategory)
	}

	// No match.
	none, err := svc.Search(context.Background(), "nougat")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("expected no matches, got %d", len(none))
	}
}

func TestSweetService_Purchase_DecrementsByOne(t *testing.T) {
	svc, _ := newTestSweetService()
	sweet := mustCreate(t, svc, ports.CreateSweetInput{Name: "Fudge", Category: "Chocolate", Price: 2, Quantity: 3})

	updated, err := svc.Purchase(context.Background(), sweet.ID)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if updated.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", updated.Quantity)
	}
}

func TestSweetService_Purchase_OutOfStock(t *testing.T) {
	svc, _ := newTestSweetService()
	sweet := mustCreate(t, svc, ports.CreateSweetInput{Name: "Fudge", Category: "Chocolate", Price: 2, Quantity: 0})

	if _, err := svc.Purchase(context.Background(), sweet.ID); !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}
}

func TestSweetService_Purchase_NotFound(t *testing.T) {
	svc, _ := newTestSweetService()
	if _, err := svc.Purchase(context.Background(), "missing"); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

// Concurrent purchases against a single unit: exactly one caller wins and
// the quantity never goes negative.
func TestSweetService_Purchase_ConcurrentLastUnit(t *testing.T) {
	svc, repo := newTestSweetService()
	sweet := mustCreate(t, svc, ports.CreateSweetInput{Name: "Gummy Bears", Category: "Gummy", Price: 3, Quantity: 1})

	const callers = 8
	var wg sync.WaitGroup
	results := make(chan error, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Purchase(context.Background(), sweet.ID)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, outOfStock int
	for err := range results {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, domain.ErrOutOfStock):
			outOfStock++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if successes != 1 {
		t.Fatalf("expected exactly 1 successful purchase, got %d", successes)
	}
	if outOfStock != callers-1 {
		t.Fatalf("expected %d out-of-stock failures, got %d", callers-1, outOfStock)
	}

	final, err := repo.FindByID(context.Background(), sweet.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if final.Quantity != 0 {
		t.Fatalf("expected final quantity 0, got %d", final.Quantity)
	}
}

func TestSweetService_Restock(t *testing.T) {
	svc, _ := newTestSweetService()
	sweet := mustCreate(t, svc, ports.CreateSweetInput{Name: "Toffee", Category: "Caramel", Price: 4, Quantity: 5})

	updated, err := svc.Restock(context.Background(), sweet.ID, 10)
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if updated.Quantity != 15 {
		t.Fatalf("expected quantity 15, got %d", updated.Quantity)
	}

	if _, err := svc.Restock(context.Background(), sweet.ID, -1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for negative amount, got %v", err)
	}
	if _, err := svc.Restock(context.Background(), "missing", 1); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound, got %v", err)
	}
}

func TestSweetService_Update_PartialFields(t *testing.T) {
	svc, _ := newTestSweetService()
	sweet := mustCreate(t, svc, ports.CreateSweetInput{Name: "Toffee", Category: "Caramel", Price: 4, Quantity: 5})

	newPrice := 2.5
	updated, err := svc.Update(context.Background(), sweet.ID, ports.SweetPatch{Price: &newPrice})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Price != 2.5 {
		t.Fatalf("expected price 2.5, got %v", updated.Price)
	}
	if updated.Name != "Toffee" || updated.Category != "Caramel" || updated.Quantity != 5 {
		t.Fatalf("untouched fields changed: %+v", updated)
	}
}

// A present zero value is an explicit update, not "unset".
func TestSweetService_Update_ExplicitZero(t *testing.T) {
	svc, _ := newTestSweetService()
	sweet := mustCreate(t, svc, ports.CreateSweetInput{Name: "Toffee", Category: "Caramel", Price: 4, Quantity: 5})

	zero := 0
	updated, err := svc.Update(context.Background(), sweet.ID, ports.SweetPatch{Quantity: &zero})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Quantity != 0 {
		t.Fatalf("expected quantity 0, got %d", updated.Quantity)
	}
}

func TestSweetService_Update_Validation(t *testing.T) {
	svc, _ := newTestSweetService()
	sweet := mustCreate(t, svc, ports.CreateSweetInput{Name: "Toffee", Category: "Caramel", Price: 4, Quantity: 5})

	bad := -1.0
	if _, err := svc.Update(context.Background(), sweet.ID, ports.SweetPatch{Price: &bad}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	empty := "  "
	if _, err := svc.Update(context.Background(), sweet.ID, ports.SweetPatch{Name: &empty}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}

func TestSweetService_Delete(t *testing.T) {
	svc, _ := newTestSweetService()
	sweet := mustCreate(t, svc, ports.CreateSweetInput{Name: "Toffee", Category: "Caramel", Price: 4, Quantity: 5})

	if err := svc.Delete(context.Background(), sweet.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), sweet.ID); !errors.Is(err, domain.ErrSweetNotFound) {
		t.Fatalf("expected ErrSweetNotFound on second delete, got %v", err)
	}

	list, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty catalog, got %d", len(list))
	}
}

// Purchase after restock keeps the quantity consistent over a sequence of
// mixed operations.
func TestSweetService_StockSequence(t *testing.T) {
	svc, _ := newTestSweetService()
	sweet := mustCreate(t, svc, ports.CreateSweetInput{Name: "Mint", Category: "Hard Candy", Price: 1, Quantity: 1})

	if _, err := svc.Purchase(context.Background(), sweet.ID); err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if _, err := svc.Purchase(context.Background(), sweet.ID); !errors.Is(err, domain.ErrOutOfStock) {
		t.Fatalf("expected ErrOutOfStock, got %v", err)
	}

	restocked, err := svc.Restock(context.Background(), sweet.ID, 2)
	if err != nil {
		t.Fatalf("restock failed: %v", err)
	}
	if restocked.Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", restocked.Quantity)
	}

	bought, err := svc.Purchase(context.Background(), sweet.ID)
	if err != nil {
		t.Fatalf("purchase failed: %v", err)
	}
	if bought.Quantity != 1 {
		t.Fatalf("expected quantity 1, got %d", bought.Quantity)
	}
}
