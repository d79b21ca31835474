package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// SweetService implements catalog and stock-control use cases.
type SweetService struct {
	repo   ports.SweetRepository
	logger zerolog.Logger
}

func NewSweetService(repo ports.SweetRepository, logger zerolog.Logger) *SweetService {
	return &SweetService{repo: repo, logger: logger}
}

// Create inserts a new sweet after validating its fields.
func (s *SweetService) Create(ctx context.Context, in ports.CreateSweetInput) (*domain.Sweet, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return nil, fmt.Errorf("%w: name and category are required", domain.ErrInvalidInput)
	}
	if in.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidInput)
	}
	if in.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", domain.ErrInvalidInput)
	}

	now := time.Now().UTC()
	sweet := &domain.Sweet{
		Name:      name,
		Category:  category,
		Price:     in.Price,
		Quantity:  in.Quantity,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.repo.Insert(ctx, sweet)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create sweet")
		return nil, err
	}

	s.logger.Info().Str("sweet_id", created.ID).Str("name", created.Name).Msg("sweet created")
	return created, nil
}

// List returns the full catalog.
func (s *SweetService) List(ctx context.Context) ([]*domain.Sweet, error) {
	return s.repo.FindAll(ctx)
}

// Search filters the catalog with a case-insensitive substring match on name
// or category. The predicate runs here rather than in the store so behaviour
// is identical regardless of the storage engine.
func (s *SweetService) Search(ctx context.Context, query string) ([]*domain.Sweet, error) {
	sweets, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return sweets, nil
	}

	matched := make([]*domain.Sweet, 0, len(sweets))
	for _, sw := range sweets {
		if strings.Contains(strings.ToLower(sw.Name), q) || strings.Contains(strings.ToLower(sw.Category), q) {
			matched = append(matched, sw)
		}
	}
	return matched, nil
}

// Purchase decrements stock by exactly one. The decrement is conditional on
// quantity being positive and happens atomically at the store, so concurrent
// purchases of the last unit yield one success and one ErrOutOfStock.
func (s *SweetService) Purchase(ctx context.Context, id string) (*domain.Sweet, error) {
	sweet, err := s.repo.DecrementStock(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("sweet_id", sweet.ID).Int("quantity", sweet.Quantity).Msg("sweet purchased")
	return sweet, nil
}

// Restock adds amount to the stock count.
func (s *SweetService) Restock(ctx context.Context, id string, amount int) (*domain.Sweet, error) {
	if amount < 0 {
		return nil, fmt.Errorf("%w: restock amount must be non-negative", domain.ErrInvalidInput)
	}

	sweet, err := s.repo.IncrementStock(ctx, id, amount)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("sweet_id", sweet.ID).Int("quantity", sweet.Quantity).Msg("sweet restocked")
	return sweet, nil
}

// Update applies only the fields present in patch. A pointer to a zero value
// is an explicit update, so price and quantity can be set to 0.
func (s *SweetService) Update(ctx context.Context, id string, patch ports.SweetPatch) (*domain.Sweet, error) {
	if patch.IsEmpty() {
		return s.repo.FindByID(ctx, id)
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, fmt.Errorf("%w: name cannot be empty", domain.ErrInvalidInput)
	}
	if patch.Category != nil && strings.TrimSpace(*patch.Category) == "" {
		return nil, fmt.Errorf("%w: category cannot be empty", domain.ErrInvalidInput)
	}
	if patch.Price != nil && *patch.Price < 0 {
		return nil, fmt.Errorf("%w: price must be non-negative", domain.ErrInvalidInput)
	}
	if patch.Quantity != nil && *patch.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity must be non-negative", domain.ErrInvalidInput)
	}

	sweet, err := s.repo.UpdateFields(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("sweet_id", sweet.ID).Msg("sweet updated")
	return sweet, nil
}

// Delete removes a sweet permanently.
func (s *SweetService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("sweet_id", id).Msg("sweet deleted")
	return nil
}
