package handler

import (
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// --- Request → Service input ---

func toPatch(req updateSweetRequest) ports.SweetPatch {
	return ports.SweetPatch{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	}
}

// --- Domain → HTTP response ---

func toSweetResponse(s *domain.Sweet) sweetResponse {
	return sweetResponse{
		ID:        s.ID,
		Name:      s.Name,
		Category:  s.Category,
		Price:     s.Price,
		Quantity:  s.Quantity,
		CreatedAt: s.CreatedAt.UTC(),
		UpdatedAt: s.UpdatedAt.UTC(),
	}
}

func toSweetListResponse(sweets []*domain.Sweet) []sweetResponse {
	out := make([]sweetResponse, len(sweets))
	for i, s := range sweets {
		out[i] = toSweetResponse(s)
	}
	return out
}
