package handler

import "time"

// messageResponse is the standard envelope for errors and confirmations.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request types ---

type createSweetRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int     `json:"quantity" validate:"gte=0"`
}

type restockRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// updateSweetRequest uses pointer fields so only keys present in the JSON
// payload are applied; an explicit 0 or "" is a real update, not "unset".
type updateSweetRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"    validate:"omitempty,gte=0"`
	Quantity *int     `json:"quantity" validate:"omitempty,gte=0"`
}

// --- Response types ---

// sweetResponse is owned by the transport layer so the JSON contract is not
// coupled to internal domain changes.
type sweetResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
