package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

// sweetRequest is the payload for both create and update. Update replaces
// all four fields wholesale. Price and quantity are validated non-negative
// here at the boundary; the engine itself stays permissive.
type sweetRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"gte=0"`
	Quantity int64   `json:"quantity" validate:"gte=0"`
}

type purchaseResponse struct {
	RemainingQuantity int64 `json:"remaining_quantity"`
}

type restockResponse struct {
	NewQuantity int64 `json:"new_quantity"`
}

type deleteResponse struct {
	Message string `json:"message"`
}
