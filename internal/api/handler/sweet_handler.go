package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-api/internal/api/metrics"
	"github.com/sweetshop/sweet-shop-api/internal/api/middleware"
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// SweetHandler handles HTTP requests for catalog operations.
type SweetHandler struct {
	service ports.SweetService
}

func NewSweetHandler(service ports.SweetService) *SweetHandler {
	return &SweetHandler{service: service}
}

// Create handles POST /api/sweets.
//
// @Summary      Create a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Param        body  body      sweetRequest  true  "Sweet details"
// @Success      201   {object}  domain.Sweet
// @Failure      400   {object}  errorResponse
// @Router       /api/sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req sweetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	created, err := h.service.Create(c.Request().Context(), middleware.IdentityFromContext(c), ports.SweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return err
	}

	metrics.SweetsCreatedTotal.WithLabelValues(created.Category).Inc()
	return c.JSON(http.StatusCreated, created)
}

// List handles GET /api/sweets.
//
// @Summary      List all sweets
// @Tags         sweets
// @Produce      json
// @Success      200  {array}  domain.Sweet
// @Router       /api/sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.service.List(c.Request().Context(), middleware.IdentityFromContext(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweets)
}

// Search handles GET /api/sweets/search?query=.
//
// @Summary      Search sweets by name or category
// @Tags         sweets
// @Produce      json
// @Param        query  query    string  true  "Case-insensitive substring match"
// @Success      200    {array}  domain.Sweet
// @Router       /api/sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	sweets, err := h.service.Search(c.Request().Context(), middleware.IdentityFromContext(c), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sweets)
}

// Update handles PUT /api/sweets/:id. All four fields are replaced.
//
// @Summary      Update a sweet (wholesale replace)
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Param        id    path      string        true  "Sweet id"
// @Param        body  body      sweetRequest  true  "New field values"
// @Success      200   {object}  domain.Sweet
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req sweetRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	updated, err := h.service.Update(c.Request().Context(), middleware.IdentityFromContext(c), c.Param("id"), ports.SweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Purchase handles POST /api/sweets/:id/purchase — a single-unit purchase.
//
// @Summary      Purchase one unit of a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Sweet id"
// @Success      200  {object}  purchaseResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sweets/{id}/purchase [post]
func (h *SweetHandler) Purchase(c echo.Context) error {
	result, err := h.service.Purchase(c.Request().Context(), middleware.IdentityFromContext(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrOutOfStock) {
			metrics.PurchasesTotal.WithLabelValues("out_of_stock").Inc()
		} else if !errors.Is(err, domain.ErrSweetNotFound) && !errors.Is(err, domain.ErrUnauthenticated) {
			metrics.PurchasesTotal.WithLabelValues("error").Inc()
		}
		return err
	}

	metrics.PurchasesTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, purchaseResponse{RemainingQuantity: result.RemainingQuantity})
}

// Restock handles POST /api/sweets/:id/restock?quantity=. Admin only.
//
// @Summary      Restock a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id        path      string  true  "Sweet id"
// @Param        quantity  query     int     true  "Units to add (positive)"
// @Success      200  {object}  restockResponse
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sweets/{id}/restock [post]
func (h *SweetHandler) Restock(c echo.Context) error {
	amount, err := strconv.ParseInt(c.QueryParam("quantity"), 10, 64)
	if err != nil || amount <= 0 {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "quantity must be a positive integer"})
	}

	result, err := h.service.Restock(c.Request().Context(), middleware.IdentityFromContext(c), c.Param("id"), amount)
	if err != nil {
		return err
	}

	metrics.RestocksTotal.Inc()
	metrics.RestockUnitsTotal.Add(float64(amount))
	return c.JSON(http.StatusOK, restockResponse{NewQuantity: result.NewQuantity})
}

// Delete handles DELETE /api/sweets/:id. Admin only.
//
// @Summary      Delete a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Sweet id"
// @Success      200  {object}  deleteResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), middleware.IdentityFromContext(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleteResponse{Message: "sweet deleted successfully"})
}
