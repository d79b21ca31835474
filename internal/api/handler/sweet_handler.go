package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/sweet-shop-api/internal/api/metrics"
	"github.com/sweetshop/sweet-shop-api/internal/core/domain"
	"github.com/sweetshop/sweet-shop-api/internal/core/ports"
)

// SweetHandler handles HTTP requests for catalog and stock operations.
type SweetHandler struct {
	service ports.SweetService
}

func NewSweetHandler(service ports.SweetService) *SweetHandler {
	return &SweetHandler{service: service}
}

// List handles GET /sweets.
//
// @Summary      List all sweets
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   sweetResponse
// @Failure      401  {object}  messageResponse
// @Router       /sweets [get]
func (h *SweetHandler) List(c echo.Context) error {
	sweets, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetListResponse(sweets))
}

// Search handles GET /sweets/search?query=.
//
// @Summary      Search sweets by name or category
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        query  query     string  false  "Case-insensitive substring match"
// @Success      200    {array}   sweetResponse
// @Failure      401    {object}  messageResponse
// @Router       /sweets/search [get]
func (h *SweetHandler) Search(c echo.Context) error {
	sweets, err := h.service.Search(c.Request().Context(), c.QueryParam("query"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetListResponse(sweets))
}

// Create handles POST /sweets (admin only).
//
// @Summary      Add a sweet to the catalog
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSweetRequest  true  "Sweet details"
// @Success      201   {object}  sweetResponse
// @Failure      400   {object}  messageResponse
// @Failure      403   {object}  messageResponse
// @Router       /sweets [post]
func (h *SweetHandler) Create(c echo.Context) error {
	var req createSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sweet, err := h.service.Create(c.Request().Context(), ports.CreateSweetInput{
		Name:     req.Name,
		Category: req.Category,
		Price:    req.Price,
		Quantity: req.Quantity,
	})
	if err != nil {
		return err
	}

	metrics.SweetsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toSweetResponse(sweet))
}

// Purchase handles POST /sweets/:id/purchase.
//
// @Summary      Purchase one unit of a sweet
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sweet id"
// @Success      200  {object}  sweetResponse
// @Failure      400  {object}  messageResponse  "out of stock"
// @Failure      404  {object}  messageResponse
// @Router       /sweets/{id}/purchase [post]
func (h *SweetHandler) Purchase(c echo.Context) error {
	sweet, err := h.service.Purchase(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOutOfStock):
			metrics.PurchasesTotal.WithLabelValues("out_of_stock").Inc()
		case errors.Is(err, domain.ErrSweetNotFound):
			metrics.PurchasesTotal.WithLabelValues("not_found").Inc()
		}
		return err
	}

	metrics.PurchasesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Restock handles POST /sweets/:id/restock (admin only).
//
// @Summary      Add stock to a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Sweet id"
// @Param        body  body      restockRequest  true  "Quantity to add"
// @Success      200   {object}  sweetResponse
// @Failure      404   {object}  messageResponse
// @Router       /sweets/{id}/restock [post]
func (h *SweetHandler) Restock(c echo.Context) error {
	var req restockRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sweet, err := h.service.Restock(c.Request().Context(), c.Param("id"), req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Update handles PUT /sweets/:id (admin only). Only fields present in the
// payload are changed.
//
// @Summary      Update fields of a sweet
// @Tags         sweets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string              true  "Sweet id"
// @Param        body  body      updateSweetRequest  true  "Fields to change"
// @Success      200   {object}  sweetResponse
// @Failure      404   {object}  messageResponse
// @Router       /sweets/{id} [put]
func (h *SweetHandler) Update(c echo.Context) error {
	var req updateSweetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sweet, err := h.service.Update(c.Request().Context(), c.Param("id"), toPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toSweetResponse(sweet))
}

// Delete handles DELETE /sweets/:id (admin only).
//
// @Summary      Remove a sweet from the catalog
// @Tags         sweets
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Sweet id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  messageResponse
// @Router       /sweets/{id} [delete]
func (h *SweetHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "sweet removed"})
}
