package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mesero/internal/domain"
	apperrors "mesero/internal/errors"
)

type OrderManager interface {
	CreateOrder(ctx context.Context, tableNumber int) (uint, error)
	GetOrder(ctx context.Context, id uint) (*domain.Order, error)
	GetActiveOrder(ctx context.Context) (*domain.Order, error)
	UpdateOrder(ctx context.Context, order domain.Order) error
	DeleteOrder(ctx context.Context, id uint) error
	AddLineItem(ctx context.Context, item domain.OrderLineItem) (uint, error)
	UpdateLineItem(ctx context.Context, id uint, quantity int, specialRequests string) error
	RemoveLineItem(ctx context.Context, id uint) error
	GetLineItems(ctx context.Context, orderID uint) ([]domain.OrderLineItem, error)
}

type OrderController struct {
	manager OrderManager
	logger  *zap.Logger
}

func NewOrderController(manager OrderManager, logger *zap.Logger) *OrderController {
	return &OrderController{
		manager: manager,
		logger:  logger,
	}
}

type CreateOrderRequest struct {
	TableNumber int `json:"tableNumber"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type AddLineItemRequest struct {
	MenuItemID      string `json:"menuItemId"`
	ItemName        string `json:"itemName"`
	ItemPrice       string `json:"itemPrice"`
	Quantity        int    `json:"quantity"`
	SpecialRequests string `json:"specialRequests"`
}

type UpdateLineItemRequest struct {
	Quantity        int    `json:"quantity"`
	SpecialRequests string `json:"specialRequests"`
}

type OrderDTO struct {
	OrderID     uint   `json:"orderId"`
	TableNumber int    `json:"tableNumber"`
	Status      string `json:"status"`
	Timestamp   int64  `json:"timestamp"`
}

type LineItemDTO struct {
	OrderItemID     uint   `json:"orderItemId"`
	OrderID         uint   `json:"orderId"`
	MenuItemID      string `json:"menuItemId"`
	ItemName        string `json:"itemName"`
	ItemPrice       string `json:"itemPrice"`
	Quantity        int    `json:"quantity"`
	SpecialRequests string `json:"specialRequests"`
}

func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	id, err := c.manager.CreateOrder(r.Context(), req.TableNumber)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]uint{"orderId": id})
}

func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := c.pathID(w, r, "orderId")
	if !ok {
		return
	}

	order, err := c.manager.GetOrder(r.Context(), orderID)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderDTO(*order))
}

// GetActiveOrder returns the ACTIVE order with the greatest creation
// timestamp, 404 when none exists.
func (c *OrderController) GetActiveOrder(w http.ResponseWriter, r *http.Request) {
	order, err := c.manager.GetActiveOrder(r.Context())
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}
	if order == nil {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": "no active order",
		})
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderDTO(*order))
}

func (c *OrderController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.pathID(w, r, "orderId")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	order, err := c.manager.GetOrder(r.Context(), orderID)
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	updated := *order
	updated.Status = req.Status
	if err := c.manager.UpdateOrder(r.Context(), updated); err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusOK, toOrderDTO(updated))
}

func (c *OrderController) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	orderID, ok := c.pathID(w, r, "orderId")
	if !ok {
		return
	}

	if err := c.manager.DeleteOrder(r.Context(), orderID); err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) AddLineItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	orderID, ok := c.pathID(w, r, "orderId")
	if !ok {
		return
	}

	var req AddLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	id, err := c.manager.AddLineItem(r.Context(), domain.OrderLineItem{
		OrderID:         orderID,
		MenuItemID:      req.MenuItemID,
		ItemName:        req.ItemName,
		ItemPrice:       req.ItemPrice,
		Quantity:        req.Quantity,
		SpecialRequests: req.SpecialRequests,
	})
	if err != nil {
		c.handleError(w, err, logger)
		return
	}

	c.writeJSON(w, http.StatusCreated, map[string]uint{"orderItemId": id})
}

func (c *OrderController) GetLineItems(w http.ResponseWriter, r *http.Request) {
	orderID, ok := c.pathID(w, r, "orderId")
	if !ok {
		return
	}

	items, err := c.manager.GetLineItems(r.Context(), orderID)
	if err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	dtos := make([]LineItemDTO, 0, len(items))
	for _, item := range items {
		dtos = append(dtos, toLineItemDTO(item))
	}
	c.writeJSON(w, http.StatusOK, dtos)
}

func (c *OrderController) UpdateLineItem(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.New().String()
	logger := c.logger.With(zap.String("traceId", traceID))

	itemID, ok := c.pathID(w, r, "orderItemId")
	if !ok {
		return
	}

	var req UpdateLineItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		c.writeValidationError(w, "invalid JSON body", apperrors.ValidationDetail{
			Field:   "body",
			Message: "request body must be valid JSON",
		})
		return
	}

	if err := c.manager.UpdateLineItem(r.Context(), itemID, req.Quantity, req.SpecialRequests); err != nil {
		c.handleError(w, err, logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) RemoveLineItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := c.pathID(w, r, "orderItemId")
	if !ok {
		return
	}

	if err := c.manager.RemoveLineItem(r.Context(), itemID); err != nil {
		c.handleError(w, err, c.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *OrderController) pathID(w http.ResponseWriter, r *http.Request, param string) (uint, bool) {
	raw := chi.URLParam(r, param)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		c.writeValidationError(w, "invalid "+param, apperrors.ValidationDetail{
			Field:   param,
			Message: param + " must be a positive integer",
		})
		return 0, false
	}
	return uint(id), true
}

func (c *OrderController) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if ve, ok := apperrors.IsValidationError(err); ok {
		c.writeValidationError(w, ve.Message, ve.Details...)
		return
	}
	if _, ok := apperrors.IsNotFoundError(err); ok {
		c.writeJSON(w, http.StatusNotFound, map[string]string{
			"error":   "NOT_FOUND",
			"message": err.Error(),
		})
		return
	}

	logger.Error("order operation failed", zap.Error(err))
	c.writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error":   "INTERNAL_ERROR",
		"message": "an unexpected error occurred",
	})
}

type validationErrorResponse struct {
	Error   string                       `json:"error"`
	Message string                       `json:"message"`
	Details []apperrors.ValidationDetail `json:"details"`
}

func (c *OrderController) writeValidationError(w http.ResponseWriter, message string, details ...apperrors.ValidationDetail) {
	c.writeJSON(w, http.StatusBadRequest, validationErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Details: details,
	})
}

func (c *OrderController) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		c.logger.Error("failed to encode response", zap.Error(err))
	}
}

func toOrderDTO(o domain.Order) OrderDTO {
	return OrderDTO{
		OrderID:     o.ID,
		TableNumber: o.TableNumber,
		Status:      o.Status,
		Timestamp:   o.CreatedAt.UnixMilli(),
	}
}

func toLineItemDTO(i domain.OrderLineItem) LineItemDTO {
	return LineItemDTO{
		OrderItemID:     i.ID,
		OrderID:         i.OrderID,
		MenuItemID:      i.MenuItemID,
		ItemName:        i.ItemName,
		ItemPrice:       i.ItemPrice,
		Quantity:        i.Quantity,
		SpecialRequests: i.SpecialRequests,
	}
}
