package order

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"bakeshop/internal/logger"
	"bakeshop/internal/validation"
	"bakeshop/internal/web"
)

// Handler handles the order HTTP routes.
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler.
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

type submitFunc func(ctx context.Context, doc validation.Document, requestID string) (interface{}, error)

// HandlePayOnline handles POST /api/order/handlePayOnline.
func (h *Handler) HandlePayOnline(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, func(ctx context.Context, doc validation.Document, requestID string) (interface{}, error) {
		return h.service.SubmitOnline(ctx, doc, requestID)
	})
}

// HandleCashOrder handles POST /api/order/handleCashOrder.
func (h *Handler) HandleCashOrder(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, func(ctx context.Context, doc validation.Document, requestID string) (interface{}, error) {
		return h.service.SubmitCash(ctx, doc, requestID)
	})
}

// AddCustomOrder handles POST /api/order/addCustomOrder.
func (h *Handler) AddCustomOrder(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, func(ctx context.Context, doc validation.Document, requestID string) (interface{}, error) {
		return h.service.SubmitCustom(ctx, doc, requestID)
	})
}

// AddCateringOrder handles POST /api/catering/addCateringOrder.
func (h *Handler) AddCateringOrder(w http.ResponseWriter, r *http.Request) {
	h.submit(w, r, func(ctx context.Context, doc validation.Document, requestID string) (interface{}, error) {
		return h.service.SubmitCatering(ctx, doc, requestID)
	})
}

// GetOrders handles GET /api/manage/getOrders.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	listing, err := h.service.AllOrders(ctx)
	if err != nil {
		h.logger.Error("orders_listing_failed", "Failed to list orders", "", err, nil)
		web.StoreError(w)
		return
	}
	web.JSON(w, http.StatusOK, listing)
}

// DeleteOrder handles DELETE /api/manage/del/{orderType}/{id}.
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	collection := r.PathValue("orderType")
	id := r.PathValue("id")

	listing, err := h.service.Delete(ctx, collection, id)
	if err != nil {
		if errors.Is(err, ErrUnknownCollection) {
			web.BadRequest(w, "Unknown order type")
			return
		}
		h.logger.Error("order_delete_failed", "Failed to delete order", "", err, map[string]interface{}{
			"collection": collection,
			"order_id":   id,
		})
		web.StoreError(w)
		return
	}
	web.JSON(w, http.StatusOK, listing)
}

// submit decodes the body and runs one of the submission pipelines, mapping
// the error taxonomy onto the response contract: 422 for field errors, 200
// with success=false for payment failures, generic 500 for store faults.
func (h *Handler) submit(w http.ResponseWriter, r *http.Request, fn submitFunc) {
	requestID := logger.GenerateRequestID()

	doc := validation.Document{}
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		h.logger.Error("submission_failed", "Failed to parse request body", requestID, err, nil)
		web.BadRequest(w, "Invalid JSON format")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	result, err := fn(ctx, doc, requestID)
	if err != nil {
		var invalid *ValidationFailure
		var declined *PaymentFailure
		switch {
		case errors.As(err, &invalid):
			web.FieldErrors(w, invalid.Errors)
		case errors.As(err, &declined):
			// intentionally a 200: the storefront reads success=false
			web.JSON(w, http.StatusOK, map[string]interface{}{
				"message": declined.Message,
				"success": false,
			})
		default:
			h.logger.Error("submission_failed", "Failed to persist order", requestID, err, nil)
			web.StoreError(w)
		}
		return
	}

	web.JSON(w, http.StatusOK, result)
}
