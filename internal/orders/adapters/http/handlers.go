package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dinhthuw/back1/internal/auth"
	"github.com/dinhthuw/back1/internal/orders/app"
	"github.com/dinhthuw/back1/internal/orders/domain"
	"github.com/dinhthuw/back1/internal/orders/ports"
	"github.com/dinhthuw/back1/internal/stats"
)

// Handler exposes HTTP endpoints for order operations and admin statistics.
type Handler struct {
	service *app.Service
	stats   *stats.Aggregator
	logger  *slog.Logger
}

// NewHandler constructs a Handler.
func NewHandler(service *app.Service, aggregator *stats.Aggregator, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		stats:   aggregator,
		logger:  logger,
	}
}

// Register binds the handlers and their role requirements to the router.
// Every route under /v1 requires an authenticated principal.
func (h *Handler) Register(r chi.Router, resolver auth.Resolver) {
	r.Route("/v1", func(r chi.Router) {
		r.Use(Authenticate(resolver))

		r.Route("/orders", func(r chi.Router) {
			r.With(Require(auth.OpCreateOrder)).Post("/", h.createOrder)
			r.With(Require(auth.OpListAllOrders)).Get("/", h.listOrders)
			r.With(Require(auth.OpGetOrdersByEmail)).Get("/email/{email}", h.listOrdersByEmail)
			r.With(Require(auth.OpGetOrder)).Get("/{id}", h.getOrder)
			r.With(Require(auth.OpUpdateOrderStatus)).Put("/{id}/status", h.updateOrderStatus)
			r.With(Require(auth.OpUpdatePaymentStatus)).Put("/{id}/payment", h.updatePayment)
			r.With(Require(auth.OpDeleteOrder)).Delete("/{id}", h.deleteOrder)
		})

		r.With(Require(auth.OpAdminStats)).Get("/admin/stats", h.adminStats)
	})
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	principal, ok := PrincipalFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var payload app.CreateOrderInput
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.CreateOrder(r.Context(), principal.ID, payload)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"order": order})
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filter := ports.ListFilter{}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := domain.OrderStatus(statusParam)
		if !status.Valid() {
			writeError(w, http.StatusBadRequest, "unknown status filter")
			return
		}
		filter.Status = &status
	}

	if pageParam := r.URL.Query().Get("page"); pageParam != "" {
		if page, err := strconv.Atoi(pageParam); err == nil {
			filter.Page = page
		}
	}

	if pageSizeParam := r.URL.Query().Get("page_size"); pageSizeParam != "" {
		if pageSize, err := strconv.Atoi(pageSizeParam); err == nil {
			filter.PageSize = pageSize
		}
	}

	orders, err := h.service.ListOrders(r.Context(), filter)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

func (h *Handler) listOrdersByEmail(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrdersByEmail(r.Context(), chi.URLParam(r, "email"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"orders": orders})
}

type updateStatusPayload struct {
	Status domain.OrderStatus `json:"status"`
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var payload updateStatusPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdateOrderStatus(r.Context(), chi.URLParam(r, "id"), payload.Status)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

type updatePaymentPayload struct {
	PaymentStatus  domain.PaymentStatus   `json:"payment_status"`
	PaymentDetails *domain.PaymentDetails `json:"payment_details"`
}

func (h *Handler) updatePayment(w http.ResponseWriter, r *http.Request) {
	var payload updatePaymentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	order, err := h.service.UpdatePayment(r.Context(), chi.URLParam(r, "id"), payload.PaymentStatus, payload.PaymentDetails)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"order": order})
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "order deleted successfully"})
}

func (h *Handler) adminStats(w http.ResponseWriter, r *http.Request) {
	report, err := h.stats.Build(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// respondError maps application errors to HTTP statuses. Internal failures
// are logged with their cause and surfaced as an opaque 500.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	var validationErr *domain.ValidationError
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.Is(err, ports.ErrNotFound):
		writeError(w, http.StatusNotFound, "order not found")
	default:
		h.logger.ErrorContext(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"error": message})
}
