package order

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crmsuite/crm-service/internal/pagination"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type Handler struct {
	service ServiceInterface
}

func NewHandler(service ServiceInterface) *Handler {
	return &Handler{service: service}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Order   *OrderResponse `json:"order,omitempty"`
}

func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	order, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		switch err {
		case ErrMissingCustomer, ErrNoProducts:
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		case ErrCustomerNotFound, ErrProductNotFound:
			respondError(w, http.StatusNotFound, "not_found", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Order created successfully",
		Order:   order,
	})
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	filter := parseFilter(r)

	resp, err := h.service.ListOrders(r.Context(), filter, params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Order ID is required")
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		if err == ErrOrderNotFound {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Order retrieved successfully",
		Order:   order,
	})
}

// parseFilter extracts order list filters from query parameters.
// Timestamps accept RFC 3339 or plain dates.
func parseFilter(r *http.Request) Filter {
	q := r.URL.Query()
	filter := Filter{
		CustomerID:   q.Get("customer_id"),
		CustomerName: q.Get("customer_name"),
		ProductID:    q.Get("product_id"),
	}
	if d, ok := parseDecimal(q.Get("min_amount")); ok {
		filter.MinAmount = &d
	}
	if d, ok := parseDecimal(q.Get("max_amount")); ok {
		filter.MaxAmount = &d
	}
	if t, ok := parseTime(q.Get("ordered_after")); ok {
		filter.OrderedAfter = &t
	}
	if t, ok := parseTime(q.Get("ordered_before")); ok {
		filter.OrderedBefore = &t
	}
	return filter
}

func parseDecimal(s string) (decimal.Decimal, bool) {
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   code,
		Message: message,
	})
}
