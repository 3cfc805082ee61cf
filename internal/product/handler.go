package product

import (
	"encoding/json"
	"net/http"
	"strconv"

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
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Product *ProductResponse `json:"product,omitempty"`
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	prod, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		switch err {
		case ErrMissingName, ErrInvalidPrice, ErrInvalidStock:
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Product created successfully",
		Product: prod,
	})
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	filter := parseFilter(r)

	resp, err := h.service.ListProducts(r.Context(), filter, params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Product ID is required")
		return
	}

	prod, err := h.service.GetProduct(r.Context(), id)
	if err != nil {
		if err == ErrProductNotFound {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Product retrieved successfully",
		Product: prod,
	})
}

// parseFilter extracts product list filters from query parameters
func parseFilter(r *http.Request) Filter {
	q := r.URL.Query()
	filter := Filter{
		Name:     q.Get("name"),
		LowStock: q.Get("low_stock") == "true",
	}
	if d, ok := parseDecimal(q.Get("min_price")); ok {
		filter.MinPrice = &d
	}
	if d, ok := parseDecimal(q.Get("max_price")); ok {
		filter.MaxPrice = &d
	}
	if n, ok := parseInt(q.Get("min_stock")); ok {
		filter.MinStock = &n
	}
	if n, ok := parseInt(q.Get("max_stock")); ok {
		filter.MaxStock = &n
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

func parseInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   code,
		Message: message,
	})
}
