package customer

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/crmsuite/crm-service/internal/pagination"
	"github.com/gorilla/mux"
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
	Success  bool              `json:"success"`
	Message  string            `json:"message"`
	Customer *CustomerResponse `json:"customer,omitempty"`
}

func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON payload: "+err.Error())
		return
	}

	cust, err := h.service.CreateCustomer(r.Context(), req)
	if err != nil {
		switch err {
		case ErrMissingName, ErrMissingEmail, ErrInvalidPhone:
			respondError(w, http.StatusBadRequest, "validation_error", err.Error())
		case ErrEmailExists:
			respondError(w, http.StatusConflict, "email_exists", err.Error())
		default:
			respondError(w, http.StatusInternalServerError, "creation_failed", err.Error())
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:  true,
		Message:  "Customer created successfully",
		Customer: cust,
	})
}

func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	params := pagination.ParseParams(r)
	filter := parseFilter(r)

	resp, err := h.service.ListCustomers(r.Context(), filter, params)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Customer ID is required")
		return
	}

	cust, err := h.service.GetCustomer(r.Context(), id)
	if err != nil {
		if err == ErrCustomerNotFound {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "fetch_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success:  true,
		Message:  "Customer retrieved successfully",
		Customer: cust,
	})
}

func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		respondError(w, http.StatusBadRequest, "validation_error", "Customer ID is required")
		return
	}

	if err := h.service.DeleteCustomer(r.Context(), id); err != nil {
		if err == ErrCustomerNotFound {
			respondError(w, http.StatusNotFound, "not_found", err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, "deletion_failed", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(SuccessResponse{
		Success: true,
		Message: "Customer deleted successfully",
	})
}

// parseFilter extracts customer list filters from query parameters.
// Timestamps accept RFC 3339 or plain dates.
func parseFilter(r *http.Request) Filter {
	q := r.URL.Query()
	filter := Filter{
		Name:        q.Get("name"),
		Email:       q.Get("email"),
		PhonePrefix: q.Get("phone_prefix"),
	}
	if t, ok := parseTime(q.Get("created_after")); ok {
		filter.CreatedAfter = &t
	}
	if t, ok := parseTime(q.Get("created_before")); ok {
		filter.CreatedBefore = &t
	}
	return filter
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
