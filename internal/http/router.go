package http

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/crmsuite/crm-service/internal/auth"
	"github.com/crmsuite/crm-service/internal/customer"
	"github.com/crmsuite/crm-service/internal/messaging"
	"github.com/crmsuite/crm-service/internal/order"
	"github.com/crmsuite/crm-service/internal/product"
	"github.com/crmsuite/crm-service/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

// SetupRouter initializes all routes for the application. verifier may be
// nil to disable authentication, publisher may be nil when no broker is
// configured, metrics may be nil to skip request metrics.
func SetupRouter(db *sql.DB, verifier *auth.Verifier, perms auth.Permissions, publisher messaging.PublisherInterface, metrics *telemetry.Metrics) *mux.Router {
	// Initialize customer components
	customerRepo := customer.NewRepository(db, publisher)
	customerService := customer.NewServiceWithMetrics(customerRepo, customerMetrics(metrics))
	customerHandler := customer.NewHandler(customerService)

	// Initialize product components
	productRepo := product.NewRepository(db)
	productService := product.NewServiceWithMetrics(productRepo, productMetrics(metrics))
	productHandler := product.NewHandler(productService)

	// Initialize order components
	orderRepo := order.NewRepository(db, publisher)
	orderService := order.NewServiceWithMetrics(orderRepo, orderMetrics(metrics))
	orderHandler := order.NewHandler(orderService)

	r := mux.NewRouter()
	r.Use(otelmux.Middleware("crm-service"))
	if metrics != nil {
		r.Use(metricsMiddleware(metrics))
	}

	// Public health endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok","service":"crm-service"}`))
	}).Methods("GET")

	authed := auth.Middleware(verifier, metricsRecorder(metrics))
	requirePerm := func(per string) func(http.Handler) http.Handler {
		return auth.RequirePermissionWithMetrics(per, perms, permissionRecorder(metrics))
	}

	// Customer routes
	r.Handle("/customers",
		authed(
			requirePerm("customer:create")(
				http.HandlerFunc(customerHandler.CreateCustomer),
			),
		),
	).Methods("POST")

	r.Handle("/customers",
		authed(
			requirePerm("customer:view")(
				http.HandlerFunc(customerHandler.ListCustomers),
			),
		),
	).Methods("GET")

	r.Handle("/customers/{id}",
		authed(
			requirePerm("customer:view")(
				http.HandlerFunc(customerHandler.GetCustomer),
			),
		),
	).Methods("GET")

	r.Handle("/customers/{id}",
		authed(
			requirePerm("customer:delete")(
				http.HandlerFunc(customerHandler.DeleteCustomer),
			),
		),
	).Methods("DELETE")

	// Product routes
	r.Handle("/products",
		authed(
			requirePerm("product:create")(
				http.HandlerFunc(productHandler.CreateProduct),
			),
		),
	).Methods("POST")

	r.Handle("/products",
		authed(
			requirePerm("product:view")(
				http.HandlerFunc(productHandler.ListProducts),
			),
		),
	).Methods("GET")

	r.Handle("/products/{id}",
		authed(
			requirePerm("product:view")(
				http.HandlerFunc(productHandler.GetProduct),
			),
		),
	).Methods("GET")

	// Order routes
	r.Handle("/orders",
		authed(
			requirePerm("order:create")(
				http.HandlerFunc(orderHandler.CreateOrder),
			),
		),
	).Methods("POST")

	r.Handle("/orders",
		authed(
			requirePerm("order:view")(
				http.HandlerFunc(orderHandler.ListOrders),
			),
		),
	).Methods("GET")

	r.Handle("/orders/{id}",
		authed(
			requirePerm("order:view")(
				http.HandlerFunc(orderHandler.GetOrder),
			),
		),
	).Methods("GET")

	return r
}

// metricsRecorder avoids handing a typed nil to the auth middleware
func metricsRecorder(metrics *telemetry.Metrics) auth.MetricsRecorder {
	if metrics == nil {
		return nil
	}
	return metrics
}

func permissionRecorder(metrics *telemetry.Metrics) auth.PermissionMetricsRecorder {
	if metrics == nil {
		return nil
	}
	return metrics
}

func customerMetrics(metrics *telemetry.Metrics) customer.MetricsRecorder {
	if metrics == nil {
		return nil
	}
	return metrics
}

func productMetrics(metrics *telemetry.Metrics) product.MetricsRecorder {
	if metrics == nil {
		return nil
	}
	return metrics
}

func orderMetrics(metrics *telemetry.Metrics) order.MetricsRecorder {
	if metrics == nil {
		return nil
	}
	return metrics
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware records request count and duration per route
func metricsMiddleware(metrics *telemetry.Metrics) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			route := r.URL.Path
			if current := mux.CurrentRoute(r); current != nil {
				if tpl, err := current.GetPathTemplate(); err == nil {
					route = tpl
				}
			}
			metrics.RecordHTTPRequest(r.Context(), r.Method, route, rec.status,
				float64(time.Since(start).Milliseconds()))
		})
	}
}
