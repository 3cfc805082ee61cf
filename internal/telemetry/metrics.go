package telemetry

import (
	"context"
	"log"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all custom metrics for the service
type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal metric.Int64Counter
	HTTPDurationMs    metric.Float64Histogram

	// Business metrics
	CustomerTotal     metric.Int64Counter
	OrderTotal        metric.Int64Counter
	ProductTotal      metric.Int64Counter
	CustomersDeleted  metric.Int64Counter
	ProductsRestocked metric.Int64Counter

	// Auth metrics
	AuthFailuresTotal       metric.Int64Counter
	PermissionCheckDuration metric.Float64Histogram
}

// InitMetrics initializes all custom metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("github.com/crmsuite/crm-service")

	httpRequestsTotal, err := meter.Int64Counter(
		"http_server_requests_total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	httpDurationMs, err := meter.Float64Histogram(
		"http_server_duration_milliseconds",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	customerTotal, err := meter.Int64Counter(
		"customer_total",
		metric.WithDescription("Total number of customer operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	orderTotal, err := meter.Int64Counter(
		"order_total",
		metric.WithDescription("Total number of order operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	productTotal, err := meter.Int64Counter(
		"product_total",
		metric.WithDescription("Total number of product operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, err
	}

	customersDeleted, err := meter.Int64Counter(
		"inactive_customers_deleted_total",
		metric.WithDescription("Total number of inactive customers deleted by the cleanup job"),
		metric.WithUnit("{customer}"),
	)
	if err != nil {
		return nil, err
	}

	productsRestocked, err := meter.Int64Counter(
		"low_stock_products_restocked_total",
		metric.WithDescription("Total number of products restocked by the low-stock job"),
		metric.WithUnit("{product}"),
	)
	if err != nil {
		return nil, err
	}

	authFailuresTotal, err := meter.Int64Counter(
		"auth_failures_total",
		metric.WithDescription("Total number of authentication failures"),
		metric.WithUnit("{failure}"),
	)
	if err != nil {
		return nil, err
	}

	// Permission check duration histogram
	permissionCheckDuration, err := meter.Float64Histogram(
		"permission_check_duration_ms",
		metric.WithDescription("Permission check duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	log.Println("✓ Custom metrics initialized")

	return &Metrics{
		HTTPRequestsTotal:       httpRequestsTotal,
		HTTPDurationMs:          httpDurationMs,
		CustomerTotal:           customerTotal,
		OrderTotal:              orderTotal,
		ProductTotal:            productTotal,
		CustomersDeleted:        customersDeleted,
		ProductsRestocked:       productsRestocked,
		AuthFailuresTotal:       authFailuresTotal,
		PermissionCheckDuration: permissionCheckDuration,
	}, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, route string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http_method", method),
		attribute.String("http_route", route),
		attribute.Int("http_status_code", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPDurationMs.Record(ctx, durationMs, metric.WithAttributes(attrs...))
}

// RecordCustomerOperation records a customer operation metric
func (m *Metrics) RecordCustomerOperation(ctx context.Context, operation string) {
	m.CustomerTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordOrderOperation records an order operation metric
func (m *Metrics) RecordOrderOperation(ctx context.Context, operation string) {
	m.OrderTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordProductOperation records a product operation metric
func (m *Metrics) RecordProductOperation(ctx context.Context, operation string) {
	m.ProductTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
	))
}

// RecordCustomersDeleted records how many customers a cleanup run removed
func (m *Metrics) RecordCustomersDeleted(ctx context.Context, count int) {
	m.CustomersDeleted.Add(ctx, int64(count))
}

// RecordProductsRestocked records how many products a restock run updated
func (m *Metrics) RecordProductsRestocked(ctx context.Context, count int) {
	m.ProductsRestocked.Add(ctx, int64(count))
}

// RecordPermissionCheck records a permission check duration metric
func (m *Metrics) RecordPermissionCheck(ctx context.Context, permission string, durationMs float64, allowed bool) {
	m.PermissionCheckDuration.Record(ctx, durationMs, metric.WithAttributes(
		attribute.String("permission", permission),
		attribute.Bool("allowed", allowed),
	))
}

// RecordAuthFailure records an authentication failure metric
func (m *Metrics) RecordAuthFailure(ctx context.Context, reason string) {
	m.AuthFailuresTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("reason", reason),
	))
}
