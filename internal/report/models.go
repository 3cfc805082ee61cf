package report

import "github.com/shopspring/decimal"

// Totals is a point-in-time summary of the whole CRM dataset
type Totals struct {
	Customers    int             `json:"customers"`
	Orders       int             `json:"orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}
