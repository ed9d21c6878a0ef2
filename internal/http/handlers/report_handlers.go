package handlers

import (
	"net/http"
)

// GetDashboardMetricsHandler godoc
// @Summary Dashboard metrics for admin view
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.DashboardMetrics
// @Failure 502 {object} ErrorResponse
// @Router /reports/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	m, err := reportsService.Dashboard(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, m)
}

// GetProductSalesHandler godoc
// @Summary Issued value per product
// @Description Total OUT transaction value per product, largest first, for the product analysis chart
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.ProductSale
// @Failure 502 {object} ErrorResponse
// @Router /reports/product-sales [get]
func GetProductSalesHandler(w http.ResponseWriter, r *http.Request) {
	sales, err := reportsService.ProductSales(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	_ = writeJSON(w, http.StatusOK, sales)
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	_ = writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
