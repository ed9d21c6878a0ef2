package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	_ "github.com/rogerio-castellano/inventory-dashboard/docs"
	"github.com/rogerio-castellano/inventory-dashboard/internal/auth"
	"github.com/rogerio-castellano/inventory-dashboard/internal/http/handlers"
	mw "github.com/rogerio-castellano/inventory-dashboard/internal/http/middleware"
	rl "github.com/rogerio-castellano/inventory-dashboard/internal/http/rate_limiter"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

func NewRouter(log *logrus.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.RequestLogger(log))
	r.Use(chimw.Recoverer)
	r.Use(rl.Middleware)

	r.Get("/healthz", handlers.HealthHandler)
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware)

		r.Get("/menu", handlers.MenuHandler)

		r.With(mw.RequireCapability(auth.CapProductView)).Get("/products", handlers.GetProductsHandler)
		r.With(mw.RequireCapability(auth.CapProductCreate)).Post("/products", handlers.CreateProductHandler)
		r.With(mw.RequireCapability(auth.CapProductView)).Get("/products/{id}", handlers.GetProductByIDHandler)
		r.With(mw.RequireCapability(auth.CapProductPriceEdit)).Put("/products/{id}/prices", handlers.UpdateProductPricesHandler)
		r.With(mw.RequireCapability(auth.CapProductDelete)).Delete("/products/{id}", handlers.DeleteProductHandler)

		// Purchase or issue capability is checked per direction by the handlers.
		r.Get("/transactions/next-id", handlers.NextTransactionIDHandler)
		r.Post("/products/{id}/transactions/{direction}/preview", handlers.PreviewTransactionHandler)
		r.Post("/products/{id}/transactions/{direction}", handlers.SubmitTransactionHandler)

		r.With(mw.RequireCapability(auth.CapTransactionsView)).Get("/transactions", handlers.GetTransactionsHandler)
		r.With(mw.RequireCapability(auth.CapProductAnalysis)).Get("/reports/dashboard", handlers.GetDashboardMetricsHandler)
		r.With(mw.RequireCapability(auth.CapProductAnalysis)).Get("/reports/product-sales", handlers.GetProductSalesHandler)
	})

	return r
}
