package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Daniru12/PcStore/internal/auth"
	"github.com/Daniru12/PcStore/internal/handlers"
	"github.com/Daniru12/PcStore/internal/metrics"
	"github.com/Daniru12/PcStore/internal/middleware"
	"github.com/Daniru12/PcStore/internal/services"
)

// App is the main application handler that sets up all routes.
type App struct {
	mux *http.ServeMux
	db  *gorm.DB
	log *zap.Logger
}

// NewApp creates the application with all routes configured.
func NewApp(db *gorm.DB, log *zap.Logger) *App {
	app := &App{
		mux: http.NewServeMux(),
		db:  db,
		log: log,
	}
	app.setupRoutes()
	return app
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handler := middleware.RequestID(
		middleware.Logger(a.log)(
			metrics.Middleware(
				auth.Middleware(a.mux))))
	handler.ServeHTTP(w, r)
}

func (a *App) setupRoutes() {
	orderSvc := services.NewOrderService(a.db, a.log)
	userSvc := services.NewUserService(a.db, a.log)
	inquirySvc := services.NewInquiryService(a.db)

	oh := handlers.NewOrderHandler(orderSvc, a.log)
	ah := handlers.NewAuthHandler(userSvc, a.log)
	ph := handlers.NewProductHandler(a.db)
	pch := handlers.NewPCHandler(a.db)
	parth := handlers.NewPartHandler(a.db)
	iqh := handlers.NewInquiryHandler(inquirySvc)
	adh := handlers.NewAdminHandler(a.db)

	// Public routes
	a.mux.HandleFunc("POST /api/auth/register", ah.Register)
	a.mux.HandleFunc("POST /api/auth/login", ah.Login)
	a.mux.Handle("GET /api/auth/user/{username}", auth.RequireAuth(http.HandlerFunc(ah.GetUser)))

	a.mux.HandleFunc("GET /api/products", ph.List)
	a.mux.HandleFunc("GET /api/products/{id}", ph.Get)
	a.mux.HandleFunc("GET /api/pcs", pch.List)
	a.mux.HandleFunc("GET /api/pcs/{id}", pch.Get)
	a.mux.HandleFunc("GET /api/parts", parth.List)
	a.mux.HandleFunc("GET /api/parts/{id}", parth.Get)

	a.mux.HandleFunc("POST /api/inquiries", iqh.Create)

	// Orders (authenticated)
	a.mux.Handle("POST /api/orders", auth.RequireAuth(http.HandlerFunc(oh.Create)))
	a.mux.Handle("GET /api/orders", auth.RequireAuth(http.HandlerFunc(oh.List)))
	a.mux.Handle("GET /api/orders/{id}", auth.RequireAuth(http.HandlerFunc(oh.Get)))
	a.mux.Handle("PUT /api/orders/{id}", auth.RequireAuth(http.HandlerFunc(oh.Update)))
	a.mux.Handle("PUT /api/orders/{id}/status", auth.RequireAuth(http.HandlerFunc(oh.UpdateStatus)))
	a.mux.Handle("PUT /api/orders/{id}/cancel", auth.RequireAuth(http.HandlerFunc(oh.Cancel)))
	a.mux.Handle("DELETE /api/orders/{id}", auth.RequireAuth(http.HandlerFunc(oh.Delete)))

	// Admin routes
	a.mux.Handle("POST /api/admin/products", auth.RequireAdmin(http.HandlerFunc(ph.Create)))
	a.mux.Handle("PUT /api/admin/products/{id}", auth.RequireAdmin(http.HandlerFunc(ph.Update)))
	a.mux.Handle("DELETE /api/admin/products/{id}", auth.RequireAdmin(http.HandlerFunc(ph.Delete)))

	a.mux.Handle("POST /api/admin/pcs", auth.RequireAdmin(http.HandlerFunc(pch.Create)))
	a.mux.Handle("PUT /api/admin/pcs/{id}", auth.RequireAdmin(http.HandlerFunc(pch.Update)))
	a.mux.Handle("DELETE /api/admin/pcs/{id}", auth.RequireAdmin(http.HandlerFunc(pch.Delete)))

	a.mux.Handle("POST /api/admin/parts", auth.RequireAdmin(http.HandlerFunc(parth.Create)))
	a.mux.Handle("PUT /api/admin/parts/{id}", auth.RequireAdmin(http.HandlerFunc(parth.Update)))
	a.mux.Handle("DELETE /api/admin/parts/{id}", auth.RequireAdmin(http.HandlerFunc(parth.Delete)))

	a.mux.Handle("GET /api/admin/users", auth.RequireAdmin(http.HandlerFunc(adh.ListUsers)))
	a.mux.Handle("GET /api/admin/users/{id}", auth.RequireAdmin(http.HandlerFunc(adh.GetUser)))
	a.mux.Handle("PUT /api/admin/users/{id}", auth.RequireAdmin(http.HandlerFunc(adh.UpdateUser)))
	a.mux.Handle("DELETE /api/admin/users/{id}", auth.RequireAdmin(http.HandlerFunc(adh.DeleteUser)))

	a.mux.Handle("GET /api/admin/inquiries", auth.RequireAdmin(http.HandlerFunc(iqh.List)))
	a.mux.Handle("GET /api/admin/inquiries/{id}", auth.RequireAdmin(http.HandlerFunc(iqh.Get)))
	a.mux.Handle("PUT /api/admin/inquiries/{id}/status", auth.RequireAdmin(http.HandlerFunc(iqh.UpdateStatus)))

	// Operational endpoints
	a.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if sqlDB, err := a.db.DB(); err != nil || sqlDB.Ping() != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"unhealthy"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})
	a.mux.Handle("GET /metrics", promhttp.Handler())
}
