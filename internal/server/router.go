package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"mesero/internal/menu"
	"mesero/internal/order"
)

func NewRouter(menuModule *menu.Module, orderModule *order.Module, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/menu", func(r chi.Router) {
			r.Get("/", menuModule.Controller.HandleGetMenu)
			r.Get("/snapshot", menuModule.Controller.HandleGetSnapshot)
			r.Post("/refresh", menuModule.Controller.HandleRefreshCatalog)
			r.Get("/{menuItemId}", menuModule.Controller.HandleGetMenuEntry)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderModule.Controller.CreateOrder)
			r.Get("/active", orderModule.Controller.GetActiveOrder)
			r.Route("/{orderId}", func(r chi.Router) {
				r.Get("/", orderModule.Controller.GetOrder)
				r.Delete("/", orderModule.Controller.DeleteOrder)
				r.Patch("/status", orderModule.Controller.UpdateOrderStatus)
				r.Get("/items", orderModule.Controller.GetLineItems)
				r.Post("/items", orderModule.Controller.AddLineItem)
			})
		})

		r.Route("/items/{orderItemId}", func(r chi.Router) {
			r.Patch("/", orderModule.Controller.UpdateLineItem)
			r.Delete("/", orderModule.Controller.RemoveLineItem)
		})
	})

	r.Get("/ws/orders/active", orderModule.StreamController.StreamActiveOrder)

	return r
}
