package order

import (
	"database/sql"

	"go.uber.org/zap"

	"mesero/internal/order/controller"
	"mesero/internal/order/repository"
	"mesero/internal/order/service"
	"mesero/internal/watch"
)

type Module struct {
	Service          *service.OrderService
	Controller       *controller.OrderController
	StreamController *controller.StreamController
}

func NewModule(db *sql.DB, hub *watch.Hub, logger *zap.Logger) *Module {
	orderRepo := repository.NewSQLOrderRepository(db, hub)
	lineItemRepo := repository.NewSQLLineItemRepository(db, hub)

	orderService := service.NewOrderService(orderRepo, lineItemRepo, logger)

	return &Module{
		Service:          orderService,
		Controller:       controller.NewOrderController(orderService, logger),
		StreamController: controller.NewStreamController(orderService, logger),
	}
}
