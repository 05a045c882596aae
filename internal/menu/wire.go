package menu

import (
	"database/sql"

	"go.uber.org/zap"

	"mesero/internal/config"
	"mesero/internal/menu/client"
	"mesero/internal/menu/repository"
	"mesero/internal/menu/service"
)

type Module struct {
	Service    *service.MenuService
	Controller *Controller
}

func NewModule(db *sql.DB, cfg *config.Config, logger *zap.Logger) *Module {
	catalogClient := client.NewCatalogClient(cfg.Catalog)
	catalogRepo := repository.NewSQLCatalogRepository(db)
	menuService := service.NewMenuService(catalogClient, catalogRepo, logger)

	return &Module{
		Service:    menuService,
		Controller: NewController(menuService, logger),
	}
}
