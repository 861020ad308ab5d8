package handlers

import (
	"tiendajson/internal/config"
	"tiendajson/internal/realtime"
	"tiendajson/internal/repos"
	"tiendajson/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	Cfg config.Config

	PageHandler      *PageHandler
	CategoryHandler  *CategoryHandler
	ProductHandler   *ProductHandler
	InventoryHandler *InventoryHandler
	SearchHandler    *SearchHandler
	CartHandler      *CartHandler
	EventsHandler    *EventsHandler
}

func NewDeps(cfg config.Config, db *sqlx.DB, hub *realtime.Hub) *Deps {
	prodRepo := repos.NewProductRepo(cfg.ProductsFile)
	cartRepo := repos.NewCartRepo(cfg.CartsFile)
	eventRepo := repos.NewEventRepo(db)

	notify := services.NewNotifier(eventRepo, hub)
	catalogSvc := services.NewCatalogService(prodRepo, notify)
	cartSvc := services.NewCartService(cartRepo, notify)
	invSvc := services.NewInventoryService(prodRepo)

	return &Deps{
		Cfg:              cfg,
		PageHandler:      &PageHandler{Catalog: catalogSvc},
		CategoryHandler:  &CategoryHandler{Catalog: catalogSvc},
		ProductHandler:   &ProductHandler{Catalog: catalogSvc},
		InventoryHandler: &InventoryHandler{Inv: invSvc},
		SearchHandler:    &SearchHandler{Catalog: catalogSvc},
		CartHandler:      &CartHandler{Cart: cartSvc},
		EventsHandler:    &EventsHandler{Hub: hub, Journal: eventRepo},
	}
}
