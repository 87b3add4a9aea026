package products

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return "products" }

func (m *Module) Models() []interface{} {
	return []interface{}{
		&Category{},
		&Product{},
	}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB) {
	productHandler := NewProductHandler(NewProductService(db))

	router.Get("/products", productHandler.List)
	router.Get("/products/:id", productHandler.Get)
	router.Get("/catname/:catname", productHandler.ByCategoryName)
	router.Post("/products", productHandler.Create)
	router.Put("/products/:id", productHandler.Update)
	router.Delete("/products/:id", productHandler.Delete)
}
