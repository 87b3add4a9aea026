package customers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Module struct{}

func New() *Module {
	return &Module{}
}

func (m *Module) ID() string { return "customers" }

func (m *Module) Models() []interface{} {
	return []interface{}{
		&Customer{},
		&Order{},
	}
}

func (m *Module) RegisterRoutes(router fiber.Router, db *gorm.DB) {
	customerHandler := NewCustomerHandler(NewCustomerService(db))

	router.Get("/customers", customerHandler.List)
	router.Get("/customers/company/:search", customerHandler.SearchByCompany)
	router.Get("/customers/:id", customerHandler.GetOrders)
	router.Post("/customers", customerHandler.Create)
	router.Put("/customers/:id", customerHandler.Update)
	router.Delete("/customers/:id", customerHandler.Delete)
}
