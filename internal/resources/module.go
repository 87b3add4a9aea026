package resources

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Module is a REST resource mounted under /api behind the bearer-token gate.
type Module interface {
	// ID returns the unique module identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the module's routes on the given Fiber group.
	// The group is already prefixed with /api and has JWT middleware applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB)
}
