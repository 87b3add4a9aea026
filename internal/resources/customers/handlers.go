package customers

import (
	"errors"
	"log/slog"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/resources"
	"github.com/gofiber/fiber/v2"
)

// CustomerHandler serves /api/customers. Not-found maps to 204 everywhere
// except update, which answers 404; clients depend on that split.
type CustomerHandler struct {
	customerService *CustomerService
}

func NewCustomerHandler(customerService *CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.customerService.List(c.UserContext())
	if err != nil {
		return h.internalError(c, "customers.list", err)
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) GetOrders(c *fiber.Ctx) error {
	orders, err := h.customerService.Orders(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return h.internalError(c, "customers.orders", err)
	}
	return c.JSON(orders)
}

func (h *CustomerHandler) SearchByCompany(c *fiber.Ctx) error {
	customers, err := h.customerService.SearchByCompany(c.UserContext(), c.Params("search"))
	if err != nil {
		return h.internalError(c, "customers.search", err)
	}
	if len(customers) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var customer Customer
	if err := c.BodyParser(&customer); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.customerService.Create(c.UserContext(), &customer); err != nil {
		switch {
		case errors.Is(err, ErrCompanyExists):
			return badRequest(c, "Customer already exists: "+customer.CompanyName)
		case errors.Is(err, resources.ErrValidation):
			return badRequest(c, resources.Detail(err))
		default:
			h.logFailure(c, "customers.create", err)
			return badRequest(c, "An error occurred: "+resources.Detail(err))
		}
	}

	slog.Info("customer created", "customer_id", customer.CustomerID,
		"username", middleware.CurrentUsername(c), "trace_id", middleware.RequestID(c))
	return c.JSON(dto.MessageResponse{Message: "Added new customer " + customer.CompanyName})
}

func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var customer Customer
	if err := c.BodyParser(&customer); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := c.Params("id")
	if err := h.customerService.Replace(c.UserContext(), id, &customer); err != nil {
		switch {
		case errors.Is(err, ErrCustomerNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Customer not found",
			})
		case errors.Is(err, ErrIDMismatch):
			return badRequest(c, err.Error())
		case errors.Is(err, ErrCompanyExists):
			return badRequest(c, "Customer already exists: "+customer.CompanyName)
		case errors.Is(err, resources.ErrValidation):
			return badRequest(c, resources.Detail(err))
		default:
			return h.internalError(c, "customers.update", err)
		}
	}

	slog.Info("customer updated", "customer_id", id,
		"username", middleware.CurrentUsername(c), "trace_id", middleware.RequestID(c))
	return c.JSON(dto.MessageResponse{Message: "Updated: " + customer.CompanyName})
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	customer, err := h.customerService.Delete(c.UserContext(), c.Params("id"))
	if err != nil {
		if errors.Is(err, ErrCustomerNotFound) {
			return c.SendStatus(fiber.StatusNoContent)
		}
		h.logFailure(c, "customers.delete", err)
		return badRequest(c, "Failed to delete customer: "+resources.Detail(err))
	}

	slog.Info("customer deleted", "customer_id", customer.CustomerID,
		"username", middleware.CurrentUsername(c), "trace_id", middleware.RequestID(c))
	return c.JSON(dto.MessageResponse{Message: "Deleted customer: " + customer.CompanyName})
}

func (h *CustomerHandler) internalError(c *fiber.Ctx, action string, err error) error {
	h.logFailure(c, action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func (h *CustomerHandler) logFailure(c *fiber.Ctx, action string, err error) {
	slog.Error("customer request failed",
		"action", action,
		"error", err.Error(),
		"username", middleware.CurrentUsername(c),
		"trace_id", middleware.RequestID(c),
	)
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: message,
	})
}
