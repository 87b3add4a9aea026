package products

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/dto"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/northwind-api/internal/resources"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	productService *ProductService
}

func NewProductHandler(productService *ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	views, err := h.productService.ListWithCategory(c.UserContext())
	if err != nil {
		h.logFailure(c, "products.list", err)
		return badRequest(c, resources.Detail(err))
	}
	if len(views) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(views)
}

func (h *ProductHandler) ByCategoryName(c *fiber.Ctx) error {
	views, err := h.productService.ByCategoryPrefix(c.UserContext(), c.Params("catname"))
	if err != nil {
		return h.internalError(c, "products.by_category", err)
	}
	if len(views) == 0 {
		return c.SendStatus(fiber.StatusNoContent)
	}
	return c.JSON(views)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	product, err := h.productService.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return notFound(c)
		}
		return h.internalError(c, "products.get", err)
	}
	return c.JSON(product)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var product Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.productService.Create(c.UserContext(), &product); err != nil {
		if !errors.Is(err, resources.ErrValidation) {
			h.logFailure(c, "products.create", err)
		}
		return badRequest(c, resources.Detail(err))
	}

	slog.Info("product created", "product_id", product.ProductID,
		"username", middleware.CurrentUsername(c), "trace_id", middleware.RequestID(c))
	c.Location("/api/products/" + strconv.Itoa(product.ProductID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var product Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.productService.Replace(c.UserContext(), id, &product); err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			return notFound(c)
		case errors.Is(err, ErrIDMismatch):
			return badRequest(c, err.Error())
		case errors.Is(err, resources.ErrValidation):
			return badRequest(c, resources.Detail(err))
		default:
			return h.internalError(c, "products.update", err)
		}
	}

	slog.Info("product updated", "product_id", id,
		"username", middleware.CurrentUsername(c), "trace_id", middleware.RequestID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	if err := h.productService.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, ErrProductNotFound) {
			return notFound(c)
		}
		return h.internalError(c, "products.delete", err)
	}

	slog.Info("product deleted", "product_id", id,
		"username", middleware.CurrentUsername(c), "trace_id", middleware.RequestID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) internalError(c *fiber.Ctx, action string, err error) error {
	h.logFailure(c, action, err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func (h *ProductHandler) logFailure(c *fiber.Ctx, action string, err error) {
	slog.Error("product request failed",
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

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
		Error: true, Message: "Product not found",
	})
}
