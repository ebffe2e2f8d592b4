package handlers

import (
	"context"
	"log/slog"
	"strconv"

	"productapi/internal/models"
	"productapi/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductService is the behaviour ProductHandler needs from the service layer.
type ProductService interface {
	AddProduct(ctx context.Context, product models.Product) (models.Product, error)
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	GetProductByID(ctx context.Context, id int64) (services.ProductResult, error)
	UpdateProduct(ctx context.Context, id int64, updated models.Product) (services.ProductResult, error)
	DeleteProduct(ctx context.Context, id int64) error
}

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service   ProductService
	validator *ProductValidator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service ProductService) *ProductHandler {
	return &ProductHandler{
		service:   service,
		validator: NewProductValidator(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Post("/", h.HandleAddProduct)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleAddProduct creates a new product.
func (h *ProductHandler) HandleAddProduct(c *fiber.Ctx) error {
	product, ok, err := h.parseProduct(c)
	if !ok {
		return err
	}

	created, err := h.service.AddProduct(c.UserContext(), product)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "error adding product", slog.Any("error", err))
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		slog.ErrorContext(c.UserContext(), "error getting all products", slog.Any("error", err))
		return err
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, ok, err := parseID(c)
	if !ok {
		return err
	}

	result, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "error getting product", slog.Int64("id", id), slog.Any("error", err))
		return err
	}
	product, found := result.Get()
	if !found {
		return c.Status(fiber.StatusNotFound).Send(nil)
	}
	return c.JSON(product)
}

// HandleUpdateProduct replaces an existing product. The ID in the body, if any,
// is ignored in favour of the path ID.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, ok, err := parseID(c)
	if !ok {
		return err
	}
	product, ok, err := h.parseProduct(c)
	if !ok {
		return err
	}

	result, err := h.service.UpdateProduct(c.UserContext(), id, product)
	if err != nil {
		slog.ErrorContext(c.UserContext(), "error updating product", slog.Int64("id", id), slog.Any("error", err))
		return err
	}
	updated, found := result.Get()
	if !found {
		return c.Status(fiber.StatusNotFound).Send(nil)
	}
	return c.JSON(updated)
}

// HandleDeleteProduct deletes a product by its ID. It answers 204 whether or
// not the product existed.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, ok, err := parseID(c)
	if !ok {
		return err
	}

	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		slog.ErrorContext(c.UserContext(), "error deleting product", slog.Int64("id", id), slog.Any("error", err))
		return err
	}
	return c.Status(fiber.StatusNoContent).Send(nil)
}

// parseProduct decodes and validates the request body. When ok is false the
// 400 response has already been written and err is what the handler returns.
func (h *ProductHandler) parseProduct(c *fiber.Ctx) (product models.Product, ok bool, err error) {
	if err := c.BodyParser(&product); err != nil {
		return product, false, badRequest(c, "body: "+err.Error())
	}
	if violations := h.validator.Validate(&product); len(violations) > 0 {
		return product, false, badRequest(c, violations...)
	}
	return product, true, nil
}

func parseID(c *fiber.Ctx) (int64, bool, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false, badRequest(c, "id: must be an integer")
	}
	return id, true, nil
}

func badRequest(c *fiber.Ctx, messages ...string) error {
	return c.Status(fiber.StatusBadRequest).JSON(messages)
}
