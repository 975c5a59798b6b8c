package handler

import (
	"github.com/RochKDev/warranty-manager/internal/httpx"
	"github.com/RochKDev/warranty-manager/internal/purchase/dto"
	"github.com/RochKDev/warranty-manager/internal/purchase/service"
	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	products *service.ProductService
}

func NewProductHandler(products *service.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	var input dto.ProductInput
	if err := httpx.Bind(c, &input); err != nil {
		return err
	}

	product, err := h.products.Create(c.UserContext(), caller, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewProductOutput(product))
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	page, err := dto.ParsePageRequest(c.Query("page"), c.Query("size"), c.Query("sort"), dto.ProductSortColumns)
	if err != nil {
		return err
	}

	result, err := h.products.List(c.UserContext(), caller, page)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewPageOutput(result, dto.NewProductOutput))
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.products.GetOne(c.UserContext(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewProductOutput(product))
}

func (h *ProductHandler) Update(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}

	var input dto.ProductInput
	if err := httpx.Bind(c, &input); err != nil {
		return err
	}

	product, err := h.products.Update(c.UserContext(), caller, id, input)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewProductOutput(product))
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.products.Delete(c.UserContext(), caller, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
