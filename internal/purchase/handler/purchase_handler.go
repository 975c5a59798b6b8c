package handler

import (
	"github.com/RochKDev/warranty-manager/internal/httpx"
	"github.com/RochKDev/warranty-manager/internal/purchase/dto"
	"github.com/RochKDev/warranty-manager/internal/purchase/service"
	"github.com/RochKDev/warranty-manager/internal/validation"
	"github.com/gofiber/fiber/v2"
)

type PurchaseHandler struct {
	purchases *service.PurchaseService
}

func NewPurchaseHandler(purchases *service.PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	var input dto.PurchaseInput
	if err := httpx.Bind(c, &input); err != nil {
		return err
	}

	record, err := h.purchases.Create(c.UserContext(), caller, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(dto.NewPurchaseOutput(record))
}

func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	page, err := dto.ParsePageRequest(c.Query("page"), c.Query("size"), c.Query("sort"), dto.PurchaseSortColumns)
	if err != nil {
		return err
	}

	result, err := h.purchases.List(c.UserContext(), caller, page)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewPageOutput(result, dto.NewPurchaseOutput))
}

func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}

	record, err := h.purchases.GetOne(c.UserContext(), caller, id)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewPurchaseOutput(record))
}

// Search finds one record by shop name and reference among the caller's
// own records.
func (h *PurchaseHandler) Search(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	var query struct {
		ShopName  string `query:"shopName" validate:"required,notblank"`
		Reference string `query:"reference" validate:"required,notblank"`
	}
	if err := c.QueryParser(&query); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query")
	}
	if err := validation.Struct(&query); err != nil {
		return err
	}

	record, err := h.purchases.FindByShopAndReference(c.UserContext(), caller, query.ShopName, query.Reference)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewPurchaseOutput(record))
}

func (h *PurchaseHandler) Update(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}

	var input dto.PurchaseInput
	if err := httpx.Bind(c, &input); err != nil {
		return err
	}

	record, err := h.purchases.Update(c.UserContext(), caller, id, input)
	if err != nil {
		return err
	}

	return c.JSON(dto.NewPurchaseOutput(record))
}

func (h *PurchaseHandler) Delete(c *fiber.Ctx) error {
	caller, err := httpx.CallerEmail(c)
	if err != nil {
		return err
	}

	id, err := httpx.ParamID(c, "id")
	if err != nil {
		return err
	}

	if err := h.purchases.Delete(c.UserContext(), caller, id); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
