package controller

import (
	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICompoundController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type compoundController struct {
	service service.ICompoundService
}

func NewCompoundController(service service.ICompoundService) ICompoundController {
	return &compoundController{service: service}
}

func (c *compoundController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/compounds")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
}

func (c *compoundController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(serverutils.RequestContext(ctx), listQuery(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all compounds", res))
}

func (c *compoundController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateCompoundRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create compound", res))
}

func (c *compoundController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(serverutils.RequestContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show compound", res))
}

func (c *compoundController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateCompoundRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.service.Update(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update compound", res))
}

func (c *compoundController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(serverutils.RequestContext(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete compound", nil))
}
