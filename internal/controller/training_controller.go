package controller

import (
	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ITrainingController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Submit(ctx *fiber.Ctx) error
}

type trainingController struct {
	service service.ITrainingService
}

func NewTrainingController(service service.ITrainingService) ITrainingController {
	return &trainingController{service: service}
}

func (c *trainingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/training/exercises")
	h.Get("", c.GetAll)
	h.Get("/:id", c.Show)
	h.Post("/:id/submit", c.Submit)
}

func (c *trainingController) GetAll(ctx *fiber.Ctx) error {
	res := c.service.GetAll(serverutils.RequestContext(ctx))
	return ctx.JSON(serverutils.SuccessResponse("Success get exercises", res))
}

func (c *trainingController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(serverutils.RequestContext(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show exercise", res))
}

func (c *trainingController) Submit(ctx *fiber.Ctx) error {
	var req dto.SubmitExerciseRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Submit(serverutils.RequestContext(ctx), ctx.Params("id"), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Exercise graded", res))
}
