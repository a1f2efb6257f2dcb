package controller

import (
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"
	"intellilab-gc-be/pkg/methodperf"

	"github.com/gofiber/fiber/v2"
)

type ISimulatorController interface {
	RegisterRoutes(r fiber.Router)
	Inlet(ctx *fiber.Ctx) error
}

type simulatorController struct {
	service service.ISimulatorService
}

func NewSimulatorController(service service.ISimulatorService) ISimulatorController {
	return &simulatorController{service: service}
}

func (c *simulatorController) RegisterRoutes(r fiber.Router) {
	r.Post("/simulator/inlet", c.Inlet)
}

func (c *simulatorController) Inlet(ctx *fiber.Ctx) error {
	var req methodperf.InletInput
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Inlet(serverutils.RequestContext(ctx), req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success simulate inlet", res))
}
