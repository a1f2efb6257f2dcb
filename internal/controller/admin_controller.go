package controller

import (
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	GetAuditLogs(ctx *fiber.Ctx) error
	GetSystemLogs(ctx *fiber.Ctx) error
	GetLogDetail(ctx *fiber.Ctx) error
}

type adminController struct {
	service   service.IAdminService
	jwtSecret string
}

func NewAdminController(service service.IAdminService, jwtSecret string) IAdminController {
	return &adminController{service: service, jwtSecret: jwtSecret}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin")
	h.Use(serverutils.JwtMiddleware(c.jwtSecret))
	h.Use(serverutils.RequireRole("admin"))

	h.Get("/audit", c.GetAuditLogs)
	h.Get("/logs", c.GetSystemLogs)
	h.Get("/logs/:id", c.GetLogDetail)
}

func (c *adminController) GetAuditLogs(ctx *fiber.Ctx) error {
	page, limit := serverutils.Pagination(ctx)
	res, err := c.service.GetAuditLogs(serverutils.RequestContext(ctx), ctx.Query("entity_type"), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get audit log", res))
}

func (c *adminController) GetSystemLogs(ctx *fiber.Ctx) error {
	page, limit := serverutils.Pagination(ctx)
	res, err := c.service.GetSystemLogs(serverutils.RequestContext(ctx), page, limit, ctx.Query("level"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get system logs", res))
}

func (c *adminController) GetLogDetail(ctx *fiber.Ctx) error {
	res, err := c.service.GetLogDetail(serverutils.RequestContext(ctx), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get log detail", res))
}
