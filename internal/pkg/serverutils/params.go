package serverutils

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ParseUUIDParam reads a path parameter as a UUID, failing with 400.
func ParseUUIDParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, NewBadRequest("Invalid " + name)
	}
	return id, nil
}

// Pagination reads page/limit query params with sane bounds.
func Pagination(ctx *fiber.Ctx) (page, limit int) {
	page = ctx.QueryInt("page", 1)
	limit = ctx.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 200 {
		limit = 200
	}
	return page, limit
}
