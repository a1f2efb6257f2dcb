package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"intellilab-gc-be/internal/pkg/logger"
	internalWS "intellilab-gc-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiveFeedRequiresUpgrade(t *testing.T) {
	h := NewLiveFeedHandler(internalWS.NewHub(nil, logger.NewNopLogger()), logger.NewNopLogger())
	app := fiber.New()
	h.RegisterRoutes(app)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ws/lab", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUpgradeRequired, resp.StatusCode)
}
