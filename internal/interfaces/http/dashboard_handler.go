package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Docuport-api/internal/application/analytics"
)

// DashboardHandler expone el tablero operativo.
type DashboardHandler struct {
	dashboard *analytics.DashboardUseCase
}

func NewDashboardHandler(dashboard *analytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard}
}

// Get godoc
// @Summary      Tablero operativo de la empresa del token
// @Description  Conteos de documentos, estado de las colas y salud de los
// @Description  procesos planificador y workers.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardResponse
// @Security     BearerAuth
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	out, err := h.dashboard.Build(c.Context(), GetCompanyID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
