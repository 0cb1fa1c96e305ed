package handler

import (
	"net/http"

	"barpos/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct{ svc service.SalesService }

func NewSalesHandler(svc service.SalesService) *SalesHandler { return &SalesHandler{svc: svc} }

// Summary godoc
// @Summary      Bar sales summary
// @Description  Aggregates a bar's tickets: product ranking, per-user and per-payment-method totals, hourly distribution.
// @Tags         sales
// @Produce      json
// @Security     BearerAuth
// @Param        barId path string true "Bar UUID"
// @Success      200 {object} dto.SalesSummaryResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/sales/bars/{barId}/summary [get]
func (h *SalesHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summarize(c.Request.Context(), c.Param("barId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
