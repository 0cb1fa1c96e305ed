package handler

import (
	"net/http"

	"barpos/internal/apierror"
	"barpos/internal/dto"
	"barpos/internal/service"

	"github.com/gin-gonic/gin"
)

type TicketsHandler struct{ svc service.TicketService }

func NewTicketsHandler(svc service.TicketService) *TicketsHandler {
	return &TicketsHandler{svc: svc}
}

// Get godoc
// @Summary      Ticket detail
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Ticket UUID"
// @Success      200 {object} dto.TicketResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/tickets/{id} [get]
func (h *TicketsHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Search godoc
// @Summary      Search tickets
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        eventId    query string false "Filter by event UUID"
// @Param        employeeId query string false "Filter by employee UUID"
// @Success      200 {array} dto.TicketResponse
// @Router       /v1/tickets [get]
func (h *TicketsHandler) Search(c *gin.Context) {
	var filter dto.TicketSearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Patch godoc
// @Summary      Update ticket annotations
// @Description  Only customerName and notes are mutable; financial fields are frozen.
// @Tags         tickets
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Ticket UUID"
// @Param        body body dto.PatchTicketRequest true "Fields to update"
// @Success      200  {object} dto.TicketResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/tickets/{id} [patch]
func (h *TicketsHandler) Patch(c *gin.Context) {
	var req dto.PatchTicketRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Patch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MarkPrinted godoc
// @Summary      Mark ticket as printed
// @Description  Idempotent: re-marking overwrites the printed timestamp.
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Ticket UUID"
// @Success      200 {object} dto.PrintedResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/tickets/{id}/print [patch]
func (h *TicketsHandler) MarkPrinted(c *gin.Context) {
	resp, err := h.svc.MarkPrinted(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Delete a ticket
// @Description  Removes the ticket and restores its quantities to the bar's ledger.
// @Tags         tickets
// @Security     BearerAuth
// @Param        id path string true "Ticket UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/tickets/{id} [delete]
func (h *TicketsHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
