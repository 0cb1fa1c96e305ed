package handler

import (
	"net/http"

	"barpos/internal/apierror"
	"barpos/internal/dto"
	"barpos/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler { return &StockHandler{svc: svc} }

// Assign godoc
// @Summary      Assign stock to a bar
// @Description  Credits quantity of a product to a bar, creating the assignment on first use.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.AssignRequest true "Assignment"
// @Success      201  {object} dto.AssignmentResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/stock/assign [post]
func (h *StockHandler) Assign(c *gin.Context) {
	var req dto.AssignRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Assign(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Move godoc
// @Summary      Move stock between bars
// @Description  Transfers quantity atomically; fails without partial effect when the source lacks stock.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.MoveRequest true "Transfer"
// @Success      200  {object} dto.MoveResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/stock/move [post]
func (h *StockHandler) Move(c *gin.Context) {
	var req dto.MoveRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Move(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Bulk godoc
// @Summary      Bulk stock operations
// @Description  Applies assigns and moves independently; the response reports each outcome.
// @Tags         stock
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.BulkRequest true "Operations"
// @Success      200  {object} dto.BulkResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/stock/bulk [post]
func (h *StockHandler) Bulk(c *gin.Context) {
	var req dto.BulkRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Bulk(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movements godoc
// @Summary      Movement history
// @Description  Lists the append-only movement rows backing the ledger, newest first.
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        productId query string false "Filter by product UUID"
// @Param        limit     query int    false "Page size (default 100)"
// @Success      200 {array} dto.MovementRow
// @Router       /v1/stock/movements [get]
func (h *StockHandler) Movements(c *gin.Context) {
	var q dto.MovementsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Movements(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Query godoc
// @Summary      Query the stock ledger
// @Tags         stock
// @Produce      json
// @Security     BearerAuth
// @Param        barId     query string false "Filter by bar UUID"
// @Param        productId query string false "Filter by product UUID"
// @Success      200 {array} dto.StockRow
// @Router       /v1/stock [get]
func (h *StockHandler) Query(c *gin.Context) {
	var q dto.StockQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Query(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
