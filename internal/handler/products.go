package handler

import (
	"net/http"

	"barpos/internal/apierror"
	"barpos/internal/dto"
	"barpos/internal/service"

	"github.com/gin-gonic/gin"
)

type ProductsHandler struct {
	products service.ProductService
	bars     service.BarService
}

func NewProductsHandler(products service.ProductService, bars service.BarService) *ProductsHandler {
	return &ProductsHandler{products: products, bars: bars}
}

// Create godoc
// @Summary      Create a product
// @Description  Codes are 2-3 letters, case-insensitive, unique among active products.
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateProductRequest true "Product"
// @Success      201  {object} dto.ProductResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/products [post]
func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Get godoc
// @Summary      Product detail
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Product UUID"
// @Success      200 {object} dto.ProductResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/products/{id} [get]
func (h *ProductsHandler) Get(c *gin.Context) {
	resp, err := h.products.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary      List products
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        name     query string false "Name substring"
// @Param        code     query string false "Exact code"
// @Param        category query string false "Category"
// @Param        page     query int    false "Page (default 1)"
// @Param        limit    query int    false "Page size (default 50)"
// @Success      200 {object} dto.ProductListResponse
// @Router       /v1/products [get]
func (h *ProductsHandler) List(c *gin.Context) {
	var filter dto.ProductFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string true "Product UUID"
// @Param        body body dto.UpdateProductRequest true "Fields to update"
// @Success      200  {object} dto.ProductResponse
// @Failure      404  {object} apierror.APIError
// @Router       /v1/products/{id} [put]
func (h *ProductsHandler) Update(c *gin.Context) {
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Deactivate a product
// @Description  Soft delete: the product stops resolving but existing tickets keep their snapshots.
// @Tags         products
// @Security     BearerAuth
// @Param        id path string true "Product UUID"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/products/{id} [delete]
func (h *ProductsHandler) Delete(c *gin.Context) {
	if err := h.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateBar godoc
// @Summary      Create a bar
// @Tags         bars
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateBarRequest true "Bar"
// @Success      201  {object} dto.BarResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/bars [post]
func (h *ProductsHandler) CreateBar(c *gin.Context) {
	var req dto.CreateBarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.bars.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListBars godoc
// @Summary      List bars
// @Tags         bars
// @Produce      json
// @Security     BearerAuth
// @Param        eventId query string false "Filter by event UUID"
// @Success      200 {array} dto.BarResponse
// @Router       /v1/bars [get]
func (h *ProductsHandler) ListBars(c *gin.Context) {
	resp, err := h.bars.List(c.Request.Context(), c.Query("eventId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetBar godoc
// @Summary      Bar detail
// @Tags         bars
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Bar UUID"
// @Success      200 {object} dto.BarResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/bars/{id} [get]
func (h *ProductsHandler) GetBar(c *gin.Context) {
	resp, err := h.bars.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
