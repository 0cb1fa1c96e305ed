package handler

import (
	"net/http"

	"barpos/internal/apierror"
	"barpos/internal/dto"
	"barpos/internal/middleware"
	"barpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BartenderHandler serves the bartender screen: token input, cart reads and
// mutations, and sale confirmation. The cart is keyed by the JWT user id, so
// no cart id ever travels over the wire.
type BartenderHandler struct {
	carts   service.CartService
	tickets service.TicketService
}

func NewBartenderHandler(carts service.CartService, tickets service.TicketService) *BartenderHandler {
	return &BartenderHandler{carts: carts, tickets: tickets}
}

// Input godoc
// @Summary      Add a product by input token
// @Description  Parses a keyboard token like "CCC2" and merges the product into the bartender's cart.
// @Tags         bartender
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.InputRequest true "Input token"
// @Success      200  {object} dto.InputResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/bartender/input [post]
func (h *BartenderHandler) Input(c *gin.Context) {
	var req dto.InputRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	bartenderID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}

	resp, err := h.carts.AddInput(c.Request.Context(), bartenderID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCart godoc
// @Summary      Current cart
// @Description  Returns the bartender's cart with recomputed totals. 404 until the cart has been created; a cleared cart reads as empty.
// @Tags         bartender
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.CartResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/bartender/cart [get]
func (h *BartenderHandler) GetCart(c *gin.Context) {
	claims := middleware.GetClaims(c)
	bartenderID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}

	resp, err := h.carts.Get(c.Request.Context(), bartenderID, claims.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveItem godoc
// @Summary      Remove a cart line
// @Tags         bartender
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RemoveItemRequest true "Product to remove"
// @Success      200 {object} dto.RemoveItemResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/bartender/cart/item [delete]
func (h *BartenderHandler) RemoveItem(c *gin.Context) {
	var req dto.RemoveItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	bartenderID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}

	resp, err := h.carts.RemoveItem(c.Request.Context(), bartenderID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ClearCart godoc
// @Summary      Clear the cart
// @Description  Empties the bartender's cart. Idempotent — clearing an empty cart succeeds.
// @Tags         bartender
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.ClearCartResponse
// @Router       /v1/bartender/cart [delete]
func (h *BartenderHandler) ClearCart(c *gin.Context) {
	claims := middleware.GetClaims(c)
	bartenderID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}

	resp, err := h.carts.Clear(c.Request.Context(), bartenderID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Confirm godoc
// @Summary      Confirm the sale
// @Description  Atomically debits the bar's stock, creates the ticket and returns the print payload.
// @Tags         bartender
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.ConfirmRequest true "Confirmation details"
// @Success      201  {object} dto.ConfirmResponse
// @Failure      400  {object} apierror.APIError
// @Failure      500  {object} apierror.APIError
// @Router       /v1/bartender/cart/confirm [post]
func (h *BartenderHandler) Confirm(c *gin.Context) {
	var req dto.ConfirmRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	bartenderID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid token subject"))
		return
	}

	resp, err := h.tickets.Confirm(c.Request.Context(), bartenderID, claims.Name, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
