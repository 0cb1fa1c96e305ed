package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"barpos/internal/apierror"
	"barpos/internal/dto"
	"barpos/internal/middleware"
	"barpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCartService struct {
	addInput   func(ctx context.Context, bartenderID uuid.UUID, req dto.InputRequest) (*dto.InputResponse, error)
	get        func(ctx context.Context, bartenderID uuid.UUID, name string) (*dto.CartResponse, error)
	removeItem func(ctx context.Context, bartenderID uuid.UUID, req dto.RemoveItemRequest) (*dto.RemoveItemResponse, error)
	clear      func(ctx context.Context, bartenderID uuid.UUID) (*dto.ClearCartResponse, error)
}

func (s *stubCartService) AddInput(ctx context.Context, bartenderID uuid.UUID, req dto.InputRequest) (*dto.InputResponse, error) {
	return s.addInput(ctx, bartenderID, req)
}
func (s *stubCartService) Get(ctx context.Context, bartenderID uuid.UUID, name string) (*dto.CartResponse, error) {
	return s.get(ctx, bartenderID, name)
}
func (s *stubCartService) RemoveItem(ctx context.Context, bartenderID uuid.UUID, req dto.RemoveItemRequest) (*dto.RemoveItemResponse, error) {
	return s.removeItem(ctx, bartenderID, req)
}
func (s *stubCartService) Clear(ctx context.Context, bartenderID uuid.UUID) (*dto.ClearCartResponse, error) {
	return s.clear(ctx, bartenderID)
}

var _ service.CartService = (*stubCartService)(nil)

type stubTicketService struct {
	confirm func(ctx context.Context, bartenderID uuid.UUID, name string, req dto.ConfirmRequest) (*dto.ConfirmResponse, error)
}

func (s *stubTicketService) Confirm(ctx context.Context, bartenderID uuid.UUID, name string, req dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
	return s.confirm(ctx, bartenderID, name, req)
}
func (s *stubTicketService) Get(context.Context, string) (*dto.TicketResponse, error) {
	return nil, nil
}
func (s *stubTicketService) Patch(context.Context, string, dto.PatchTicketRequest) (*dto.TicketResponse, error) {
	return nil, nil
}
func (s *stubTicketService) MarkPrinted(context.Context, string) (*dto.PrintedResponse, error) {
	return nil, nil
}
func (s *stubTicketService) Delete(context.Context, string) error { return nil }
func (s *stubTicketService) Search(context.Context, dto.TicketSearchFilter) ([]dto.TicketResponse, error) {
	return nil, nil
}

var _ service.TicketService = (*stubTicketService)(nil)

// newBartenderRouter mounts the handler behind a middleware that injects the
// given claims, the way JWTAuth would after validating a token.
func newBartenderRouter(claims *middleware.JWTClaims, carts service.CartService, tickets service.TicketService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, claims)
		c.Next()
	})
	h := NewBartenderHandler(carts, tickets)
	r.POST("/v1/bartender/input", h.Input)
	r.GET("/v1/bartender/cart", h.GetCart)
	r.DELETE("/v1/bartender/cart", h.ClearCart)
	r.DELETE("/v1/bartender/cart/item", h.RemoveItem)
	r.POST("/v1/bartender/cart/confirm", h.Confirm)
	return r
}

func bartenderClaims(id uuid.UUID) *middleware.JWTClaims {
	return &middleware.JWTClaims{UserID: id.String(), Username: "ana", Name: "Ana", Role: middleware.RoleBartender}
}

func perform(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBartenderInput(t *testing.T) {
	bartender := uuid.New()

	t.Run("passes the JWT subject to the service", func(t *testing.T) {
		var gotID uuid.UUID
		carts := &stubCartService{
			addInput: func(_ context.Context, id uuid.UUID, req dto.InputRequest) (*dto.InputResponse, error) {
				gotID = id
				return &dto.InputResponse{Success: true, Message: "1 x Cerveza added"}, nil
			},
		}
		r := newBartenderRouter(bartenderClaims(bartender), carts, &stubTicketService{})

		w := perform(t, r, "POST", "/v1/bartender/input",
			map[string]string{"input": "CER", "eventId": uuid.NewString()})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, bartender, gotID)
	})

	t.Run("missing fields fail validation before the service", func(t *testing.T) {
		carts := &stubCartService{
			addInput: func(context.Context, uuid.UUID, dto.InputRequest) (*dto.InputResponse, error) {
				t.Fatal("service must not be called")
				return nil, nil
			},
		}
		r := newBartenderRouter(bartenderClaims(bartender), carts, &stubTicketService{})

		w := perform(t, r, "POST", "/v1/bartender/input", map[string]string{"input": "CER"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

		var body struct {
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body.Fields, "EventID")
	})

	t.Run("insufficient stock maps to 400 with its kind", func(t *testing.T) {
		carts := &stubCartService{
			addInput: func(context.Context, uuid.UUID, dto.InputRequest) (*dto.InputResponse, error) {
				return nil, apierror.InsufficientStock("Insufficient stock of Cerveza: 2 available, 3 requested")
			},
		}
		r := newBartenderRouter(bartenderClaims(bartender), carts, &stubTicketService{})

		w := perform(t, r, "POST", "/v1/bartender/input",
			map[string]string{"input": "CER3", "eventId": uuid.NewString()})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var body apierror.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apierror.KindInsufficientStock, body.Kind)
	})

	t.Run("malformed token subject is unauthorized", func(t *testing.T) {
		claims := &middleware.JWTClaims{UserID: "not-a-uuid", Role: middleware.RoleBartender}
		r := newBartenderRouter(claims, &stubCartService{}, &stubTicketService{})

		w := perform(t, r, "POST", "/v1/bartender/input",
			map[string]string{"input": "CER", "eventId": uuid.NewString()})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestBartenderConfirm(t *testing.T) {
	bartender := uuid.New()

	t.Run("created on success", func(t *testing.T) {
		tickets := &stubTicketService{
			confirm: func(_ context.Context, _ uuid.UUID, name string, req dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
				assert.Equal(t, "Ana", name)
				return &dto.ConfirmResponse{Success: true, TicketID: uuid.NewString(), Message: "Ticket #000001 created"}, nil
			},
		}
		r := newBartenderRouter(bartenderClaims(bartender), &stubCartService{}, tickets)

		w := perform(t, r, "POST", "/v1/bartender/cart/confirm", map[string]string{"barId": uuid.NewString()})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("consistency fault is masked in the envelope", func(t *testing.T) {
		tickets := &stubTicketService{
			confirm: func(context.Context, uuid.UUID, string, dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
				return nil, apierror.Consistency("pq: connection reset during insert")
			},
		}
		r := newBartenderRouter(bartenderClaims(bartender), &stubCartService{}, tickets)

		w := perform(t, r, "POST", "/v1/bartender/cart/confirm", map[string]string{"barId": uuid.NewString()})
		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body apierror.APIError
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, apierror.KindConsistency, body.Kind)
		assert.NotContains(t, body.Detail, "connection reset")
		assert.Contains(t, body.Detail, "Check ticket history")
	})

	t.Run("empty cart maps to 400", func(t *testing.T) {
		tickets := &stubTicketService{
			confirm: func(context.Context, uuid.UUID, string, dto.ConfirmRequest) (*dto.ConfirmResponse, error) {
				return nil, apierror.EmptyCart("Cart is empty")
			},
		}
		r := newBartenderRouter(bartenderClaims(bartender), &stubCartService{}, tickets)

		w := perform(t, r, "POST", "/v1/bartender/cart/confirm", map[string]string{"barId": uuid.NewString()})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBartenderCart(t *testing.T) {
	bartender := uuid.New()

	t.Run("get passes the display name from claims", func(t *testing.T) {
		carts := &stubCartService{
			get: func(_ context.Context, _ uuid.UUID, name string) (*dto.CartResponse, error) {
				assert.Equal(t, "Ana", name)
				return &dto.CartResponse{}, nil
			},
		}
		r := newBartenderRouter(bartenderClaims(bartender), carts, &stubTicketService{})

		w := perform(t, r, "GET", "/v1/bartender/cart", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("remove not-in-cart maps to 404", func(t *testing.T) {
		carts := &stubCartService{
			removeItem: func(context.Context, uuid.UUID, dto.RemoveItemRequest) (*dto.RemoveItemResponse, error) {
				return nil, apierror.NotFound("Product is not in the cart")
			},
		}
		r := newBartenderRouter(bartenderClaims(bartender), carts, &stubTicketService{})

		w := perform(t, r, "DELETE", "/v1/bartender/cart/item", map[string]string{"productId": uuid.NewString()})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("clear always succeeds", func(t *testing.T) {
		carts := &stubCartService{
			clear: func(context.Context, uuid.UUID) (*dto.ClearCartResponse, error) {
				return &dto.ClearCartResponse{Message: "Cart cleared"}, nil
			},
		}
		r := newBartenderRouter(bartenderClaims(bartender), carts, &stubTicketService{})

		w := perform(t, r, "DELETE", "/v1/bartender/cart", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
