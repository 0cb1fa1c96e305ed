package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"
	"unicode"

	"barpos/internal/apierror"
	"barpos/internal/model"
	"barpos/internal/repository"

	"github.com/redis/go-redis/v9"
)

const codeCacheTTL = 5 * time.Minute

// CatalogService resolves bartender input tokens to priced products.
// Pure read — no side effects beyond cache population.
type CatalogService interface {
	// Resolve parses input ("CCC2", "cc", "3FER") and returns the matching
	// product with the requested quantity. eventID is accepted for
	// event-scoped resolver deployments; the current resolver is
	// catalog-global.
	Resolve(ctx context.Context, input, eventID string) (*model.Product, int, error)
}

type catalogService struct {
	repo repository.ProductRepository
	rdb  *redis.Client
}

func NewCatalogService(repo repository.ProductRepository, rdb *redis.Client) CatalogService {
	return &catalogService{repo: repo, rdb: rdb}
}

// ParseToken extracts the product code and quantity multiplier from a
// bartender input token. Grammar: a single run of 2-3 letters with an
// optional integer multiplier on either side ("CCC2", "2CCC" and bare "CCC"
// are all valid; "CCC" alone means quantity 1). Input is case-insensitive;
// codes are canonically uppercase.
func ParseToken(input string) (string, int, error) {
	token := strings.ToUpper(strings.TrimSpace(input))
	if token == "" {
		return "", 0, apierror.Validation("Input token is empty")
	}

	var leading, trailing, code strings.Builder
	for _, r := range token {
		switch {
		case unicode.IsDigit(r):
			if code.Len() == 0 {
				leading.WriteRune(r)
			} else {
				trailing.WriteRune(r)
			}
		case r >= 'A' && r <= 'Z':
			// A second letter run after trailing digits is malformed.
			if trailing.Len() > 0 {
				return "", 0, apierror.Validation("Invalid input format: " + input)
			}
			code.WriteRune(r)
		default:
			return "", 0, apierror.Validation("Invalid input format: " + input)
		}
	}

	if code.Len() < 2 || code.Len() > 3 {
		return "", 0, apierror.Validation("Invalid input format: no 2-3 letter product code in " + input)
	}
	if leading.Len() > 0 && trailing.Len() > 0 {
		return "", 0, apierror.Validation("Invalid input format: ambiguous quantity in " + input)
	}

	quantity := 1
	if digits := leading.String() + trailing.String(); digits != "" {
		q, err := strconv.Atoi(digits)
		if err != nil || q < 1 {
			return "", 0, apierror.Validation("Invalid quantity in " + input)
		}
		quantity = q
	}
	return code.String(), quantity, nil
}

func (s *catalogService) Resolve(ctx context.Context, input, eventID string) (*model.Product, int, error) {
	code, quantity, err := ParseToken(input)
	if err != nil {
		return nil, 0, err
	}

	if p, ok := s.fromCache(ctx, code); ok {
		return p, quantity, nil
	}

	product, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, 0, apierror.NotFound("No product with code " + code)
	}

	s.toCache(ctx, code, product)
	return product, quantity, nil
}

func (s *catalogService) fromCache(ctx context.Context, code string) (*model.Product, bool) {
	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, cacheKey(code)).Bytes()
	if err != nil {
		return nil, false
	}
	var p model.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, false
	}
	return &p, true
}

// toCache is best effort — a cache failure never fails a resolution.
func (s *catalogService) toCache(ctx context.Context, code string, p *model.Product) {
	if s.rdb == nil {
		return
	}
	if b, err := json.Marshal(p); err == nil {
		_ = s.rdb.Set(ctx, cacheKey(code), b, codeCacheTTL).Err()
	}
}

func cacheKey(code string) string { return "catalog:code:" + code }
