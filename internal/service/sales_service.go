package service

import (
	"context"
	"fmt"
	"sort"

	"barpos/internal/apierror"
	"barpos/internal/dto"
	"barpos/internal/model"
	"barpos/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesService builds the dashboard aggregation over a bar's confirmed
// tickets. Pure projection — it never mutates anything.
type SalesService interface {
	Summarize(ctx context.Context, barID string) (*dto.SalesSummaryResponse, error)
}

type salesService struct {
	ticketRepo repository.TicketRepository
	barRepo    repository.BarRepository
}

func NewSalesService(ticketRepo repository.TicketRepository, barRepo repository.BarRepository) SalesService {
	return &salesService{ticketRepo: ticketRepo, barRepo: barRepo}
}

func (s *salesService) Summarize(ctx context.Context, barID string) (*dto.SalesSummaryResponse, error) {
	id, err := uuid.Parse(barID)
	if err != nil {
		return nil, apierror.Validation("barId is not a valid UUID")
	}
	bar, err := s.barRepo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NotFound("Bar not found: " + barID)
	}
	tickets, err := s.ticketRepo.ListByBar(ctx, id)
	if err != nil {
		return nil, apierror.Internal("Could not load tickets")
	}

	resp := &dto.SalesSummaryResponse{
		Bar: dto.BarResponse{
			ID:      bar.ID.String(),
			EventID: bar.EventID.String(),
			Name:    bar.Name,
			Printer: bar.Printer,
			Status:  bar.Status,
		},
		TotalTickets:         len(tickets),
		TotalRevenue:         decimal.Zero,
		AverageTicketValue:   decimal.Zero,
		ProductsSold:         []dto.ProductSales{},
		SalesByUser:          []dto.UserSales{},
		SalesByPaymentMethod: map[string]decimal.Decimal{},
		HourlyDistribution:   []dto.HourlyBucket{},
	}

	byProduct := map[uuid.UUID]*dto.ProductSales{}
	byMethodProduct := map[string]map[uuid.UUID]*dto.ProductSales{}
	byUser := map[uuid.UUID]*dto.UserSales{}
	byHour := map[int]*dto.HourlyBucket{}

	for i := range tickets {
		t := &tickets[i]
		resp.TotalRevenue = resp.TotalRevenue.Add(t.Total)
		resp.SalesByPaymentMethod[t.PaymentMethod] = resp.SalesByPaymentMethod[t.PaymentMethod].Add(t.Total)

		for _, it := range t.Items {
			resp.TotalSales += it.Quantity
			accumulateProduct(byProduct, &it)

			if byMethodProduct[t.PaymentMethod] == nil {
				byMethodProduct[t.PaymentMethod] = map[uuid.UUID]*dto.ProductSales{}
			}
			accumulateProduct(byMethodProduct[t.PaymentMethod], &it)
		}

		u := byUser[t.EmployeeID]
		if u == nil {
			u = &dto.UserSales{UserID: t.EmployeeID.String(), TotalSales: decimal.Zero}
			if t.Employee != nil {
				u.UserName = t.Employee.Name
			}
			byUser[t.EmployeeID] = u
		}
		u.TicketCount++
		u.TotalSales = u.TotalSales.Add(t.Total)

		hour := t.CreatedAt.Hour()
		b := byHour[hour]
		if b == nil {
			b = &dto.HourlyBucket{Hour: fmt.Sprintf("%02d:00", hour), Revenue: decimal.Zero}
			byHour[hour] = b
		}
		b.TicketCount++
		b.Revenue = b.Revenue.Add(t.Total)
	}

	if resp.TotalTickets > 0 {
		resp.AverageTicketValue = resp.TotalRevenue.
			Div(decimal.NewFromInt(int64(resp.TotalTickets))).Round(2)
	}

	resp.ProductsSold = rankProducts(byProduct)

	resp.ProductsSoldByPaymentMethod = map[string][]dto.ProductSales{}
	for method, products := range byMethodProduct {
		resp.ProductsSoldByPaymentMethod[method] = rankProducts(products)
	}

	for _, u := range byUser {
		resp.SalesByUser = append(resp.SalesByUser, *u)
	}
	sort.Slice(resp.SalesByUser, func(i, j int) bool {
		return resp.SalesByUser[i].TotalSales.GreaterThan(resp.SalesByUser[j].TotalSales)
	})

	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	for _, h := range hours {
		resp.HourlyDistribution = append(resp.HourlyDistribution, *byHour[h])
	}

	return resp, nil
}

func accumulateProduct(acc map[uuid.UUID]*dto.ProductSales, it *model.TicketItem) {
	p := acc[it.ProductID]
	if p == nil {
		p = &dto.ProductSales{
			ProductID:   it.ProductID.String(),
			ProductName: it.ProductName,
			Revenue:     decimal.Zero,
		}
		acc[it.ProductID] = p
	}
	p.QuantitySold += it.Quantity
	p.Revenue = p.Revenue.Add(it.Total)
}

// rankProducts orders by revenue descending and fills in each product's
// share of the group's line revenue. Percentages stay zero when there is no
// revenue.
func rankProducts(acc map[uuid.UUID]*dto.ProductSales) []dto.ProductSales {
	groupRevenue := decimal.Zero
	for _, p := range acc {
		groupRevenue = groupRevenue.Add(p.Revenue)
	}
	out := make([]dto.ProductSales, 0, len(acc))
	for _, p := range acc {
		if groupRevenue.IsPositive() {
			pct, _ := p.Revenue.
				Div(groupRevenue).
				Mul(decimal.NewFromInt(100)).
				Round(2).
				Float64()
			p.Percentage = pct
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].ProductName < out[j].ProductName
	})
	return out
}
