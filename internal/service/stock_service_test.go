package service

import (
	"context"
	"testing"

	"barpos/internal/apierror"
	"barpos/internal/dto"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stockFixture struct {
	svc   StockService
	stock *stubStockRepo
	prods *stubProductRepo
	bars  *stubBarRepo
}

func buildStockFixture() *stockFixture {
	stock := newStubStockRepo()
	prods := newStubProductRepo()
	bars := newStubBarRepo()
	svc := NewStockService(stock, prods, bars, zerolog.Nop())
	return &stockFixture{svc: svc, stock: stock, prods: prods, bars: bars}
}

func TestStockAssign(t *testing.T) {
	ctx := context.Background()

	t.Run("first assign creates the ledger row", func(t *testing.T) {
		f := buildStockFixture()
		beer := f.prods.seed("CER", "Cerveza", 1500)
		bar := f.bars.seed("Barra Norte")

		resp, err := f.svc.Assign(ctx, dto.AssignRequest{
			ProductID: beer.ID.String(),
			BarID:     bar.ID.String(),
			Quantity:  50,
			Notes:     "opening stock",
		})
		require.NoError(t, err)
		assert.Equal(t, 50, resp.Quantity)
		assert.Equal(t, 50, f.stock.quantity(beer.ID, bar.ID))

		require.Len(t, f.stock.movements, 1)
		assert.Equal(t, "assign", f.stock.movements[0].Type)
		assert.Equal(t, 50, f.stock.movements[0].Quantity)
	})

	t.Run("repeat assigns accumulate", func(t *testing.T) {
		f := buildStockFixture()
		beer := f.prods.seed("CER", "Cerveza", 1500)
		bar := f.bars.seed("Barra Norte")

		req := dto.AssignRequest{ProductID: beer.ID.String(), BarID: bar.ID.String(), Quantity: 30}
		_, err := f.svc.Assign(ctx, req)
		require.NoError(t, err)
		resp, err := f.svc.Assign(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, 60, resp.Quantity)
	})

	t.Run("unknown product is not found", func(t *testing.T) {
		f := buildStockFixture()
		bar := f.bars.seed("Barra Norte")

		_, err := f.svc.Assign(ctx, dto.AssignRequest{
			ProductID: uuid.NewString(),
			BarID:     bar.ID.String(),
			Quantity:  10,
		})
		require.Error(t, err)
		assert.Equal(t, apierror.KindNotFound, apierror.KindOf(err))
	})

	t.Run("malformed ids are validation errors", func(t *testing.T) {
		f := buildStockFixture()
		_, err := f.svc.Assign(ctx, dto.AssignRequest{ProductID: "nope", BarID: "nope", Quantity: 1})
		require.Error(t, err)
		assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		f := buildStockFixture()
		beer := f.prods.seed("CER", "Cerveza", 1500)
		bar := f.bars.seed("Barra Norte")
		f.stock.seed(beer.ID, bar.ID, 10)

		for _, qty := range []int{0, -7} {
			_, err := f.svc.Assign(ctx, dto.AssignRequest{
				ProductID: beer.ID.String(),
				BarID:     bar.ID.String(),
				Quantity:  qty,
			})
			require.Error(t, err)
			assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
		}
		assert.Equal(t, 10, f.stock.quantity(beer.ID, bar.ID))
		assert.Empty(t, f.stock.movements)
	})
}

func TestStockMove(t *testing.T) {
	ctx := context.Background()

	t.Run("debits source and credits destination", func(t *testing.T) {
		f := buildStockFixture()
		beer := f.prods.seed("CER", "Cerveza", 1500)
		src := f.bars.seed("Barra Norte")
		dst := f.bars.seed("Barra Sur")
		f.stock.seed(beer.ID, src.ID, 40)

		resp, err := f.svc.Move(ctx, dto.MoveRequest{
			ProductID: beer.ID.String(),
			FromBarID: src.ID.String(),
			ToBarID:   dst.ID.String(),
			Quantity:  15,
		})
		require.NoError(t, err)
		assert.Equal(t, 25, resp.FromQuantity)
		assert.Equal(t, 15, resp.ToQuantity)
		assert.Equal(t, 25, f.stock.quantity(beer.ID, src.ID))
		assert.Equal(t, 15, f.stock.quantity(beer.ID, dst.ID))

		// One move_out / move_in pair, quantities mirrored.
		require.Len(t, f.stock.movements, 2)
		out, in := f.stock.movements[0], f.stock.movements[1]
		assert.Equal(t, "move_out", out.Type)
		assert.Equal(t, -15, out.Quantity)
		assert.Equal(t, src.ID, out.BarID)
		assert.Equal(t, "move_in", in.Type)
		assert.Equal(t, 15, in.Quantity)
		assert.Equal(t, dst.ID, in.BarID)
	})

	t.Run("insufficient source leaves both bars untouched", func(t *testing.T) {
		f := buildStockFixture()
		beer := f.prods.seed("CER", "Cerveza", 1500)
		src := f.bars.seed("Barra Norte")
		dst := f.bars.seed("Barra Sur")
		f.stock.seed(beer.ID, src.ID, 5)

		_, err := f.svc.Move(ctx, dto.MoveRequest{
			ProductID: beer.ID.String(),
			FromBarID: src.ID.String(),
			ToBarID:   dst.ID.String(),
			Quantity:  10,
		})
		require.Error(t, err)
		assert.Equal(t, apierror.KindInsufficientStock, apierror.KindOf(err))

		assert.Equal(t, 5, f.stock.quantity(beer.ID, src.ID))
		assert.Equal(t, 0, f.stock.quantity(beer.ID, dst.ID))
		assert.Empty(t, f.stock.movements)
	})

	t.Run("same source and destination is rejected", func(t *testing.T) {
		f := buildStockFixture()
		beer := f.prods.seed("CER", "Cerveza", 1500)
		bar := f.bars.seed("Barra Norte")

		_, err := f.svc.Move(ctx, dto.MoveRequest{
			ProductID: beer.ID.String(),
			FromBarID: bar.ID.String(),
			ToBarID:   bar.ID.String(),
			Quantity:  1,
		})
		require.Error(t, err)
		assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	})

	t.Run("non-positive quantity is rejected", func(t *testing.T) {
		f := buildStockFixture()
		beer := f.prods.seed("CER", "Cerveza", 1500)
		src := f.bars.seed("Barra Norte")
		dst := f.bars.seed("Barra Sur")
		f.stock.seed(beer.ID, src.ID, 10)

		_, err := f.svc.Move(ctx, dto.MoveRequest{
			ProductID: beer.ID.String(),
			FromBarID: src.ID.String(),
			ToBarID:   dst.ID.String(),
			Quantity:  -3,
		})
		require.Error(t, err)
		assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
		assert.Equal(t, 10, f.stock.quantity(beer.ID, src.ID))
		assert.Equal(t, 0, f.stock.quantity(beer.ID, dst.ID))
	})
}

func TestStockQuery(t *testing.T) {
	ctx := context.Background()
	f := buildStockFixture()
	beer := f.prods.seed("CER", "Cerveza", 1500)
	gin := f.prods.seed("GIN", "Gin Tonic", 3000)
	barA := f.bars.seed("Barra Norte")
	barB := f.bars.seed("Barra Sur")
	f.stock.seed(beer.ID, barA.ID, 10)
	f.stock.seed(beer.ID, barB.ID, 20)
	f.stock.seed(gin.ID, barA.ID, 5)

	t.Run("unfiltered returns every row", func(t *testing.T) {
		rows, err := f.svc.Query(ctx, dto.StockQuery{})
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("filter by bar", func(t *testing.T) {
		rows, err := f.svc.Query(ctx, dto.StockQuery{BarID: barB.ID.String()})
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, 20, rows[0].Quantity)
	})

	t.Run("filter by product", func(t *testing.T) {
		rows, err := f.svc.Query(ctx, dto.StockQuery{ProductID: beer.ID.String()})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("malformed filter is a validation error", func(t *testing.T) {
		_, err := f.svc.Query(ctx, dto.StockQuery{BarID: "nope"})
		require.Error(t, err)
		assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	})
}

func TestStockBulk(t *testing.T) {
	ctx := context.Background()

	t.Run("operations are independent", func(t *testing.T) {
		f := buildStockFixture()
		beer := f.prods.seed("CER", "Cerveza", 1500)
		src := f.bars.seed("Barra Norte")
		dst := f.bars.seed("Barra Sur")

		resp, err := f.svc.Bulk(ctx, dto.BulkRequest{Operations: []dto.BulkOperation{
			{Type: "assign", ProductID: beer.ID.String(), BarID: src.ID.String(), Quantity: 30},
			{Type: "move", ProductID: beer.ID.String(), FromBarID: src.ID.String(), ToBarID: dst.ID.String(), Quantity: 100},
			{Type: "move", ProductID: beer.ID.String(), FromBarID: src.ID.String(), ToBarID: dst.ID.String(), Quantity: 10},
		}})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.Processed)
		assert.Equal(t, 2, resp.Successful)
		assert.Equal(t, 1, resp.Failed)

		require.Len(t, resp.Results, 3)
		assert.Equal(t, "success", resp.Results[0].Status)
		assert.Equal(t, "error", resp.Results[1].Status)
		assert.Equal(t, "success", resp.Results[2].Status)
		assert.Equal(t, "move #2", resp.Results[1].Operation)

		// Failed middle op changed nothing; the siblings applied.
		assert.Equal(t, 20, f.stock.quantity(beer.ID, src.ID))
		assert.Equal(t, 10, f.stock.quantity(beer.ID, dst.ID))
	})

	t.Run("negative quantity never debits the ledger", func(t *testing.T) {
		f := buildStockFixture()
		beer := f.prods.seed("CER", "Cerveza", 1500)
		bar := f.bars.seed("Barra Norte")
		f.stock.seed(beer.ID, bar.ID, 10)

		resp, err := f.svc.Bulk(ctx, dto.BulkRequest{Operations: []dto.BulkOperation{
			{Type: "assign", ProductID: beer.ID.String(), BarID: bar.ID.String(), Quantity: -7},
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Failed)
		assert.Equal(t, 0, resp.Successful)
		assert.Equal(t, "error", resp.Results[0].Status)

		// An assign can only credit: the row still holds its seeded quantity.
		assert.Equal(t, 10, f.stock.quantity(beer.ID, bar.ID))
		assert.Empty(t, f.stock.movements)
	})

	t.Run("unknown operation type fails that entry only", func(t *testing.T) {
		f := buildStockFixture()
		beer := f.prods.seed("CER", "Cerveza", 1500)
		bar := f.bars.seed("Barra Norte")

		resp, err := f.svc.Bulk(ctx, dto.BulkRequest{Operations: []dto.BulkOperation{
			{Type: "destroy", ProductID: beer.ID.String(), BarID: bar.ID.String(), Quantity: 1},
			{Type: "assign", ProductID: beer.ID.String(), BarID: bar.ID.String(), Quantity: 5},
		}})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Failed)
		assert.Equal(t, 1, resp.Successful)
		assert.Contains(t, resp.Results[0].Message, "Unknown operation type")
	})
}

func TestStockMovements(t *testing.T) {
	ctx := context.Background()
	f := buildStockFixture()
	beer := f.prods.seed("CER", "Cerveza", 1500)
	gin := f.prods.seed("GIN", "Gin Tonic", 3000)
	src := f.bars.seed("Barra Norte")
	dst := f.bars.seed("Barra Sur")

	_, err := f.svc.Assign(ctx, dto.AssignRequest{ProductID: beer.ID.String(), BarID: src.ID.String(), Quantity: 40})
	require.NoError(t, err)
	_, err = f.svc.Assign(ctx, dto.AssignRequest{ProductID: gin.ID.String(), BarID: src.ID.String(), Quantity: 5})
	require.NoError(t, err)
	_, err = f.svc.Move(ctx, dto.MoveRequest{
		ProductID: beer.ID.String(),
		FromBarID: src.ID.String(),
		ToBarID:   dst.ID.String(),
		Quantity:  15,
	})
	require.NoError(t, err)

	t.Run("lists newest first", func(t *testing.T) {
		rows, err := f.svc.Movements(ctx, dto.MovementsQuery{})
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, "move_in", rows[0].Type)
		assert.Equal(t, "assign", rows[3].Type)
	})

	t.Run("filter by product", func(t *testing.T) {
		rows, err := f.svc.Movements(ctx, dto.MovementsQuery{ProductID: beer.ID.String()})
		require.NoError(t, err)
		require.Len(t, rows, 3)
		for _, row := range rows {
			assert.Equal(t, beer.ID.String(), row.ProductID)
		}
	})

	t.Run("limit caps the page", func(t *testing.T) {
		rows, err := f.svc.Movements(ctx, dto.MovementsQuery{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, rows, 2)
	})

	t.Run("malformed product filter is a validation error", func(t *testing.T) {
		_, err := f.svc.Movements(ctx, dto.MovementsQuery{ProductID: "nope"})
		require.Error(t, err)
		assert.Equal(t, apierror.KindValidation, apierror.KindOf(err))
	})
}
