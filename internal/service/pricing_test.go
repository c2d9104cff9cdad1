package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingCalculate(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	catalog := NewCatalogService(db)
	svc := NewPricingService(db, catalog)

	t.Run("base plus components plus electrical", func(t *testing.T) {
		result, err := svc.Calculate(f.Lamp.ID,
			[]SlotInput{{ComponentID: f.Shade.ID}},
			[]ElectricalInput{{PartID: f.LED.ID}},
		)
		require.NoError(t, err)
		assert.InDelta(t, 89.00, result.BasePrice, 0.001)
		assert.InDelta(t, 18.00, result.ComponentsTotal, 0.001)
		assert.InDelta(t, 12.00, result.ElectricalTotal, 0.001)
		assert.InDelta(t, 119.00, result.Total, 0.001)
	})

	t.Run("total is the sum of base and breakdown lines", func(t *testing.T) {
		result, err := svc.Calculate(f.Lamp.ID,
			[]SlotInput{{ComponentID: f.Shade.ID, Quantity: 2}, {ComponentID: f.Base.ID}},
			[]ElectricalInput{{PartID: f.LED.ID, Quantity: 3}},
		)
		require.NoError(t, err)

		sum := result.BasePrice
		for _, line := range result.Breakdown {
			sum += line.LineTotal
		}
		assert.InDelta(t, sum, result.Total, 0.001)
	})

	t.Run("breakdown preserves input order, slots first", func(t *testing.T) {
		result, err := svc.Calculate(f.Lamp.ID,
			[]SlotInput{{ComponentID: f.Base.ID}, {ComponentID: f.Shade.ID}},
			[]ElectricalInput{{PartID: f.LED.ID}},
		)
		require.NoError(t, err)
		require.Len(t, result.Breakdown, 3)
		assert.Equal(t, "component", result.Breakdown[0].Type)
		assert.Equal(t, f.Base.ID, result.Breakdown[0].ID)
		assert.Equal(t, "component", result.Breakdown[1].Type)
		assert.Equal(t, f.Shade.ID, result.Breakdown[1].ID)
		assert.Equal(t, "electrical", result.Breakdown[2].Type)
	})

	t.Run("quantity defaults to one", func(t *testing.T) {
		result, err := svc.Calculate(f.Lamp.ID, []SlotInput{{ComponentID: f.Shade.ID}}, nil)
		require.NoError(t, err)
		require.Len(t, result.Breakdown, 1)
		assert.Equal(t, 1, result.Breakdown[0].Quantity)
		assert.InDelta(t, 18.00, result.Breakdown[0].LineTotal, 0.001)
	})

	t.Run("missing lamp is not found", func(t *testing.T) {
		_, err := svc.Calculate(99999, nil, nil)
		assert.Equal(t, KindNotFound, KindOf(err))
	})

	t.Run("missing component is a bad request", func(t *testing.T) {
		_, err := svc.Calculate(f.Lamp.ID, []SlotInput{{ComponentID: 99999}}, nil)
		assert.Equal(t, KindBadRequest, KindOf(err))
	})

	t.Run("missing electrical part is a bad request", func(t *testing.T) {
		_, err := svc.Calculate(f.Lamp.ID, nil, []ElectricalInput{{PartID: 99999}})
		assert.Equal(t, KindBadRequest, KindOf(err))
	})

	t.Run("no slots or parts means base price only", func(t *testing.T) {
		result, err := svc.Calculate(f.Lamp.ID, nil, nil)
		require.NoError(t, err)
		assert.InDelta(t, 89.00, result.Total, 0.001)
		assert.Empty(t, result.Breakdown)
	})
}
