package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Giuseppe84/vespera/internal/models"
)

func TestConfiguratorCreate(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	_, pricing, svc := newConfigurator(db)
	user := createUser(t, db, "anna@example.com")

	t.Run("creates a draft with snapshotted prices", func(t *testing.T) {
		config, err := svc.Create(user.ID, CreateConfigurationInput{
			LampID: f.Lamp.ID,
			Slots: []SlotInput{
				{ComponentID: f.Shade.ID, ColorHex: "#F5F5F0", ColorName: "Milk White", SlotLabel: "Shade"},
			},
			ElectricalParts: []ElectricalInput{{PartID: f.LED.ID}},
		})
		require.NoError(t, err)
		assert.Equal(t, models.ConfigStatusDraft, config.Status)
		assert.Equal(t, "La mia Vespera Classic", config.Name)
		assert.InDelta(t, 119.00, config.TotalPrice, 0.001)
		require.Len(t, config.Slots, 1)
		assert.InDelta(t, 18.00, config.Slots[0].UnitPrice, 0.001)
		assert.Equal(t, "Milk White", config.Slots[0].ColorName)
		require.Len(t, config.ElectricalParts, 1)
		assert.InDelta(t, 12.00, config.ElectricalParts[0].UnitPrice, 0.001)
	})

	t.Run("persisted total matches the preview", func(t *testing.T) {
		slots := []SlotInput{{ComponentID: f.Shade.ID}, {ComponentID: f.Base.ID, Quantity: 2}}
		parts := []ElectricalInput{{PartID: f.LED.ID}}

		preview, err := pricing.Calculate(f.Lamp.ID, slots, parts)
		require.NoError(t, err)

		config, err := svc.Create(user.ID, CreateConfigurationInput{LampID: f.Lamp.ID, Slots: slots, ElectricalParts: parts})
		require.NoError(t, err)
		assert.InDelta(t, preview.Total, config.TotalPrice, 0.001)
	})

	t.Run("non-configurable lamp is rejected", func(t *testing.T) {
		_, err := svc.Create(user.ID, CreateConfigurationInput{LampID: f.Plain.ID, Slots: []SlotInput{}})
		assert.Equal(t, KindBadRequest, KindOf(err))
	})

	t.Run("missing lamp is not found", func(t *testing.T) {
		_, err := svc.Create(user.ID, CreateConfigurationInput{LampID: 99999})
		assert.Equal(t, KindNotFound, KindOf(err))
	})
}

func TestConfiguratorLifecycle(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	_, _, svc := newConfigurator(db)
	user := createUser(t, db, "anna@example.com")
	other := createUser(t, db, "bruno@example.com")

	create := func(t *testing.T) *models.LampConfiguration {
		config, err := svc.Create(user.ID, CreateConfigurationInput{
			LampID:          f.Lamp.ID,
			Slots:           []SlotInput{{ComponentID: f.Shade.ID, SlotLabel: "Shade"}},
			ElectricalParts: []ElectricalInput{{PartID: f.LED.ID}},
		})
		require.NoError(t, err)
		return config
	}

	t.Run("update replaces slots and recomputes the total", func(t *testing.T) {
		config := create(t)

		updated, err := svc.Update(config.ID, user.ID, UpdateConfigurationInput{
			Slots:           []SlotInput{{ComponentID: f.Base.ID}, {ComponentID: f.Stem.ID}},
			ElectricalParts: []ElectricalInput{},
		})
		require.NoError(t, err)
		assert.Equal(t, models.ConfigStatusSaved, updated.Status)
		// 89 + 14 + 8, old shade slot and LED line gone.
		assert.InDelta(t, 111.00, updated.TotalPrice, 0.001)
		require.Len(t, updated.Slots, 2)
		assert.Empty(t, updated.ElectricalParts)
	})

	t.Run("name-only update keeps the stored total", func(t *testing.T) {
		config := create(t)
		name := "Living room lamp"

		updated, err := svc.Update(config.ID, user.ID, UpdateConfigurationInput{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, name, updated.Name)
		assert.Equal(t, models.ConfigStatusSaved, updated.Status)
		assert.InDelta(t, config.TotalPrice, updated.TotalPrice, 0.001)
		require.Len(t, updated.Slots, 1)
	})

	t.Run("slot update does not touch the configuration total", func(t *testing.T) {
		config := create(t)
		qty := 3

		slot, err := svc.UpdateSlot(config.Slots[0].ID, user.ID, UpdateSlotInput{Quantity: &qty})
		require.NoError(t, err)
		assert.Equal(t, config.Slots[0].ID, slot.ID)

		reloaded, err := svc.FindOne(config.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, reloaded.Slots[0].Quantity)
		assert.InDelta(t, config.TotalPrice, reloaded.TotalPrice, 0.001)
	})

	t.Run("ordered configuration rejects update, slot update and archive", func(t *testing.T) {
		config := create(t)
		require.NoError(t, db.Model(&models.LampConfiguration{}).Where("id = ?", config.ID).Update("status", models.ConfigStatusOrdered).Error)

		name := "too late"
		_, err := svc.Update(config.ID, user.ID, UpdateConfigurationInput{Name: &name})
		assert.Equal(t, KindBadRequest, KindOf(err))

		qty := 2
		_, err = svc.UpdateSlot(config.Slots[0].ID, user.ID, UpdateSlotInput{Quantity: &qty})
		assert.Equal(t, KindBadRequest, KindOf(err))

		err = svc.Archive(config.ID, user.ID)
		assert.Equal(t, KindBadRequest, KindOf(err))
	})

	t.Run("duplicate copies prices verbatim", func(t *testing.T) {
		config := create(t)

		// A later catalog price change must not leak into the copy.
		require.NoError(t, db.Model(&models.Component{}).Where("id = ?", f.Shade.ID).Update("unit_cost", 99.00).Error)
		t.Cleanup(func() {
			require.NoError(t, db.Model(&models.Component{}).Where("id = ?", f.Shade.ID).Update("unit_cost", 18.00).Error)
		})

		dup, err := svc.Duplicate(config.ID, user.ID)
		require.NoError(t, err)
		assert.Equal(t, config.Name+" (copia)", dup.Name)
		assert.Equal(t, models.ConfigStatusDraft, dup.Status)
		assert.InDelta(t, config.TotalPrice, dup.TotalPrice, 0.001)
		require.Len(t, dup.Slots, 1)
		assert.InDelta(t, 18.00, dup.Slots[0].UnitPrice, 0.001)
	})

	t.Run("archive hides from the list", func(t *testing.T) {
		config := create(t)
		require.NoError(t, svc.Archive(config.ID, user.ID))

		configs, err := svc.FindAllByUser(user.ID)
		require.NoError(t, err)
		for _, c := range configs {
			assert.NotEqual(t, config.ID, c.ID)
		}
	})

	t.Run("other users cannot touch it", func(t *testing.T) {
		config := create(t)

		_, err := svc.FindOne(config.ID, other.ID)
		assert.Equal(t, KindForbidden, KindOf(err))

		_, err = svc.Duplicate(config.ID, other.ID)
		assert.Equal(t, KindForbidden, KindOf(err))

		qty := 2
		_, err = svc.UpdateSlot(config.Slots[0].ID, other.ID, UpdateSlotInput{Quantity: &qty})
		assert.Equal(t, KindForbidden, KindOf(err))
	})
}

func TestAvailableComponents(t *testing.T) {
	db := newTestDB(t)
	f := seedCatalog(t, db)
	_, _, svc := newConfigurator(db)

	result, err := svc.AvailableComponents(f.Lamp.ID)
	require.NoError(t, err)
	require.Len(t, result.Components, 2)
	assert.Equal(t, "Shade", result.Components[0].PositionLabel)
	require.Len(t, result.ElectricalParts, 1)
	// Both seeded edges touch the lamp's components (shade, base).
	assert.Len(t, result.Compatibility, 2)

	_, err = svc.AvailableComponents(99999)
	assert.Equal(t, KindNotFound, KindOf(err))
}
