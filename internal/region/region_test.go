package region

import (
	"testing"

	"github.com/shenikar/fire_monitoring_system/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_Known(t *testing.T) {
	r := NewResolver()

	reg, err := r.Resolve("punjab")
	require.NoError(t, err)
	assert.Equal(t, "Punjab", reg.Label)
	assert.Equal(t, KindState, reg.Kind)

	reg, err = r.Resolve("  Ludhiana ")
	require.NoError(t, err)
	assert.Equal(t, KindCity, reg.Kind)
}

func TestResolve_EmptyIsDefault(t *testing.T) {
	r := NewResolver()

	reg, err := r.Resolve("")
	require.NoError(t, err)
	assert.Equal(t, DefaultID, reg.ID)
	assert.True(t, reg.IsAggregate())
}

func TestResolve_Unknown(t *testing.T) {
	r := NewResolver()

	_, err := r.Resolve("atlantis")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnknownRegion)
}

func TestAggregate_IsUnionOfTable(t *testing.T) {
	r := NewResolver()
	agg := r.Default()

	assert.Equal(t, 23.0, agg.Bounds.MinLat)
	assert.Equal(t, 33.2, agg.Bounds.MaxLat)
	assert.Equal(t, 69.5, agg.Bounds.MinLon)
	assert.Equal(t, 84.6, agg.Bounds.MaxLon)
}

func TestQueryBounds(t *testing.T) {
	r := NewResolver()

	// Агрегированный регион выбирает всё, что допускает загрузка
	agg := r.Default().QueryBounds()
	assert.True(t, agg.Contains(21.5, 86.5))
	assert.True(t, agg.Contains(models.EnvelopeMinLat, models.EnvelopeMinLon))
	assert.True(t, agg.Contains(models.EnvelopeMaxLat, models.EnvelopeMaxLon))
	assert.False(t, r.Default().Bounds.Contains(21.5, 86.5))

	punjab, err := r.Resolve("punjab")
	require.NoError(t, err)
	assert.Equal(t, punjab.Bounds, punjab.QueryBounds())
}

func TestContains_InclusiveBounds(t *testing.T) {
	r := NewResolver()
	punjab, err := r.Resolve("punjab")
	require.NoError(t, err)

	assert.True(t, r.Contains(punjab, 29.5, 73.5))
	assert.True(t, r.Contains(punjab, 32.5, 76.5))
	assert.False(t, r.Contains(punjab, 29.49, 74.0))
	assert.False(t, r.Contains(punjab, 30.0, 76.51))
}

func TestContains_AggregateAlwaysTrue(t *testing.T) {
	r := NewResolver()

	assert.True(t, r.Contains(r.Default(), 0, 0))
	assert.True(t, r.Contains(r.Default(), 39.9, 87.9))
}

func TestStateFor(t *testing.T) {
	r := NewResolver()

	// Точка в пересечении Пенджаба и Харьяны: побеждает первый по таблице
	assert.Equal(t, "punjab", r.StateFor(30.0, 75.0))
	assert.Equal(t, "uttar-pradesh", r.StateFor(26.8, 80.9))
	assert.Equal(t, "", r.StateFor(21.0, 86.0))
}

func TestList_DefaultFirst(t *testing.T) {
	r := NewResolver()
	list := r.List()

	require.Len(t, list, 12)
	assert.Equal(t, DefaultID, list[0].ID)

	// Изменение копии не затрагивает справочник
	list[0].Label = "changed"
	assert.Equal(t, "All of Northern India", r.Default().Label)
}
