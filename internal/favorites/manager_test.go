package favorites

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ayodelep/weathercat/internal/catalog"
	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/logger"
)

func init() {
	_ = logger.Init("development")
}

func seeded(t *testing.T, names ...string) *Manager {
	t.Helper()
	m := NewManager(nil)
	for i, name := range names {
		require.NoError(t, m.Add(catalog.Location{ID: int64(i + 1), Name: name}))
	}
	return m
}

func ids(t *testing.T, m *Manager) []int64 {
	t.Helper()
	all, err := m.All()
	require.NoError(t, err)
	out := make([]int64, len(all))
	for i, loc := range all {
		out[i] = loc.ID
	}
	return out
}

func TestAdd(t *testing.T) {
	m := NewManager(nil)

	require.NoError(t, m.Add(catalog.Location{ID: 1, Name: "Boston"}))
	assert.Equal(t, 1, m.Len())

	err := m.Add(catalog.Location{ID: 1, Name: "Boston"})
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.CodeDuplicate))

	err = m.Add(catalog.Location{ID: -1, Name: "Nowhere"})
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.CodeValidation))
	assert.Contains(t, err.Error(), "-1")

	err = m.Add(catalog.Location{ID: 2, Name: ""})
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.CodeValidation))
}

func TestRemove(t *testing.T) {
	m := seeded(t, "Boston", "Seattle", "Denver")

	require.NoError(t, m.RemoveByID(2))
	assert.Equal(t, []int64{1, 3}, ids(t, m))

	err := m.RemoveByID(2)
	assert.True(t, common.IsCode(err, common.CodeNotFound))

	require.NoError(t, m.RemoveByName("Denver"))
	assert.Equal(t, []int64{1}, ids(t, m))

	err = m.RemoveByName("Denver")
	assert.True(t, common.IsCode(err, common.CodeNotFound))
}

func TestRemoveFromEmptyList(t *testing.T) {
	m := NewManager(nil)

	err := m.RemoveByID(1)
	assert.True(t, common.IsCode(err, common.CodeEmpty))

	err = m.RemoveByName("Boston")
	assert.True(t, common.IsCode(err, common.CodeEmpty))
}

func TestClear(t *testing.T) {
	m := seeded(t, "Boston", "Seattle")
	require.NoError(t, m.GoTo(2))

	m.Clear()
	assert.Equal(t, 0, m.Len())

	// Clearing an empty list is allowed
	m.Clear()
	assert.Equal(t, 0, m.Len())

	// Cursor resets to 1
	require.NoError(t, m.Add(catalog.Location{ID: 9, Name: "Austin"}))
	loc, pos, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Equal(t, int64(9), loc.ID)
}

func TestAllEmpty(t *testing.T) {
	m := NewManager(nil)
	_, err := m.All()
	assert.True(t, common.IsCode(err, common.CodeEmpty))
}

func TestGetByIDAndName(t *testing.T) {
	m := seeded(t, "Boston", "Seattle")

	loc, err := m.GetByID(2)
	require.NoError(t, err)
	assert.Equal(t, "Seattle", loc.Name)

	_, err = m.GetByID(42)
	assert.True(t, common.IsCode(err, common.CodeNotFound))

	loc, err = m.GetByName("Boston")
	require.NoError(t, err)
	assert.Equal(t, int64(1), loc.ID)

	_, err = m.GetByName("Austin")
	assert.True(t, common.IsCode(err, common.CodeNotFound))
}

func TestValidateID(t *testing.T) {
	m := seeded(t, "Boston")

	assert.NoError(t, m.ValidateID(7, false))
	assert.NoError(t, m.ValidateID(1, true))

	err := m.ValidateID(-1, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "-1")

	err = m.ValidateID(7, true)
	assert.True(t, common.IsCode(err, common.CodeNotFound))
}

func TestParseID(t *testing.T) {
	id, err := ParseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ParseID("invalid")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Boston"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("   "))
}

func TestMoveToBeginning(t *testing.T) {
	m := seeded(t, "Boston", "Seattle", "Denver", "Austin")

	require.NoError(t, m.MoveToBeginning(3))
	assert.Equal(t, []int64{3, 1, 2, 4}, ids(t, m))

	// Moving the first element is a no-op on order
	require.NoError(t, m.MoveToBeginning(3))
	assert.Equal(t, []int64{3, 1, 2, 4}, ids(t, m))

	err := m.MoveToBeginning(42)
	assert.True(t, common.IsCode(err, common.CodeNotFound))
}

func TestMoveToEnd(t *testing.T) {
	m := seeded(t, "Boston", "Seattle", "Denver", "Austin")

	require.NoError(t, m.MoveToEnd(2))
	assert.Equal(t, []int64{1, 3, 4, 2}, ids(t, m))

	require.NoError(t, m.MoveToEnd(2))
	assert.Equal(t, []int64{1, 3, 4, 2}, ids(t, m))
}

func TestSwap(t *testing.T) {
	m := seeded(t, "Boston", "Seattle", "Denver")

	require.NoError(t, m.Swap(1, 3))
	assert.Equal(t, []int64{3, 2, 1}, ids(t, m))

	// Swapping twice restores the original order
	require.NoError(t, m.Swap(1, 3))
	assert.Equal(t, []int64{1, 2, 3}, ids(t, m))

	err := m.Swap(2, 2)
	require.Error(t, err)
	assert.True(t, common.IsCode(err, common.CodeValidation))

	err = m.Swap(1, 42)
	assert.True(t, common.IsCode(err, common.CodeNotFound))
}

func TestAdvanceCyclesThroughList(t *testing.T) {
	m := seeded(t, "Boston", "Seattle")

	loc, err := m.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Boston", loc.Name)

	loc, err = m.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Seattle", loc.Name)

	// Wraps back to the first entry
	loc, err = m.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Boston", loc.Name)
}

func TestAdvanceRecordsUsage(t *testing.T) {
	var recorded []int64
	m := NewManager(func(_ context.Context, id int64) error {
		recorded = append(recorded, id)
		return nil
	})
	require.NoError(t, m.Add(catalog.Location{ID: 10, Name: "Boston"}))
	require.NoError(t, m.Add(catalog.Location{ID: 20, Name: "Seattle"}))

	_, err := m.Advance(context.Background())
	require.NoError(t, err)
	_, err = m.Advance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 20}, recorded)
}

func TestAdvanceRecorderFailureDoesNotMoveCursor(t *testing.T) {
	boom := errors.New("db down")
	m := NewManager(func(_ context.Context, _ int64) error { return boom })
	require.NoError(t, m.Add(catalog.Location{ID: 1, Name: "Boston"}))
	require.NoError(t, m.Add(catalog.Location{ID: 2, Name: "Seattle"}))

	_, err := m.Advance(context.Background())
	require.ErrorIs(t, err, boom)

	_, pos, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
}

func TestAdvanceEmpty(t *testing.T) {
	m := NewManager(nil)
	_, err := m.Advance(context.Background())
	assert.True(t, common.IsCode(err, common.CodeEmpty))
}

func TestGoToWrapsAround(t *testing.T) {
	m := seeded(t, "Boston", "Seattle", "Denver")

	require.NoError(t, m.GoTo(2))
	loc, pos, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, 2, pos)
	assert.Equal(t, "Seattle", loc.Name)

	// Positions beyond the length wrap modulo the list size
	require.NoError(t, m.GoTo(4))
	_, pos, err = m.Current()
	require.NoError(t, err)
	assert.Equal(t, 1, pos)

	require.NoError(t, m.GoTo(6))
	_, pos, err = m.Current()
	require.NoError(t, err)
	assert.Equal(t, 3, pos)
}

func TestGoToName(t *testing.T) {
	m := seeded(t, "Boston", "Seattle", "Denver")

	require.NoError(t, m.GoToName("Denver"))
	loc, pos, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, 3, pos)
	assert.Equal(t, "Denver", loc.Name)

	err = m.GoToName("Austin")
	assert.True(t, common.IsCode(err, common.CodeNotFound))
}

func TestCursorSurvivesRemovals(t *testing.T) {
	m := seeded(t, "Boston", "Seattle", "Denver")
	require.NoError(t, m.GoTo(3))

	// Shrinking the list below the cursor wraps it instead of dangling
	require.NoError(t, m.RemoveByID(3))
	require.NoError(t, m.RemoveByID(2))

	loc, pos, err := m.Current()
	require.NoError(t, err)
	assert.Equal(t, 1, pos)
	assert.Equal(t, "Boston", loc.Name)
}

func TestCurrentEmpty(t *testing.T) {
	m := NewManager(nil)
	_, _, err := m.Current()
	assert.True(t, common.IsCode(err, common.CodeEmpty))
}
