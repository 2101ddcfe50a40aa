package favorites

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/ayodelep/weathercat/internal/catalog"
	"github.com/ayodelep/weathercat/pkg/common"
	"github.com/ayodelep/weathercat/pkg/logger"
)

// UsageRecorder is invoked whenever an entry is played so usage can be
// persisted out of band.
type UsageRecorder func(ctx context.Context, locationID int64) error

// Manager keeps an ordered in-memory list of favorite locations with a
// movable 1-based cursor. All methods are safe for concurrent use.
//
// The cursor is stored as a raw position and normalized against the current
// list length on every read, so removals never leave it dangling.
type Manager struct {
	mu       sync.Mutex
	items    []catalog.Location
	cursor   int
	recorder UsageRecorder
}

// NewManager creates an empty favorites list with the cursor at position 1
func NewManager(recorder UsageRecorder) *Manager {
	return &Manager{cursor: 1, recorder: recorder}
}

// ParseID converts a raw ID into an int64, echoing the offending value in
// the error message when it is not an integer.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, common.NewValidationError("invalid location id: %s", raw)
	}
	return id, nil
}

// ValidateName checks that a location name is usable, echoing the value
// back on failure.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return common.NewValidationError("invalid location name: %s", name)
	}
	return nil
}

// ValidateID checks that an ID is well-formed and, when checkMembership is
// set, that it refers to a current favorite.
func (m *Manager) ValidateID(id int64, checkMembership bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.validateID(id, checkMembership)
}

func (m *Manager) validateID(id int64, checkMembership bool) error {
	if id < 0 {
		return common.NewValidationError("invalid location id: %d", id)
	}
	if checkMembership && m.indexOfID(id) < 0 {
		return common.NewNotFoundError("location with id: %d not found in favorites", id)
	}
	return nil
}

// Add appends a location to the end of the list
func (m *Manager) Add(loc catalog.Location) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validateID(loc.ID, false); err != nil {
		return err
	}
	if err := ValidateName(loc.Name); err != nil {
		return err
	}
	if m.indexOfID(loc.ID) >= 0 {
		return common.NewDuplicateError("location with id: %d is already in favorites", loc.ID)
	}

	m.items = append(m.items, loc)
	logger.Debug("favorite added", zap.Int64("id", loc.ID), zap.String("name", loc.Name))
	return nil
}

// RemoveByID removes the favorite with the given ID
func (m *Manager) RemoveByID(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return common.NewEmptyError("the favorites list is empty")
	}
	if err := m.validateID(id, true); err != nil {
		return err
	}

	idx := m.indexOfID(id)
	m.items = append(m.items[:idx], m.items[idx+1:]...)
	return nil
}

// RemoveByName removes the favorite with the given name
func (m *Manager) RemoveByName(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return common.NewEmptyError("the favorites list is empty")
	}
	if err := ValidateName(name); err != nil {
		return err
	}

	idx := m.indexOfName(name)
	if idx < 0 {
		return common.NewNotFoundError("location with name: %s not found in favorites", name)
	}
	m.items = append(m.items[:idx], m.items[idx+1:]...)
	return nil
}

// Clear empties the list and resets the cursor to 1. Clearing an
// already-empty list succeeds with a warning.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		logger.Warn("clearing an already empty favorites list")
	}
	m.items = nil
	m.cursor = 1
}

// All returns a copy of the list in order
func (m *Manager) All() ([]catalog.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return nil, common.NewEmptyError("the favorites list is empty")
	}
	out := make([]catalog.Location, len(m.items))
	copy(out, m.items)
	return out, nil
}

// Len returns the number of favorites
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// GetByID returns the favorite with the given ID
func (m *Manager) GetByID(id int64) (catalog.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return catalog.Location{}, common.NewEmptyError("the favorites list is empty")
	}
	if err := m.validateID(id, true); err != nil {
		return catalog.Location{}, err
	}
	return m.items[m.indexOfID(id)], nil
}

// GetByName returns the favorite with the given name
func (m *Manager) GetByName(name string) (catalog.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return catalog.Location{}, common.NewEmptyError("the favorites list is empty")
	}
	if err := ValidateName(name); err != nil {
		return catalog.Location{}, err
	}
	idx := m.indexOfName(name)
	if idx < 0 {
		return catalog.Location{}, common.NewNotFoundError("location with name: %s not found in favorites", name)
	}
	return m.items[idx], nil
}

// MoveToBeginning moves the favorite with the given ID to the front,
// preserving the relative order of the rest.
func (m *Manager) MoveToBeginning(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return common.NewEmptyError("the favorites list is empty")
	}
	if err := m.validateID(id, true); err != nil {
		return err
	}

	idx := m.indexOfID(id)
	loc := m.items[idx]
	m.items = append(m.items[:idx], m.items[idx+1:]...)
	m.items = append([]catalog.Location{loc}, m.items...)
	return nil
}

// MoveToEnd moves the favorite with the given ID to the back, preserving
// the relative order of the rest.
func (m *Manager) MoveToEnd(id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return common.NewEmptyError("the favorites list is empty")
	}
	if err := m.validateID(id, true); err != nil {
		return err
	}

	idx := m.indexOfID(id)
	loc := m.items[idx]
	m.items = append(m.items[:idx], m.items[idx+1:]...)
	m.items = append(m.items, loc)
	return nil
}

// Swap exchanges the positions of two favorites
func (m *Manager) Swap(id1, id2 int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return common.NewEmptyError("the favorites list is empty")
	}
	if err := m.validateID(id1, true); err != nil {
		return err
	}
	if err := m.validateID(id2, true); err != nil {
		return err
	}
	if id1 == id2 {
		return common.NewValidationError("cannot swap a location with itself: %d", id1)
	}

	i, j := m.indexOfID(id1), m.indexOfID(id2)
	m.items[i], m.items[j] = m.items[j], m.items[i]
	return nil
}

// Current returns the favorite at the cursor and its 1-based position
// without moving the cursor.
func (m *Manager) Current() (catalog.Location, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return catalog.Location{}, 0, common.NewEmptyError("the favorites list is empty")
	}
	pos := normalize(m.cursor, len(m.items))
	return m.items[pos-1], pos, nil
}

// Advance returns the favorite at the cursor, records its usage, then moves
// the cursor one step forward, wrapping from the end to position 1.
func (m *Manager) Advance(ctx context.Context) (catalog.Location, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return catalog.Location{}, common.NewEmptyError("the favorites list is empty")
	}

	pos := normalize(m.cursor, len(m.items))
	loc := m.items[pos-1]

	if m.recorder != nil {
		if err := m.recorder(ctx, loc.ID); err != nil {
			return catalog.Location{}, err
		}
	}

	m.cursor = pos%len(m.items) + 1
	logger.Debug("favorite played", zap.Int64("id", loc.ID), zap.Int("next_position", m.cursor))
	return loc, nil
}

// GoTo moves the cursor to the given position. Positions outside 1..len
// wrap around modulo the list length.
func (m *Manager) GoTo(position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return common.NewEmptyError("the favorites list is empty")
	}
	m.cursor = normalize(position, len(m.items))
	return nil
}

// GoToName moves the cursor to the favorite with the given name
func (m *Manager) GoToName(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.items) == 0 {
		return common.NewEmptyError("the favorites list is empty")
	}
	if err := ValidateName(name); err != nil {
		return err
	}
	idx := m.indexOfName(name)
	if idx < 0 {
		return common.NewNotFoundError("location with name: %s not found in favorites", name)
	}
	m.cursor = idx + 1
	return nil
}

// indexOfID returns the 0-based index of the favorite with the given ID,
// or -1. Callers must hold the lock.
func (m *Manager) indexOfID(id int64) int {
	for i, loc := range m.items {
		if loc.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) indexOfName(name string) int {
	for i, loc := range m.items {
		if loc.Name == name {
			return i
		}
	}
	return -1
}

// normalize maps any integer position onto 1..length
func normalize(position, length int) int {
	p := (position - 1) % length
	if p < 0 {
		p += length
	}
	return p + 1
}
