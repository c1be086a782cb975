package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"testing"
	"time"

	"github.com/vedantadhau820-alt/IdentityOS/internal/core/record"
	"github.com/vedantadhau820-alt/IdentityOS/internal/ports/secondary"
)

// ============================================================================
// Mock Implementations
// ============================================================================

// Ensure mocks implement the interfaces
var (
	_ secondary.DailyRecordRepository   = (*mockDailyRecordRepository)(nil)
	_ secondary.LocalStateStore         = (*mockLocalStateStore)(nil)
	_ secondary.ActivityEventRepository = (*mockActivityEventRepository)(nil)
	_ secondary.AssetCacheRepository    = (*mockAssetCacheRepository)(nil)
	_ secondary.AssetOrigin             = (*mockAssetOrigin)(nil)
)

// mockDailyRecordRepository implements secondary.DailyRecordRepository for testing.
type mockDailyRecordRepository struct {
	docs     map[string]*record.DailyRecord
	getErrs  map[string]error // by date key
	mergeErr error
	merges   int
}

func newMockDailyRecordRepository() *mockDailyRecordRepository {
	return &mockDailyRecordRepository{
		docs:    make(map[string]*record.DailyRecord),
		getErrs: make(map[string]error),
	}
}

func docKey(userID, dateKey string) string { return userID + "/" + dateKey }

func (m *mockDailyRecordRepository) Get(ctx context.Context, userID, dateKey string) (*record.DailyRecord, error) {
	if err := m.getErrs[dateKey]; err != nil {
		return nil, err
	}
	doc, ok := m.docs[docKey(userID, dateKey)]
	if !ok {
		return nil, nil
	}
	c := *doc
	return &c, nil
}

func (m *mockDailyRecordRepository) Merge(ctx context.Context, userID, dateKey string, patch *record.DailyRecord) error {
	if m.mergeErr != nil {
		return m.mergeErr
	}
	m.merges++
	doc, ok := m.docs[docKey(userID, dateKey)]
	if !ok {
		doc = &record.DailyRecord{}
		m.docs[docKey(userID, dateKey)] = doc
	}
	mergeFields(doc, patch)
	return nil
}

func mergeFields(dst, patch *record.DailyRecord) {
	if patch.Stability != nil {
		dst.Stability = patch.Stability
	}
	if patch.StrategicScore != nil {
		dst.StrategicScore = patch.StrategicScore
	}
	if patch.StabilityData != nil {
		dst.StabilityData = patch.StabilityData
	}
	if patch.Workout != nil {
		dst.Workout = patch.Workout
	}
	if patch.WorkoutScore != nil {
		dst.WorkoutScore = patch.WorkoutScore
	}
	if patch.WorkoutData != nil {
		dst.WorkoutData = patch.WorkoutData
	}
	if patch.Social != nil {
		dst.Social = patch.Social
	}
	if patch.SocialScore != nil {
		dst.SocialScore = patch.SocialScore
	}
	if patch.SocialData != nil {
		dst.SocialData = patch.SocialData
	}
	if patch.Observer != nil {
		dst.Observer = patch.Observer
	}
}

// seed stores a record with the given activities completed.
func (m *mockDailyRecordRepository) seed(userID, dateKey string, done ...record.Activity) {
	doc := &record.DailyRecord{}
	for _, a := range done {
		switch a {
		case record.ActivityStability:
			doc.Stability = record.Bool(true)
			doc.StrategicScore = record.Int(4)
		case record.ActivityWorkout:
			doc.Workout = record.Bool(true)
			doc.WorkoutScore = record.Int(4)
		case record.ActivitySocial:
			doc.Social = record.Bool(true)
			doc.SocialScore = record.Int(4)
		case record.ActivityObserver:
			doc.Observer = record.Bool(true)
		}
	}
	m.docs[docKey(userID, dateKey)] = doc
}

func (m *mockDailyRecordRepository) doc(userID, dateKey string) *record.DailyRecord {
	return m.docs[docKey(userID, dateKey)]
}

// mockLocalStateStore implements secondary.LocalStateStore for testing.
type mockLocalStateStore struct {
	state   *secondary.LocalStateRecord
	loadErr error
	saveErr error
	saves   int
}

func newMockLocalStateStore() *mockLocalStateStore {
	return &mockLocalStateStore{}
}

func (m *mockLocalStateStore) Load(ctx context.Context) (*secondary.LocalStateRecord, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	if m.state == nil {
		return nil, nil
	}
	return m.state.Clone(), nil
}

func (m *mockLocalStateStore) Save(ctx context.Context, state *secondary.LocalStateRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.state = state.Clone()
	return nil
}

// mockActivityEventRepository implements secondary.ActivityEventRepository for testing.
type mockActivityEventRepository struct {
	events    []*secondary.ActivityEventRecord
	createErr error
	listErr   error
	lastList  secondary.ActivityEventFilters
}

func newMockActivityEventRepository() *mockActivityEventRepository {
	return &mockActivityEventRepository{}
}

func (m *mockActivityEventRepository) Create(ctx context.Context, event *secondary.ActivityEventRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	if event.ID == "" {
		event.ID = fmt.Sprintf("EVT-%03d", len(m.events)+1)
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockActivityEventRepository) List(ctx context.Context, filters secondary.ActivityEventFilters) ([]*secondary.ActivityEventRecord, error) {
	m.lastList = filters
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.ActivityEventRecord
	for i := len(m.events) - 1; i >= 0; i-- {
		e := m.events[i]
		if filters.UserID != "" && e.UserID != filters.UserID {
			continue
		}
		if filters.Since != "" && e.DateKey < filters.Since {
			continue
		}
		if filters.Activity != "" && e.Activity != filters.Activity {
			continue
		}
		result = append(result, e)
	}
	if filters.Limit > 0 && len(result) > filters.Limit {
		result = result[:filters.Limit]
	}
	return result, nil
}

// mockAssetCacheRepository implements secondary.AssetCacheRepository for testing.
type mockAssetCacheRepository struct {
	entries map[string]map[string]*secondary.AssetRecord // version -> path -> entry
	putErr  error
}

func newMockAssetCacheRepository() *mockAssetCacheRepository {
	return &mockAssetCacheRepository{entries: make(map[string]map[string]*secondary.AssetRecord)}
}

func (m *mockAssetCacheRepository) PutAll(ctx context.Context, entries []*secondary.AssetRecord) error {
	if m.putErr != nil {
		return m.putErr
	}
	for _, e := range entries {
		if m.entries[e.Version] == nil {
			m.entries[e.Version] = make(map[string]*secondary.AssetRecord)
		}
		m.entries[e.Version][e.Path] = e
	}
	return nil
}

func (m *mockAssetCacheRepository) Get(ctx context.Context, version, path string) (*secondary.AssetRecord, error) {
	return m.entries[version][path], nil
}

func (m *mockAssetCacheRepository) Versions(ctx context.Context) ([]string, error) {
	var versions []string
	for v := range m.entries {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions, nil
}

func (m *mockAssetCacheRepository) DeleteVersion(ctx context.Context, version string) (int, error) {
	n := len(m.entries[version])
	delete(m.entries, version)
	return n, nil
}

func (m *mockAssetCacheRepository) Count(ctx context.Context, version string) (int, error) {
	return len(m.entries[version]), nil
}

// mockAssetOrigin implements secondary.AssetOrigin for testing.
type mockAssetOrigin struct {
	files   map[string]string
	missing map[string]bool
}

func (m *mockAssetOrigin) Fetch(ctx context.Context, path string) ([]byte, string, error) {
	if m.missing[path] {
		return nil, "", errors.New("not found")
	}
	return []byte(m.files[path]), "", nil
}

// fixedSource implements identity.Source with a scripted sequence.
type fixedSource struct {
	values []int
	i      int
}

func (f *fixedSource) IntN(n int) int {
	v := f.values[f.i%len(f.values)] % n
	f.i++
	return v
}

// testClock is a settable clock.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// ============================================================================
// Harness
// ============================================================================

const testUserID = "K48213"

// testToday is 2026-10-19 09:00 UTC.
var testToday = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type harness struct {
	clock      *testClock
	cal        *Calendar
	records    *mockDailyRecordRepository
	stateStore *mockLocalStateStore
	events     *mockActivityEventRepository
	state      *LocalState
	users      *IdentityServiceImpl
	store      *RecordStore
	locks      *LockBoard
	stats      *StatsServiceImpl
	tracker    *Tracker
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newHarness wires the application layer over mocks with a known user.
func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{
		clock:      &testClock{now: testToday},
		records:    newMockDailyRecordRepository(),
		stateStore: newMockLocalStateStore(),
		events:     newMockActivityEventRepository(),
		locks:      NewLockBoard(),
	}
	h.stateStore.state = &secondary.LocalStateRecord{UserID: testUserID}

	logger := testLogger()
	h.cal = NewCalendar(time.UTC, h.clock.Now)
	h.state = NewLocalState(h.stateStore, logger)
	h.users = NewIdentityService(h.state, &fixedSource{values: []int{0}}, logger)
	h.store = NewRecordStore(h.records, logger)
	h.stats = NewStatsService(h.users, h.store, h.cal, 0)
	h.tracker = &Tracker{
		Users:    h.users,
		Records:  h.store,
		Locks:    h.locks,
		Executor: NewEffectExecutor(h.store, h.locks, h.state, h.events, h.stats, h.cal, logger),
		Calendar: h.cal,
		Logger:   logger,
	}
	return h
}

// daysAgo returns the date key n days before the harness clock.
func (h *harness) daysAgo(n int) string {
	return h.cal.DaysAgo(n)
}
