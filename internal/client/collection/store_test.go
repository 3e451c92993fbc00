package collection

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/dmitrijs2005/tcgexchange/internal/client/cards"
	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
	"github.com/dmitrijs2005/tcgexchange/internal/common"
	"github.com/dmitrijs2005/tcgexchange/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPersister struct {
	mu      sync.Mutex
	wanted  models.CollectionMap
	giving  models.CollectionMap
	saves   int
	failSet error
	failGet error
}

func (m *memPersister) Wanted(context.Context) (models.CollectionMap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet != nil {
		return nil, m.failGet
	}
	return m.wanted.Clone(), nil
}

func (m *memPersister) SetWanted(_ context.Context, c models.CollectionMap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.saves++
	m.wanted = c.Clone()
	return nil
}

func (m *memPersister) Giving(context.Context) (models.CollectionMap, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.giving.Clone(), nil
}

func (m *memPersister) SetGiving(_ context.Context, c models.CollectionMap) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSet != nil {
		return m.failSet
	}
	m.saves++
	m.giving = c.Clone()
	return nil
}

type countingNotifier struct {
	mu sync.Mutex
	n  int
}

func (c *countingNotifier) Trigger() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *countingNotifier) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *memPersister, *countingNotifier) {
	t.Helper()
	p := &memPersister{}
	n := &countingNotifier{}
	opts = append([]Option{WithNotifier(n)}, opts...)
	return New(p, logging.Nop(), opts...), p, n
}

func TestSet_PersistsAndNotifies(t *testing.T) {
	s, p, n := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, Wanted, "a1-7", 2))
	require.NoError(t, s.Set(ctx, Giving, "B1-3", 1))

	assert.Equal(t, models.CollectionMap{"A1-7": 2}, p.wanted)
	assert.Equal(t, models.CollectionMap{"B1-3": 1}, p.giving)
	assert.Equal(t, 2, n.count())
}

func TestSet_ZeroRemovesKey(t *testing.T) {
	s, p, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, Wanted, "A1-7", 2))
	require.NoError(t, s.Set(ctx, Wanted, "A1-7", 0))

	w, _ := s.Snapshot()
	assert.Empty(t, w)
	assert.Empty(t, p.wanted)
}

func TestSet_RejectsBadInput(t *testing.T) {
	s, _, n := newTestStore(t)
	ctx := context.Background()

	require.ErrorIs(t, s.Set(ctx, Wanted, "A1-7", -1), common.ErrInvalidCount)
	require.ErrorIs(t, s.Set(ctx, Wanted, "nope", 1), common.ErrInvalidCardID)
	require.Error(t, s.Set(ctx, Kind("other"), "A1-1", 1))
	assert.Zero(t, n.count())
}

func TestAdd_ClampsAtZero(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Add(ctx, Giving, "A1-7", 2))
	require.NoError(t, s.Add(ctx, Giving, "A1-7", 3))
	_, g := s.Snapshot()
	assert.Equal(t, models.CollectionMap{"A1-7": 5}, g)

	require.NoError(t, s.Add(ctx, Giving, "A1-7", -10))
	_, g = s.Snapshot()
	assert.Empty(t, g)

	require.NoError(t, s.Add(ctx, Wanted, "A1-8", -1))
	w, _ := s.Snapshot()
	assert.Empty(t, w)
}

func TestReplace_DropsNonPositive(t *testing.T) {
	s, p, n := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, Wanted, "A1-1", 1))
	require.NoError(t, s.Replace(ctx, Wanted, models.CollectionMap{"A1-2": 3, "A1-3": 0, "A1-4": -2}))

	assert.Equal(t, models.CollectionMap{"A1-2": 3}, p.wanted)
	assert.Equal(t, 2, n.count())

	require.NoError(t, s.Replace(ctx, Giving, nil))
	_, g := s.Snapshot()
	assert.Empty(t, g)
}

func TestMutation_PersistFailureIsReturnedWithoutNotify(t *testing.T) {
	s, p, n := newTestStore(t)
	p.failSet = errors.New("disk full")

	err := s.Set(context.Background(), Wanted, "A1-1", 1)
	require.ErrorContains(t, err, "disk full")
	assert.Zero(t, n.count())
}

func TestDerivedRows_FilteredSortedAndJoined(t *testing.T) {
	catalog := cards.NewMemoryCatalog(
		cards.Card{Set: "A1", Number: 7, RarityCode: "C", Packs: []string{"pikachu"}},
		cards.Card{Set: "A1", Number: 12, RarityCode: "RR"},
	)
	s, _, _ := newTestStore(t, WithCatalog(catalog))
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, Wanted, "A1-12", 1))
	require.NoError(t, s.Set(ctx, Wanted, "A1-7", 2))
	require.NoError(t, s.Set(ctx, Wanted, "A0-99", 4))

	want := []models.CardCount{
		{ID: "A0-99", Set: "A0", Number: 99, Count: 4},
		{ID: "A1-7", Set: "A1", Number: 7, Count: 2, Rarity: "C", Packs: []string{"pikachu"}},
		{ID: "A1-12", Set: "A1", Number: 12, Count: 1, Rarity: "RR"},
	}
	if diff := cmp.Diff(want, s.WantedCards()); diff != "" {
		t.Fatalf("wanted rows mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, s.GivingCards())
	assert.Equal(t, s.WantedCards(), s.Cards(Wanted))
}

func TestDerivedRows_RecomputedAfterMutation(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, Giving, "A1-1", 1))
	require.Len(t, s.GivingCards(), 1)

	require.NoError(t, s.Set(ctx, Giving, "A1-1", 0))
	require.Empty(t, s.GivingCards())
}

func TestStepFlags(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	assert.False(t, s.IsWantedStepComplete())
	assert.False(t, s.IsGivingStepComplete())
	assert.True(t, s.IsAccountIncomplete())

	require.NoError(t, s.Set(ctx, Wanted, "A1-1", 1))
	assert.True(t, s.IsWantedStepComplete())
	assert.True(t, s.IsAccountIncomplete())

	require.NoError(t, s.Set(ctx, Giving, "A1-2", 1))
	assert.True(t, s.IsGivingStepComplete())
	assert.False(t, s.IsAccountIncomplete())

	require.NoError(t, s.Set(ctx, Wanted, "A1-1", 0))
	assert.True(t, s.IsAccountIncomplete())
}

func TestImport_EqualIsNoop(t *testing.T) {
	s, p, n := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, Wanted, "A1-1", 2))
	require.NoError(t, s.Set(ctx, Giving, "A1-2", 1))
	saves, notified := p.saves, n.count()

	changed, err := s.Import(ctx,
		[]models.CardCount{{ID: "A1-1", Count: 2}},
		[]models.CardCount{{ID: "A1-2", Count: 1}, {ID: "A1-3", Count: 0}},
	)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, saves, p.saves)
	assert.Equal(t, notified, n.count())
}

func TestImport_DifferentReplacesBoth(t *testing.T) {
	s, p, n := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, Wanted, "A1-1", 2))
	notified := n.count()

	changed, err := s.Import(ctx,
		[]models.CardCount{{Set: "a2", Number: 5, Count: 1}},
		[]models.CardCount{{ID: "A1-9", Count: 3}},
	)
	require.NoError(t, err)
	assert.True(t, changed)

	w, g := s.Snapshot()
	assert.Equal(t, models.CollectionMap{"A2-5": 1}, w)
	assert.Equal(t, models.CollectionMap{"A1-9": 3}, g)
	assert.Equal(t, w, p.wanted)
	assert.Equal(t, g, p.giving)
	assert.Equal(t, notified+1, n.count())
}

func TestReset_ClearsWithoutNotify(t *testing.T) {
	s, p, n := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, Wanted, "A1-1", 2))
	notified := n.count()

	s.Reset()

	w, g := s.Snapshot()
	assert.Empty(t, w)
	assert.Empty(t, g)
	assert.Equal(t, notified, n.count())
	assert.NotEmpty(t, p.wanted, "reset does not touch storage")
}

func TestHydrate_LoadsFromPersister(t *testing.T) {
	p := &memPersister{
		wanted: models.CollectionMap{"A1-1": 1},
		giving: models.CollectionMap{"A1-2": 2},
	}
	n := &countingNotifier{}
	s := New(p, logging.Nop(), WithNotifier(n))

	require.NoError(t, s.Hydrate(context.Background()))
	w, g := s.Snapshot()
	assert.Equal(t, p.wanted, w)
	assert.Equal(t, p.giving, g)
	assert.Zero(t, n.count())
}

func TestHydrate_UnreadableMapStartsEmpty(t *testing.T) {
	p := &memPersister{
		giving:  models.CollectionMap{"A1-2": 2},
		failGet: fmt.Errorf("decode wanted_cards: %w", common.ErrLocalDataNotAvailable),
	}
	s := New(p, logging.Nop())

	require.NoError(t, s.Hydrate(context.Background()))
	w, g := s.Snapshot()
	assert.Empty(t, w)
	assert.Equal(t, models.CollectionMap{"A1-2": 2}, g)
}

func TestHydrate_StorageFailureIsReturned(t *testing.T) {
	p := &memPersister{failGet: errors.New("database is locked")}
	s := New(p, logging.Nop())

	err := s.Hydrate(context.Background())
	require.ErrorContains(t, err, "load wanted cards")
	require.ErrorContains(t, err, "database is locked")
}

func TestImport_ConcurrentWithSet(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_, err := s.Import(ctx, []models.CardCount{{ID: "A1-1", Count: i%5 + 1}}, nil)
			assert.NoError(t, err)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			assert.NoError(t, s.Set(ctx, Wanted, fmt.Sprintf("A1-%d", i%7+2), i%3+1))
		}
	}()
	wg.Wait()

	w, _ := s.Snapshot()
	assert.Contains(t, w, "A1-1")
}

func TestImport_ServerIDsAreNormalized(t *testing.T) {
	s, p, n := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Set(ctx, Wanted, "A1-7", 2))
	saves, notified := p.saves, n.count()

	changed, err := s.Import(ctx, []models.CardCount{{ID: "a1-007", Count: 2}}, nil)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, saves, p.saves)
	assert.Equal(t, notified, n.count())
}

func TestSnapshot_IsACopy(t *testing.T) {
	s, _, _ := newTestStore(t)
	require.NoError(t, s.Set(context.Background(), Wanted, "A1-1", 1))

	w, _ := s.Snapshot()
	w["A1-1"] = 100

	w2, _ := s.Snapshot()
	assert.Equal(t, 1, w2["A1-1"])
}
