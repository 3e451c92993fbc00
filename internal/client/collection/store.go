// Package collection holds the user's "wanted" and "giving" card maps.
//
// Every mutation is persisted immediately and announced to a Notifier (the
// debounced sync scheduler). Derived views (card rows joined with the
// catalog and the step-completion flags) are computed on read from the
// current maps, so they can never be stale across a mutation.
//
// Store is safe for concurrent use: the scheduler reads it from its timer
// goroutine while commands mutate it.
package collection

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dmitrijs2005/tcgexchange/internal/client/cards"
	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
	"github.com/dmitrijs2005/tcgexchange/internal/common"
	"github.com/dmitrijs2005/tcgexchange/internal/logging"
)

// Persister saves and loads the two maps. localstore.Store implements it.
type Persister interface {
	Wanted(ctx context.Context) (models.CollectionMap, error)
	SetWanted(ctx context.Context, m models.CollectionMap) error
	Giving(ctx context.Context) (models.CollectionMap, error)
	SetGiving(ctx context.Context, m models.CollectionMap) error
}

// Notifier is told about every persisted mutation.
type Notifier interface {
	Trigger()
}

type nopNotifier struct{}

func (nopNotifier) Trigger() {}

type Kind string

const (
	Wanted Kind = "wanted"
	Giving Kind = "giving"
)

type Store struct {
	mu     sync.RWMutex
	wanted models.CollectionMap
	giving models.CollectionMap

	persist  Persister
	catalog  cards.Catalog
	notifier Notifier
	log      logging.Logger
}

type Option func(*Store)

func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

func WithCatalog(c cards.Catalog) Option {
	return func(s *Store) { s.catalog = c }
}

func New(p Persister, log logging.Logger, opts ...Option) *Store {
	s := &Store{
		wanted:   models.CollectionMap{},
		giving:   models.CollectionMap{},
		persist:  p,
		catalog:  cards.Empty,
		notifier: nopNotifier{},
		log:      log.With("component", "collection"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Hydrate loads both maps from persistent storage. It does not notify.
// A map that cannot be decoded is logged and starts empty.
func (s *Store) Hydrate(ctx context.Context) error {
	wanted, err := s.load(ctx, Wanted, s.persist.Wanted)
	if err != nil {
		return err
	}
	giving, err := s.load(ctx, Giving, s.persist.Giving)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.wanted = wanted.Clone()
	s.giving = giving.Clone()
	s.mu.Unlock()
	return nil
}

func (s *Store) load(ctx context.Context, kind Kind, get func(context.Context) (models.CollectionMap, error)) (models.CollectionMap, error) {
	m, err := get(ctx)
	if errors.Is(err, common.ErrLocalDataNotAvailable) {
		s.log.Warn(ctx, "stored collection unreadable, starting empty", "kind", kind, "error", err)
		return models.CollectionMap{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s cards: %w", kind, err)
	}
	return m, nil
}

// Set stores count for the card id in the given map. A zero count removes
// the card.
func (s *Store) Set(ctx context.Context, kind Kind, id string, count int) error {
	if count < 0 {
		return common.ErrInvalidCount
	}
	id, err := models.NormalizeCardID(id)
	if err != nil {
		return err
	}
	return s.mutate(ctx, kind, func(m models.CollectionMap) {
		if count == 0 {
			delete(m, id)
			return
		}
		m[id] = count
	})
}

// Add changes the count of a card by delta; the result is clamped at zero.
func (s *Store) Add(ctx context.Context, kind Kind, id string, delta int) error {
	id, err := models.NormalizeCardID(id)
	if err != nil {
		return err
	}
	return s.mutate(ctx, kind, func(m models.CollectionMap) {
		n := m[id] + delta
		if n <= 0 {
			delete(m, id)
			return
		}
		m[id] = n
	})
}

// Replace swaps one whole map.
func (s *Store) Replace(ctx context.Context, kind Kind, next models.CollectionMap) error {
	next = next.Normalized()
	return s.mutate(ctx, kind, func(m models.CollectionMap) {
		clear(m)
		for id, n := range next {
			m[id] = n
		}
	})
}

func (s *Store) mutate(ctx context.Context, kind Kind, fn func(models.CollectionMap)) error {
	s.mu.Lock()
	var (
		m    models.CollectionMap
		save func(context.Context, models.CollectionMap) error
	)
	switch kind {
	case Wanted:
		m, save = s.wanted, s.persist.SetWanted
	case Giving:
		m, save = s.giving, s.persist.SetGiving
	default:
		s.mu.Unlock()
		return fmt.Errorf("unknown collection %q", kind)
	}
	fn(m)
	snapshot := m.Clone()
	s.mu.Unlock()

	if err := save(ctx, snapshot); err != nil {
		s.log.Error(ctx, "persist collection failed", "kind", kind, "error", err)
		return fmt.Errorf("persist %s cards: %w", kind, err)
	}

	s.notifier.Trigger()
	return nil
}

// Import replaces both maps with the server's lists. When both resulting
// maps equal the current ones nothing is persisted or notified and false is
// returned, so that a server round-trip does not schedule another sync.
func (s *Store) Import(ctx context.Context, wanted, giving []models.CardCount) (bool, error) {
	nextWanted := models.MapFromCards(wanted)
	nextGiving := models.MapFromCards(giving)

	s.mu.Lock()
	if s.wanted.Equal(nextWanted) && s.giving.Equal(nextGiving) {
		s.mu.Unlock()
		return false, nil
	}
	s.wanted = nextWanted.Clone()
	s.giving = nextGiving.Clone()
	s.mu.Unlock()

	if err := s.persist.SetWanted(ctx, nextWanted); err != nil {
		return true, fmt.Errorf("persist wanted cards: %w", err)
	}
	if err := s.persist.SetGiving(ctx, nextGiving); err != nil {
		return true, fmt.Errorf("persist giving cards: %w", err)
	}

	s.log.Debug(ctx, "collections imported", "wanted", len(nextWanted), "giving", len(nextGiving))
	s.notifier.Trigger()
	return true, nil
}

// Reset empties both maps in memory without persisting or notifying. It is
// used on logout, after storage has been cleared.
func (s *Store) Reset() {
	s.mu.Lock()
	s.wanted = models.CollectionMap{}
	s.giving = models.CollectionMap{}
	s.mu.Unlock()
}

// Snapshot returns copies of both maps.
func (s *Store) Snapshot() (wanted, giving models.CollectionMap) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wanted.Clone(), s.giving.Clone()
}

func (s *Store) WantedCards() []models.CardCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows(s.wanted)
}

func (s *Store) GivingCards() []models.CardCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rows(s.giving)
}

func (s *Store) Cards(kind Kind) []models.CardCount {
	if kind == Giving {
		return s.GivingCards()
	}
	return s.WantedCards()
}

func (s *Store) IsWantedStepComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wanted.HasPositive()
}

func (s *Store) IsGivingStepComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.giving.HasPositive()
}

// IsAccountIncomplete is true while either map has no positive entry.
func (s *Store) IsAccountIncomplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !(s.wanted.HasPositive() && s.giving.HasPositive())
}

// rows must be called with s.mu held.
func (s *Store) rows(m models.CollectionMap) []models.CardCount {
	out := make([]models.CardCount, 0, len(m))
	for id, count := range m {
		if count <= 0 {
			continue
		}
		row := models.CardCount{ID: id, Count: count}
		if set, number, err := models.ParseCardID(id); err == nil {
			row.Set, row.Number = set, number
			if card, ok := s.catalog.Lookup(set, number); ok {
				row.Rarity = card.RarityCode
				row.Packs = card.Packs
			}
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Set != out[j].Set {
			return out[i].Set < out[j].Set
		}
		if out[i].Number != out[j].Number {
			return out[i].Number < out[j].Number
		}
		return out[i].ID < out[j].ID
	})
	return out
}
