// Package localstore gives names and types to the slots persisted by the
// client: the installation's client id, the session token, the two
// collection maps and the cached user profile.
package localstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
	"github.com/dmitrijs2005/tcgexchange/internal/client/repositories/slots"
	"github.com/dmitrijs2005/tcgexchange/internal/common"
	"github.com/dmitrijs2005/tcgexchange/internal/dbx"
	"github.com/google/uuid"
)

// Slot names.
const (
	SlotClientID    = "client_id"
	SlotToken       = "token"
	SlotWantedCards = "wanted_cards"
	SlotGivingCards = "giving_cards"
	SlotUserInfo    = "user_info"
)

// newUUID is a test seam for the random client id generator.
var newUUID = func() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type Store struct {
	db    *sql.DB
	slots slots.Repository
}

func New(db *sql.DB) *Store {
	return &Store{db: db, slots: slots.NewSQLiteRepository(db)}
}

// ClientID returns the installation's client id, generating and persisting
// it on first use. Once stored it is never changed, logout included.
func (s *Store) ClientID(ctx context.Context) (string, error) {
	v, err := s.slots.Get(ctx, SlotClientID)
	if err != nil {
		return "", err
	}
	if len(v) > 0 {
		return string(v), nil
	}

	id, err := newUUID()
	if err != nil {
		hexID, herr := common.MakeRandHexString(common.ClientIDFallbackLength)
		if herr != nil {
			return "", fmt.Errorf("generate client id: %w", herr)
		}
		id = hexID[:common.ClientIDFallbackLength]
	}

	if err := s.slots.Set(ctx, SlotClientID, []byte(id)); err != nil {
		return "", err
	}
	return id, nil
}

// Token returns the stored session token, or "" when anonymous.
func (s *Store) Token(ctx context.Context) (string, error) {
	v, err := s.slots.Get(ctx, SlotToken)
	if err != nil {
		return "", err
	}
	return string(v), nil
}

func (s *Store) SetToken(ctx context.Context, token string) error {
	return s.slots.Set(ctx, SlotToken, []byte(token))
}

func (s *Store) Wanted(ctx context.Context) (models.CollectionMap, error) {
	return s.collection(ctx, SlotWantedCards)
}

func (s *Store) SetWanted(ctx context.Context, m models.CollectionMap) error {
	return s.setJSON(ctx, SlotWantedCards, m)
}

func (s *Store) Giving(ctx context.Context) (models.CollectionMap, error) {
	return s.collection(ctx, SlotGivingCards)
}

func (s *Store) SetGiving(ctx context.Context, m models.CollectionMap) error {
	return s.setJSON(ctx, SlotGivingCards, m)
}

// Profile returns the cached profile; ok is false when none is stored.
func (s *Store) Profile(ctx context.Context) (p models.Profile, ok bool, err error) {
	v, err := s.slots.Get(ctx, SlotUserInfo)
	if err != nil || len(v) == 0 {
		return models.Profile{}, false, err
	}
	if err := json.Unmarshal(v, &p); err != nil {
		return models.Profile{}, false, fmt.Errorf("decode %s: %w: %w", SlotUserInfo, common.ErrLocalDataNotAvailable, err)
	}
	return p, true, nil
}

func (s *Store) SetProfile(ctx context.Context, p models.Profile) error {
	return s.setJSON(ctx, SlotUserInfo, p)
}

// ClearSession removes the token, the profile and both collection maps in a
// single transaction. The client id is kept.
func (s *Store) ClearSession(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := slots.NewSQLiteRepository(tx)
		for _, key := range []string{SlotToken, SlotUserInfo, SlotWantedCards, SlotGivingCards} {
			if err := repo.Delete(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) collection(ctx context.Context, key string) (models.CollectionMap, error) {
	v, err := s.slots.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	m := models.CollectionMap{}
	if len(v) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(v, &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", key, common.ErrLocalDataNotAvailable, err)
	}
	if m == nil {
		m = models.CollectionMap{}
	}
	return m, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.slots.Set(ctx, key, b)
}
