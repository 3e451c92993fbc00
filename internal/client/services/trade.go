package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/tcgexchange/internal/client/client"
	"github.com/dmitrijs2005/tcgexchange/internal/client/collection"
	"github.com/dmitrijs2005/tcgexchange/internal/client/discussions"
	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
	"github.com/dmitrijs2005/tcgexchange/internal/client/session"
	"github.com/dmitrijs2005/tcgexchange/internal/common"
	"github.com/dmitrijs2005/tcgexchange/internal/logging"
)

// TradeService covers the operations of an authenticated trader: matched
// proposals, direct messages and the profile sync.
type TradeService interface {
	Proposals(ctx context.Context) ([]models.Proposal, error)
	RefreshDiscussions(ctx context.Context) ([]models.Discussion, error)
	Messages(ctx context.Context, friendID string) ([]models.Message, error)
	SendMessage(ctx context.Context, friendID, text string) error
	UpdateProfile(ctx context.Context) error
	SetProfile(ctx context.Context, apply func(*models.Profile)) error
}

// Trigger schedules a debounced profile sync.
type Trigger interface {
	Trigger()
}

type tradeService struct {
	api     client.Client
	session *session.Session
	store   *collection.Store
	cache   *discussions.Cache
	sched   Trigger
	log     logging.Logger
}

func NewTradeService(api client.Client, sess *session.Session, store *collection.Store, cache *discussions.Cache, sched Trigger, log logging.Logger) TradeService {
	return &tradeService{
		api:     api,
		session: sess,
		store:   store,
		cache:   cache,
		sched:   sched,
		log:     log.With("component", "trade"),
	}
}

func (t *tradeService) credentials() (client.CredentialsRequest, error) {
	if !t.session.IsLoggedIn() {
		return client.CredentialsRequest{}, common.ErrNotLoggedIn
	}
	creds := t.session.Credentials()
	return client.CredentialsRequest{
		ClientID: t.session.ClientID(),
		Email:    creds.Email,
		Password: creds.Password,
	}, nil
}

func (t *tradeService) Proposals(ctx context.Context) ([]models.Proposal, error) {
	req, err := t.credentials()
	if err != nil {
		return nil, err
	}
	return t.api.Proposals(ctx, req)
}

func (t *tradeService) RefreshDiscussions(ctx context.Context) ([]models.Discussion, error) {
	if !t.session.IsLoggedIn() {
		return nil, common.ErrNotLoggedIn
	}
	return refreshDiscussions(ctx, t.api, t.cache)
}

func refreshDiscussions(ctx context.Context, api client.Client, cache *discussions.Cache) ([]models.Discussion, error) {
	items, err := api.Discussions(ctx)
	if err != nil {
		return nil, err
	}
	cache.Store(items)
	return items, nil
}

func (t *tradeService) Messages(ctx context.Context, friendID string) ([]models.Message, error) {
	if !t.session.IsLoggedIn() {
		return nil, common.ErrNotLoggedIn
	}
	friendID = strings.TrimSpace(friendID)
	if friendID == "" {
		return nil, common.ErrEmptyFriendID
	}
	return t.api.Messages(ctx, friendID)
}

// SendMessage posts text to friendID and then refreshes the discussion list.
// A failed refresh is logged, the message itself was sent.
func (t *tradeService) SendMessage(ctx context.Context, friendID, text string) error {
	if !t.session.IsLoggedIn() {
		return common.ErrNotLoggedIn
	}
	friendID = strings.TrimSpace(friendID)
	if friendID == "" {
		return common.ErrEmptyFriendID
	}
	if strings.TrimSpace(text) == "" {
		return common.ErrEmptyMessage
	}

	if _, err := t.api.PostMessage(ctx, friendID, text); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	if _, err := refreshDiscussions(ctx, t.api, t.cache); err != nil {
		t.log.Warn(ctx, "discussions refresh failed", "error", err)
	}
	return nil
}

// UpdateProfile pushes the cached profile and both collections as they are
// now. It does nothing while anonymous.
func (t *tradeService) UpdateProfile(ctx context.Context) error {
	if !t.session.IsLoggedIn() {
		return nil
	}
	req, err := t.credentials()
	if err != nil {
		return err
	}
	profile, _ := t.session.Profile()

	return t.api.UpdateUser(ctx, client.UpdateUserRequest{
		CredentialsRequest: req,
		FriendID:           profile.FriendID,
		Pseudo:             profile.Pseudo,
		Icon:               profile.Icon,
		Language:           profile.Language,
		RarityRules:        profile.RarityRules,
		Flags:              profile.Flags,
		Wanted:             t.store.WantedCards(),
		Giving:             t.store.GivingCards(),
	})
}

// SetProfile edits the cached profile and schedules a sync.
func (t *tradeService) SetProfile(ctx context.Context, apply func(*models.Profile)) error {
	if !t.session.IsLoggedIn() {
		return common.ErrNotLoggedIn
	}
	profile, _ := t.session.Profile()
	apply(&profile)

	if err := t.session.SetProfile(ctx, profile); err != nil {
		return err
	}
	t.sched.Trigger()
	return nil
}
