package services

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/dmitrijs2005/tcgexchange/internal/client/client"
	"github.com/dmitrijs2005/tcgexchange/internal/client/collection"
	"github.com/dmitrijs2005/tcgexchange/internal/client/discussions"
	"github.com/dmitrijs2005/tcgexchange/internal/client/localstore"
	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
	"github.com/dmitrijs2005/tcgexchange/internal/client/session"
	"github.com/dmitrijs2005/tcgexchange/internal/logging"
	"github.com/stretchr/testify/require"
)

// fakeClient implements client.Client with canned results and records the
// last request of each kind.
type fakeClient struct {
	mu sync.Mutex

	SignInResp *client.SignInResponse
	SignInErr  error
	CreateErr  error
	UpdateErr  error

	ProposalsRet   []models.Proposal
	DiscussionsRet []models.Discussion
	DiscussionsErr error
	MessagesRet    []models.Message
	PostErr        error
	MagicLinkRet   string

	LastSignIn    client.SignInRequest
	LastCreate    client.CreateUserRequest
	LastUpdate    client.UpdateUserRequest
	LastProposals client.CredentialsRequest
	LastPostTo    string
	LastPostText  string
	LastMagicLink [2]string

	SignInCalls      int
	UpdateCalls      int
	DiscussionsCalls int
}

func (f *fakeClient) SignIn(_ context.Context, req client.SignInRequest) (*client.SignInResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SignInCalls++
	f.LastSignIn = req
	if f.SignInErr != nil {
		return nil, f.SignInErr
	}
	return f.SignInResp, nil
}

func (f *fakeClient) CreateUser(_ context.Context, req client.CreateUserRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastCreate = req
	return f.CreateErr
}

func (f *fakeClient) UpdateUser(_ context.Context, req client.UpdateUserRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++
	f.LastUpdate = req
	return f.UpdateErr
}

func (f *fakeClient) Proposals(_ context.Context, req client.CredentialsRequest) ([]models.Proposal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastProposals = req
	return f.ProposalsRet, nil
}

func (f *fakeClient) Discussions(context.Context) ([]models.Discussion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.DiscussionsCalls++
	return f.DiscussionsRet, f.DiscussionsErr
}

func (f *fakeClient) Messages(context.Context, string) ([]models.Message, error) {
	return f.MessagesRet, nil
}

func (f *fakeClient) PostMessage(_ context.Context, friendID, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastPostTo, f.LastPostText = friendID, message
	if f.PostErr != nil {
		return "", f.PostErr
	}
	return "sent", nil
}

func (f *fakeClient) SendMagicLink(_ context.Context, email, friendID string) (string, error) {
	f.LastMagicLink = [2]string{email, friendID}
	return f.MagicLinkRet, nil
}

type countingTrigger struct {
	mu sync.Mutex
	n  int
}

func (c *countingTrigger) Trigger() {
	c.mu.Lock()
	c.n++
	c.mu.Unlock()
}

func (c *countingTrigger) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type env struct {
	api     *fakeClient
	storage *localstore.Store
	session *session.Session
	store   *collection.Store
	cache   *discussions.Cache
	trigger *countingTrigger
	auth    AuthService
	trade   TradeService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "client.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return newEnvWithStorage(t, &env{storage: localstore.New(db)})
}

// newEnvWithStorage builds fresh services over the storage of base, as a
// restarted process would.
func newEnvWithStorage(t *testing.T, base *env) *env {
	t.Helper()
	var err error
	e := &env{
		api:     &fakeClient{},
		storage: base.storage,
		cache:   discussions.NewCache(),
		trigger: &countingTrigger{},
	}
	e.session, err = session.New(context.Background(), e.storage, logging.Nop())
	require.NoError(t, err)
	e.store = collection.New(e.storage, logging.Nop(), collection.WithNotifier(e.trigger))
	require.NoError(t, e.store.Hydrate(context.Background()))
	e.auth = NewAuthService(e.api, e.session, e.store, e.cache, logging.Nop())
	e.trade = NewTradeService(e.api, e.session, e.store, e.cache, e.trigger, logging.Nop())
	return e
}

// login puts the session in the authenticated state without calling the API.
func (e *env) login(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.session.Login(ctx, "ash@example.com", "pikachu"))
	require.NoError(t, e.session.SetProfile(ctx, models.Profile{FriendID: "1111", Email: "ash@example.com"}))
}
