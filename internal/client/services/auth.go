// Package services contains the application services of the tcgexchange
// client. They combine the API gateway, the session, the collection store and
// the discussion cache into the operations exposed by the CLI.
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
	"github.com/dmitrijs2005/tcgexchange/internal/cryptox"
	"github.com/dmitrijs2005/tcgexchange/internal/logging"
)

// AuthService defines the account operations of the CLI.
//
// Contract:
//   - SignIn: authenticate, then adopt the server's profile and collections.
//   - SignUp: create an account carrying the local collections, then log in.
//   - FetchUser: revalidate the stored session; any failure logs out.
//   - Logout: forget the session, the profile and both collections.
//   - ForgotPassword: ask the server to mail a sign-in link.
//
// Passwords are taken as byte slices so callers can wipe them afterwards.
type AuthService interface {
	SignIn(ctx context.Context, email string, password []byte) (models.Profile, error)
	SignUp(ctx context.Context, email string, password []byte, friendID string) error
	FetchUser(ctx context.Context) (models.Profile, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email, friendID string) (string, error)
}

type authService struct {
	api     client.Client
	session *session.Session
	store   *collection.Store
	cache   *discussions.Cache
	log     logging.Logger
}

// NewAuthService wires the service and registers the in-memory resets run
// on logout.
func NewAuthService(api client.Client, sess *session.Session, store *collection.Store, cache *discussions.Cache, log logging.Logger) AuthService {
	sess.OnLogout(store.Reset)
	sess.OnLogout(cache.Clear)

	return &authService{
		api:     api,
		session: sess,
		store:   store,
		cache:   cache,
		log:     log.With("component", "auth"),
	}
}

func (a *authService) SignIn(ctx context.Context, email string, password []byte) (models.Profile, error) {
	email = strings.TrimSpace(email)
	if email == "" || len(password) == 0 {
		return models.Profile{}, common.ErrEmptyCredential
	}
	digest := cryptox.PasswordDigest(password)

	resp, err := a.api.SignIn(ctx, client.SignInRequest{
		ClientID: a.session.ClientID(),
		Email:    email,
		Password: digest,
	})
	if err != nil {
		return models.Profile{}, fmt.Errorf("sign in: %w", err)
	}

	if err := a.session.LoginWithDigest(ctx, email, digest); err != nil {
		return models.Profile{}, err
	}
	return a.adopt(ctx, email, resp)
}

// adopt stores the account returned by signin.
func (a *authService) adopt(ctx context.Context, email string, resp *client.SignInResponse) (models.Profile, error) {
	profile := resp.Profile
	if profile.Email == "" {
		profile.Email = email
	}
	if err := a.session.SetProfile(ctx, profile); err != nil {
		return models.Profile{}, err
	}

	if _, err := a.store.Import(ctx, resp.Wanted, resp.Giving); err != nil {
		return models.Profile{}, fmt.Errorf("import collections: %w", err)
	}

	if _, err := refreshDiscussions(ctx, a.api, a.cache); err != nil {
		a.log.Warn(ctx, "discussions refresh failed", "error", err)
	}
	return profile, nil
}

func (a *authService) SignUp(ctx context.Context, email string, password []byte, friendID string) error {
	email = strings.TrimSpace(email)
	friendID = strings.TrimSpace(friendID)
	if email == "" || len(password) == 0 {
		return common.ErrEmptyCredential
	}
	if friendID == "" {
		return common.ErrEmptyFriendID
	}
	digest := cryptox.PasswordDigest(password)

	err := a.api.CreateUser(ctx, client.CreateUserRequest{
		CredentialsRequest: client.CredentialsRequest{
			ClientID: a.session.ClientID(),
			Email:    email,
			Password: digest,
		},
		FriendID: friendID,
		Wanted:   a.store.WantedCards(),
		Giving:   a.store.GivingCards(),
	})
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}

	if err := a.session.LoginWithDigest(ctx, email, digest); err != nil {
		return err
	}
	return a.session.SetProfile(ctx, models.Profile{FriendID: friendID, Email: email})
}

func (a *authService) FetchUser(ctx context.Context) (models.Profile, error) {
	if !a.session.IsLoggedIn() {
		return models.Profile{}, common.ErrNotLoggedIn
	}

	creds := a.session.Credentials()
	if creds.Email == "" || creds.Password == "" {
		a.forceLogout(ctx, common.ErrInvalidToken)
		return models.Profile{}, common.ErrInvalidToken
	}

	resp, err := a.api.SignIn(ctx, client.SignInRequest{
		ClientID: a.session.ClientID(),
		Email:    creds.Email,
		Password: creds.Password,
	})
	if err != nil {
		a.forceLogout(ctx, err)
		return models.Profile{}, fmt.Errorf("fetch user: %w", err)
	}
	return a.adopt(ctx, creds.Email, resp)
}

func (a *authService) forceLogout(ctx context.Context, cause error) {
	a.log.Warn(ctx, "session rejected, logging out", "error", cause)
	if err := a.session.Logout(ctx); err != nil {
		a.log.Error(ctx, "forced logout failed", "error", err)
	}
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) ForgotPassword(ctx context.Context, email, friendID string) (string, error) {
	email = strings.TrimSpace(email)
	friendID = strings.TrimSpace(friendID)
	if email == "" {
		return "", common.ErrEmptyCredential
	}
	if friendID == "" {
		return "", common.ErrEmptyFriendID
	}
	return a.api.SendMagicLink(ctx, email, friendID)
}
