package client

import (
	"context"

	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
)

// Client is the API contract used by the application services.
type Client interface {
	SignIn(ctx context.Context, req SignInRequest) (*SignInResponse, error)
	CreateUser(ctx context.Context, req CreateUserRequest) error
	UpdateUser(ctx context.Context, req UpdateUserRequest) error
	Proposals(ctx context.Context, req CredentialsRequest) ([]models.Proposal, error)
	Discussions(ctx context.Context) ([]models.Discussion, error)
	Messages(ctx context.Context, friendID string) ([]models.Message, error)
	PostMessage(ctx context.Context, friendID, message string) (string, error)
	SendMagicLink(ctx context.Context, email, friendID string) (string, error)
}

// Identity supplies the values of the headers sent on every request.
type Identity interface {
	ClientID() string
	BasicAuth() string
}

// Expected text bodies of the user endpoints.
const (
	ResultCreated = "created"
	ResultUpdated = "updated"
)
