// Package common contains shared constants and sentinel errors used across
// tcgexchange client components.
package common

// Header names sent on every outbound API request.
const (
	ClientIDHeaderName      = "X-Client-ID"
	AuthorizationHeaderName = "Authorization"
)

// ClientIDFallbackLength is the number of hex characters used for the client
// id when a random UUID cannot be generated.
const ClientIDFallbackLength = 13
