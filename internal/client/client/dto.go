package client

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
)

// CredentialsRequest is the body shared by endpoints that authenticate
// through the payload as well as through the headers.
type CredentialsRequest struct {
	ClientID string `json:"client_id"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignInRequest = CredentialsRequest

type CreateUserRequest struct {
	CredentialsRequest
	FriendID string             `json:"friend_id"`
	Wanted   []models.CardCount `json:"wanted"`
	Giving   []models.CardCount `json:"giving"`
}

type UpdateUserRequest struct {
	CredentialsRequest
	FriendID    string             `json:"friend_id"`
	Pseudo      string             `json:"pseudo,omitempty"`
	Icon        string             `json:"icon,omitempty"`
	Language    string             `json:"language,omitempty"`
	RarityRules json.RawMessage    `json:"rarity_rules,omitempty"`
	Flags       map[string]bool    `json:"flags,omitempty"`
	Wanted      []models.CardCount `json:"wanted"`
	Giving      []models.CardCount `json:"giving"`
}

type postMessageRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

type magicLinkRequest struct {
	Email    string `json:"email"`
	FriendID string `json:"friend_id"`
}

// SignInResponse is the account returned by /user/signin: the profile plus
// both collections.
type SignInResponse struct {
	Profile models.Profile
	Wanted  []models.CardCount
	Giving  []models.CardCount
}

// UnmarshalJSON accepts wanted, giving and rarity_rules either as JSON
// values or as strings holding JSON, which is how the server stores them.
// Collections may be arrays of card rows or objects of id to count.
func (r *SignInResponse) UnmarshalJSON(b []byte) error {
	var aux struct {
		FriendID    string          `json:"friend_id"`
		Email       string          `json:"email"`
		Pseudo      string          `json:"pseudo"`
		Icon        string          `json:"icon"`
		Language    string          `json:"language"`
		RarityRules json.RawMessage `json:"rarity_rules"`
		Flags       map[string]bool `json:"flags"`
		Wanted      json.RawMessage `json:"wanted"`
		Giving      json.RawMessage `json:"giving"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	rules, err := unquoteJSON(aux.RarityRules)
	if err != nil {
		return fmt.Errorf("rarity_rules: %w", err)
	}
	wanted, err := decodeCards(aux.Wanted)
	if err != nil {
		return fmt.Errorf("wanted: %w", err)
	}
	giving, err := decodeCards(aux.Giving)
	if err != nil {
		return fmt.Errorf("giving: %w", err)
	}

	r.Profile = models.Profile{
		FriendID:    aux.FriendID,
		Email:       aux.Email,
		Pseudo:      aux.Pseudo,
		Icon:        aux.Icon,
		Language:    aux.Language,
		RarityRules: rules,
		Flags:       aux.Flags,
	}
	r.Wanted = wanted
	r.Giving = giving
	return nil
}

// unquoteJSON returns raw unchanged unless it is a JSON string, in which
// case the string content is returned as the JSON document. null and ""
// yield nil.
func unquoteJSON(raw json.RawMessage) (json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}
	if raw[0] != '"' {
		return raw, nil
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	if !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("string does not hold JSON")
	}
	return json.RawMessage(s), nil
}

func decodeCards(raw json.RawMessage) ([]models.CardCount, error) {
	raw, err := unquoteJSON(raw)
	if err != nil || raw == nil {
		return nil, err
	}

	if raw[0] == '{' {
		var m models.CollectionMap
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, err
		}
		cards := make([]models.CardCount, 0, len(m))
		for id, n := range m {
			cards = append(cards, models.CardCount{ID: id, Count: n})
		}
		return cards, nil
	}

	var cards []models.CardCount
	if err := json.Unmarshal(raw, &cards); err != nil {
		return nil, err
	}
	return cards, nil
}
