package models

import "encoding/json"

// Profile is the cached user profile. It is persisted independently from the
// session token and may be stale until the next successful fetch.
type Profile struct {
	FriendID string `json:"friend_id"`
	Email    string `json:"email,omitempty"`
	Pseudo   string `json:"pseudo,omitempty"`
	Icon     string `json:"icon,omitempty"`
	Language string `json:"language,omitempty"`

	// RarityRules is kept as raw JSON: the server owns its shape and the
	// client only round-trips it.
	RarityRules json.RawMessage `json:"rarity_rules,omitempty"`

	Flags map[string]bool `json:"flags,omitempty"`
}

// DisplayName returns the pseudo when set and the friend id otherwise.
func (p Profile) DisplayName() string {
	if p.Pseudo != "" {
		return p.Pseudo
	}
	return p.FriendID
}
