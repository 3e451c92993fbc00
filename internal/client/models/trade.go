package models

// ProposalCard describes one side of a proposed trade.
type ProposalCard struct {
	ID         string            `json:"id"`
	RarityCode string            `json:"rarityCode"`
	Set        string            `json:"set"`
	Number     int               `json:"number"`
	Label      map[string]string `json:"label,omitempty"`
	ImageName  string            `json:"imageName,omitempty"`
}

// Proposal is a trade the server matched between the user and a partner:
// the partner gives CardWanted and receives CardToGive.
type Proposal struct {
	Icon       string       `json:"icon,omitempty"`
	Pseudo     string       `json:"pseudo,omitempty"`
	Language   string       `json:"language,omitempty"`
	FriendID   string       `json:"friend_id"`
	CardWanted string       `json:"card_wanted"`
	CardToGive string       `json:"card_to_give"`
	Card1      ProposalCard `json:"card1"`
	Card2      ProposalCard `json:"card2"`
}

// Discussion summarises a message thread with one peer.
type Discussion struct {
	Pseudo          string `json:"pseudo"`
	Avatar          string `json:"avatar"`
	Language        string `json:"language"`
	FriendID        string `json:"friend_id"`
	LastMessage     string `json:"last_message"`
	LastMessageDate string `json:"last_message_date"`
	Read            bool   `json:"read"`
}

// Message is a single direct message. Read is nil until the recipient opens it.
type Message struct {
	From    string  `json:"from"`
	To      string  `json:"to"`
	Message string  `json:"message"`
	Sent    string  `json:"sent"`
	Read    *string `json:"read"`
}
