// Package cards provides the static card reference data the collection
// views are joined against. The data itself is owned by an external card
// database; this package only defines the lookup contract and loads a JSON
// export of it.
package cards

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/tcgexchange/internal/client/models"
)

// Card is one reference entry.
type Card struct {
	Set        string            `json:"set"`
	Number     int               `json:"number"`
	RarityCode string            `json:"rarityCode"`
	Packs      []string          `json:"packs,omitempty"`
	Label      map[string]string `json:"label,omitempty"`
	ImageName  string            `json:"imageName,omitempty"`
}

// ID returns the card id in SET-NUMBER form.
func (c Card) ID() string {
	return models.CardID(c.Set, c.Number)
}

// Catalog looks cards up by set and number.
type Catalog interface {
	Lookup(set string, number int) (Card, bool)
}

// MemoryCatalog is a Catalog backed by a map.
type MemoryCatalog struct {
	byID map[string]Card
}

func NewMemoryCatalog(cards ...Card) *MemoryCatalog {
	m := &MemoryCatalog{byID: make(map[string]Card, len(cards))}
	for _, c := range cards {
		c.Set = strings.ToUpper(c.Set)
		m.byID[c.ID()] = c
	}
	return m
}

func (m *MemoryCatalog) Lookup(set string, number int) (Card, bool) {
	c, ok := m.byID[models.CardID(set, number)]
	return c, ok
}

func (m *MemoryCatalog) Len() int {
	return len(m.byID)
}

// Empty is a catalog without any card: rows keep their id and count but
// have no rarity or packs.
var Empty Catalog = NewMemoryCatalog()

// LoadFile reads a JSON array of cards. Numbers may be given either as JSON
// numbers or as numeric strings.
func LoadFile(path string) (*MemoryCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*MemoryCatalog, error) {
	var raw []struct {
		Card
		Number json.Number `json:"number"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	list := make([]Card, 0, len(raw))
	for i, r := range raw {
		n, err := r.Number.Int64()
		if err != nil {
			return nil, fmt.Errorf("decode catalog: card %d: bad number %q", i, r.Number)
		}
		c := r.Card
		c.Number = int(n)
		list = append(list, c)
	}
	return NewMemoryCatalog(list...), nil
}
