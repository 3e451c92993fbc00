package models

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tcgexchange/internal/common"
)

// CollectionMap maps a card id (SET-NUMBER) to a count. Entries with a
// non-positive count carry no meaning and are dropped from derived views.
type CollectionMap map[string]int

// Clone returns an independent copy. A nil map clones to an empty one.
func (m CollectionMap) Clone() CollectionMap {
	out := make(CollectionMap, len(m))
	maps.Copy(out, m)
	return out
}

// Normalized returns a copy without non-positive entries, with card ids in
// canonical form.
func (m CollectionMap) Normalized() CollectionMap {
	out := make(CollectionMap, len(m))
	for id, n := range m {
		if n > 0 {
			out[canonicalID(id)] = n
		}
	}
	return out
}

// Equal reports whether both maps have the same key set and the same counts.
func (m CollectionMap) Equal(other CollectionMap) bool {
	return maps.Equal(m, other)
}

// HasPositive reports whether at least one entry has a count above zero.
func (m CollectionMap) HasPositive() bool {
	for _, n := range m {
		if n > 0 {
			return true
		}
	}
	return false
}

// CardCount is one row of a derived collection view, joined with the
// catalog's rarity and pack metadata.
type CardCount struct {
	ID     string   `json:"id"`
	Set    string   `json:"set"`
	Number int      `json:"number"`
	Count  int      `json:"count"`
	Rarity string   `json:"rarity,omitempty"`
	Packs  []string `json:"packs,omitempty"`
}

// MapFromCards builds a collection map from server rows. Rows with a
// non-positive count are skipped; duplicated ids keep the last count. Ids
// are normalized like local ones; ids that do not parse are kept verbatim.
func MapFromCards(cards []CardCount) CollectionMap {
	out := make(CollectionMap, len(cards))
	for _, c := range cards {
		if c.Count <= 0 {
			continue
		}
		id := c.ID
		if id == "" {
			id = CardID(c.Set, c.Number)
		}
		out[canonicalID(id)] = c.Count
	}
	return out
}

func canonicalID(id string) string {
	if n, err := NormalizeCardID(id); err == nil {
		return n
	}
	return id
}

// CardID formats a card id from its set code and number.
func CardID(set string, number int) string {
	return strings.ToUpper(set) + "-" + strconv.Itoa(number)
}

// ParseCardID splits "SET-NUMBER". The set is upper-cased; the number must be
// a positive integer.
func ParseCardID(id string) (set string, number int, err error) {
	i := strings.LastIndex(id, "-")
	if i <= 0 || i == len(id)-1 {
		return "", 0, fmt.Errorf("%w: %q", common.ErrInvalidCardID, id)
	}

	number, err = strconv.Atoi(id[i+1:])
	if err != nil || number <= 0 {
		return "", 0, fmt.Errorf("%w: %q", common.ErrInvalidCardID, id)
	}

	return strings.ToUpper(id[:i]), number, nil
}

// NormalizeCardID parses id and formats it back, so "a1-007" becomes "A1-7".
func NormalizeCardID(id string) (string, error) {
	set, number, err := ParseCardID(id)
	if err != nil {
		return "", err
	}
	return CardID(set, number), nil
}
