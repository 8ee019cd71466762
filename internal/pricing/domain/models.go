package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Slot is one attribute condition on a rate row.
type Slot struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

const maxSlots = 3

// NormalizeSlots prepares incoming slots for storage: trim both sides, drop
// slots missing a key or value, dedupe by lowercase key (first wins), cap at
// three, sort by key for stable storage and comparison.
func NormalizeSlots(slots []Slot) []Slot {
	out := make([]Slot, 0, maxSlots)
	seen := make(map[string]struct{}, maxSlots)
	for _, slot := range slots {
		key := strings.TrimSpace(slot.Key)
		value := strings.TrimSpace(slot.Value)
		if key == "" || value == "" {
			continue
		}
		lower := strings.ToLower(key)
		if _, ok := seen[lower]; ok {
			continue
		}
		seen[lower] = struct{}{}
		out = append(out, Slot{Key: key, Value: value})
		if len(out) == maxSlots {
			break
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// SlotColumns flattens normalized slots into the three column pairs.
type SlotColumns struct {
	Attr1Key   *string `json:"attr1_key,omitempty" gorm:"type:text"`
	Attr1Value *string `json:"attr1_value,omitempty" gorm:"type:text"`
	Attr2Key   *string `json:"attr2_key,omitempty" gorm:"type:text"`
	Attr2Value *string `json:"attr2_value,omitempty" gorm:"type:text"`
	Attr3Key   *string `json:"attr3_key,omitempty" gorm:"type:text"`
	Attr3Value *string `json:"attr3_value,omitempty" gorm:"type:text"`
}

func (c *SlotColumns) SetSlots(slots []Slot) {
	normalized := NormalizeSlots(slots)
	c.Attr1Key, c.Attr1Value = nil, nil
	c.Attr2Key, c.Attr2Value = nil, nil
	c.Attr3Key, c.Attr3Value = nil, nil
	for i, slot := range normalized {
		key, value := slot.Key, slot.Value
		switch i {
		case 0:
			c.Attr1Key, c.Attr1Value = &key, &value
		case 1:
			c.Attr2Key, c.Attr2Value = &key, &value
		case 2:
			c.Attr3Key, c.Attr3Value = &key, &value
		}
	}
}

// Slots returns the defined slots in stored order.
func (c SlotColumns) Slots() []Slot {
	out := make([]Slot, 0, maxSlots)
	pairs := [][2]*string{
		{c.Attr1Key, c.Attr1Value},
		{c.Attr2Key, c.Attr2Value},
		{c.Attr3Key, c.Attr3Value},
	}
	for _, p := range pairs {
		if p[0] == nil || p[1] == nil {
			continue
		}
		key := strings.TrimSpace(*p[0])
		value := strings.TrimSpace(*p[1])
		if key == "" || value == "" {
			continue
		}
		out = append(out, Slot{Key: key, Value: value})
	}
	return out
}

// ClientDefaultUnitRate is a client-scoped attribute-conditioned rate row.
type ClientDefaultUnitRate struct {
	ID       snowflake.ID `json:"id" gorm:"primaryKey"`
	ClientID snowflake.ID `json:"client_id" gorm:"not null;index:idx_client_default_unit_rates_client"`
	UnitID   snowflake.ID `json:"unit_id" gorm:"not null"`
	SlotColumns
	Rate      float64   `json:"rate" gorm:"not null"`
	Currency  string    `json:"currency" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ClientDefaultUnitRate) TableName() string { return "client_default_unit_rates" }

// DefaultUnitRate is the global attribute-conditioned rate row.
type DefaultUnitRate struct {
	ID     snowflake.ID `json:"id" gorm:"primaryKey"`
	UnitID snowflake.ID `json:"unit_id" gorm:"not null;index:idx_default_unit_rates_unit"`
	SlotColumns
	Rate      float64   `json:"rate" gorm:"not null"`
	Currency  string    `json:"currency" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (DefaultUnitRate) TableName() string { return "default_unit_rates" }

// ClientUnitRate is the simple (client, unit, currency) override without
// attribute conditions.
type ClientUnitRate struct {
	ID        snowflake.ID `json:"id" gorm:"primaryKey"`
	ClientID  snowflake.ID `json:"client_id" gorm:"not null;uniqueIndex:idx_client_unit_rates_key"`
	UnitID    snowflake.ID `json:"unit_id" gorm:"not null;uniqueIndex:idx_client_unit_rates_key"`
	Rate      float64      `json:"rate" gorm:"not null"`
	Currency  string       `json:"currency" gorm:"type:text;not null;uniqueIndex:idx_client_unit_rates_key"`
	CreatedAt time.Time    `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (ClientUnitRate) TableName() string { return "client_unit_rates" }
