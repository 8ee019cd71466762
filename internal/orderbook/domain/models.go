package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// View types. A repertorium book renders the sworn-translator legal register
// and applies oral/page unit defaults on order creation.
const (
	ViewPlain       = "plain"
	ViewRepertorium = "repertorium"
)

type OrderBook struct {
	ID                     snowflake.ID  `json:"id" gorm:"primaryKey"`
	Name                   string        `json:"name" gorm:"type:text;not null"`
	Code                   string        `json:"code" gorm:"type:text;not null;uniqueIndex"`
	ViewType               string        `json:"view_type" gorm:"type:text;not null;default:plain"`
	OrderNumberFormat      *string       `json:"order_number_format,omitempty" gorm:"type:text"`
	RepertoriumOralUnitID  *snowflake.ID `json:"repertorium_oral_unit_id,omitempty"`
	RepertoriumPageUnitID  *snowflake.ID `json:"repertorium_page_unit_id,omitempty"`
	ShareToken             string        `json:"share_token" gorm:"type:text;not null;uniqueIndex"`
	CreatedAt              time.Time     `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt              time.Time     `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (OrderBook) TableName() string { return "order_books" }

func (b OrderBook) IsRepertorium() bool { return b.ViewType == ViewRepertorium }
