package models

import (
	"time"

	"gorm.io/datatypes"
)

// TradeType represents the direction of a trade
type TradeType string

const (
	TradeTypeBuy  TradeType = "buy"
	TradeTypeSell TradeType = "sell"
)

// TradeStatus represents the lifecycle state of a trade
type TradeStatus string

const (
	TradeStatusOpen      TradeStatus = "open"
	TradeStatusClosed    TradeStatus = "closed"
	TradeStatusCancelled TradeStatus = "cancelled"
)

// Trade is an execution record produced by the rule engine. The dashboard
// surface reads trades but never creates, updates or deletes them.
type Trade struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"index;not null" json:"user_id"`
	RuleID             *uint          `gorm:"index" json:"rule_id"`
	BrokerConnectionID *uint          `gorm:"index" json:"broker_connection_id"`
	Symbol             string         `gorm:"size:20;not null" json:"symbol"`
	TradeType          TradeType      `gorm:"size:10;not null" json:"trade_type"`
	EntryPrice         float64        `gorm:"type:decimal(20,8);not null" json:"entry_price"`
	ExitPrice          *float64       `gorm:"type:decimal(20,8)" json:"exit_price"`
	Quantity           float64        `gorm:"type:decimal(20,8);not null" json:"quantity"`
	Status             TradeStatus    `gorm:"size:20;not null;default:'open'" json:"status"`
	IsSimulated        bool           `gorm:"default:true" json:"is_simulated"`
	PnL                float64        `gorm:"type:decimal(20,8);default:0" json:"pnl"`
	EntryTime          time.Time      `gorm:"index" json:"entry_time"`
	ExitTime           *time.Time     `json:"exit_time"`
	Metadata           datatypes.JSON `gorm:"type:jsonb" json:"metadata"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for Trade model
func (Trade) TableName() string {
	return "trades"
}

// IsOpen returns true if the trade has not been closed or cancelled
func (t *Trade) IsOpen() bool {
	return t.Status == TradeStatusOpen
}
