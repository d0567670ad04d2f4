package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Timeframe represents a candle interval for a trading rule
type Timeframe string

const (
	Timeframe1m  Timeframe = "1m"
	Timeframe5m  Timeframe = "5m"
	Timeframe15m Timeframe = "15m"
	Timeframe30m Timeframe = "30m"
	Timeframe1h  Timeframe = "1h"
	Timeframe4h  Timeframe = "4h"
	Timeframe1d  Timeframe = "1d"
)

// TradingRule is a user-defined strategy definition. The indicator,
// condition and risk documents are opaque JSON: this service checks their
// syntax on the way in and stores them verbatim; the hosted evaluation
// engine is the only component that interprets them.
type TradingRule struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	UserID          uint           `gorm:"index;not null" json:"user_id"`
	Name            string         `gorm:"size:100;not null" json:"name"`
	Description     *string        `gorm:"size:500" json:"description"`
	Symbol          string         `gorm:"size:20;not null" json:"symbol"`
	Timeframe       Timeframe      `gorm:"size:10;not null" json:"timeframe"`
	Indicators      datatypes.JSON `gorm:"type:jsonb" json:"indicators"`
	EntryConditions datatypes.JSON `gorm:"type:jsonb" json:"entry_conditions"`
	ExitConditions  datatypes.JSON `gorm:"type:jsonb" json:"exit_conditions"`
	RiskSettings    datatypes.JSON `gorm:"type:jsonb" json:"risk_settings"`
	IsActive        bool           `gorm:"default:false" json:"is_active"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for TradingRule model
func (TradingRule) TableName() string {
	return "trading_rules"
}
