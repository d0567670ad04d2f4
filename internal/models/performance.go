package models

import (
	"time"
)

// PerformanceMetrics is a per-day aggregate produced by the hosted
// aggregation job. At most one row exists per (user, date); the dashboard
// only ever reads it.
type PerformanceMetrics struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex:idx_metrics_user_date;not null" json:"user_id"`
	Date          string    `gorm:"uniqueIndex:idx_metrics_user_date;size:10;not null" json:"date"`
	TotalTrades   int       `gorm:"default:0" json:"total_trades"`
	WinningTrades int       `gorm:"default:0" json:"winning_trades"`
	LosingTrades  int       `gorm:"default:0" json:"losing_trades"`
	TotalPnL      float64   `gorm:"type:decimal(20,8);default:0" json:"total_pnl"`
	WinRate       float64   `gorm:"type:decimal(10,4);default:0" json:"win_rate"`
	CreatedAt     time.Time `json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for PerformanceMetrics model
func (PerformanceMetrics) TableName() string {
	return "performance_metrics"
}
