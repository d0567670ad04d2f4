package models

import (
	"time"

	"gorm.io/gorm"
)

// BrokerName represents supported brokers
type BrokerName string

const (
	BrokerDhan     BrokerName = "dhan"
	BrokerZerodha  BrokerName = "zerodha"
	BrokerUpstox   BrokerName = "upstox"
	BrokerAngelOne BrokerName = "angel_one"
)

// BrokerConnection stores a user's API credentials for one broker. The
// secret is AES-encrypted before it reaches the database and is never
// serialized back out; responses carry only a key prefix. Connections start
// inactive and are flipped explicitly.
type BrokerConnection struct {
	ID                 uint           `gorm:"primaryKey" json:"id"`
	UserID             uint           `gorm:"index;not null" json:"user_id"`
	BrokerName         BrokerName     `gorm:"size:20;not null" json:"broker_name"`
	APIKey             string         `gorm:"size:200;not null" json:"-"`
	APISecretEncrypted string         `gorm:"size:500;not null" json:"-"`
	AccessToken        *string        `gorm:"size:500" json:"-"`
	IsActive           bool           `gorm:"default:false" json:"is_active"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for BrokerConnection model
func (BrokerConnection) TableName() string {
	return "broker_connections"
}

// BrokerConnectionResponse is the response structure for a broker
// connection. The API key is masked to its prefix; the secret is absent.
type BrokerConnectionResponse struct {
	ID           uint       `json:"id"`
	BrokerName   BrokerName `json:"broker_name"`
	APIKeyMasked string     `json:"api_key_masked"`
	HasToken     bool       `json:"has_token"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
