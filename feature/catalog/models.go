package catalog

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Card is one catalog entry. The payload is stored opaque and replaced
// wholesale on refresh, never partially mutated.
type Card struct {
	Name        string         `gorm:"column:name;primaryKey" json:"name"`
	CardData    datatypes.JSON `gorm:"column:card_data;not null" json:"card_data"`
	LastUpdated time.Time      `gorm:"column:last_updated;not null" json:"last_updated"`
}

// TableName overrides the table name.
func (Card) TableName() string {
	return "cards"
}

// Metadata is a scalar key/value row for cache bookkeeping.
type Metadata struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value;not null"`
}

// TableName overrides the table name.
func (Metadata) TableName() string {
	return "metadata"
}

// GetMetadata retrieves a string value from the metadata table.
func GetMetadata(db *gorm.DB, key string) (string, bool) {
	var row Metadata
	if err := db.Where("key = ?", key).First(&row).Error; err != nil {
		return "", false
	}
	return row.Value, true
}

// SetMetadata sets or replaces a metadata key/value entry.
func SetMetadata(db *gorm.DB, key, value string) error {
	return db.Save(&Metadata{Key: key, Value: value}).Error
}

// Attributes is the parsed view of a card payload. Fields the payload does
// not carry stay at their zero values; pointer fields distinguish absent
// from zero (a Link monster has no DEF, a Spell has no level).
type Attributes struct {
	CardType         string   `json:"cardType"`
	Attribute        string   `json:"attribute"`
	Type             string   `json:"type"`
	Level            *int     `json:"level"`
	Rank             *int     `json:"rank"`
	Atk              *int     `json:"atk"`
	Def              *int     `json:"def"`
	PendulumScale    *int     `json:"pendulumScale"`
	LinkArrows       []string `json:"linkArrows"`
	MonsterCardTypes []string `json:"monsterCardTypes"`
	Text             struct {
		En struct {
			Name           string `json:"name"`
			Effect         string `json:"effect"`
			PendulumEffect string `json:"pendulumEffect"`
		} `json:"en"`
	} `json:"text"`
	Images []struct {
		Art string `json:"art"`
	} `json:"images"`
}

// Attributes decodes the stored payload.
func (c Card) Attributes() (*Attributes, error) {
	var attrs Attributes
	if err := json.Unmarshal(c.CardData, &attrs); err != nil {
		return nil, err
	}
	return &attrs, nil
}

// IsPendulum reports whether the card is a Pendulum monster.
func (a *Attributes) IsPendulum() bool {
	for _, t := range a.MonsterCardTypes {
		if t == "pendulum" {
			return true
		}
	}
	return false
}

// IsLink reports whether the card is a Link monster.
func (a *Attributes) IsLink() bool {
	for _, t := range a.MonsterCardTypes {
		if t == "link" {
			return true
		}
	}
	return false
}

// IsXyz reports whether the card is an Xyz monster.
func (a *Attributes) IsXyz() bool {
	for _, t := range a.MonsterCardTypes {
		if t == "xyz" {
			return true
		}
	}
	return false
}

// ArtworkURLs returns the artwork URLs present in the payload, in order.
func (a *Attributes) ArtworkURLs() []string {
	var urls []string
	for _, img := range a.Images {
		if img.Art != "" {
			urls = append(urls, img.Art)
		}
	}
	return urls
}
