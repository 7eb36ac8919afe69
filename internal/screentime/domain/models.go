// Package domain contains the screen time entry model. Time fields are kept
// in the loose human-readable form devices report ("2h 53m"); parsing to
// minutes happens at aggregation time, never at ingest.
package domain

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// AppUsage is one app or category row from a device report.
type AppUsage struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

type Entry struct {
	ID            string         `gorm:"primaryKey" json:"id"`
	UserID        string         `gorm:"not null;index:idx_entries_user_created" json:"userId"`
	DateLabel     string         `gorm:"column:date_label;not null" json:"date"`
	TotalTimeText string         `gorm:"column:total_time;not null" json:"totalTime"`
	Apps          datatypes.JSON `json:"apps"`
	Categories    datatypes.JSON `json:"categories"`
	UpdatedAtText string         `gorm:"column:updated_at_text" json:"updatedAt"`
	CreatedAt     time.Time      `gorm:"not null;index:idx_entries_user_created,sort:desc" json:"createdAt"`
}

func (Entry) TableName() string { return "screen_time_entries" }

// ParsedApps decodes the apps column; malformed payloads yield nil.
func (e Entry) ParsedApps() []AppUsage {
	return decodeUsage(e.Apps)
}

func (e Entry) ParsedCategories() []AppUsage {
	return decodeUsage(e.Categories)
}

func decodeUsage(raw datatypes.JSON) []AppUsage {
	if len(raw) == 0 {
		return nil
	}
	var usage []AppUsage
	if err := json.Unmarshal(raw, &usage); err != nil {
		return nil
	}
	return usage
}

func EncodeUsage(usage []AppUsage) datatypes.JSON {
	if len(usage) == 0 {
		return datatypes.JSON("[]")
	}
	raw, err := json.Marshal(usage)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return raw
}
