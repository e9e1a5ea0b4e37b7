package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe source values. External recipes are immutable snapshots
// identified by their provider ID; local recipes are user-owned rows.
const (
	RecipeSourceLocal    = "local"
	RecipeSourceExternal = "external"
)

// Recipe is a locally stored recipe. recipe_id shares one ID space with
// the external provider: provider recipes keep their provider ID, local
// recipes get a generated one.
type Recipe struct {
	RecipeID       int64            `gorm:"primaryKey;autoIncrement:false;column:recipe_id" json:"recipe_id"`
	UserID         uuid.UUID        `gorm:"type:varchar(36);index" json:"user_id"`
	Title          string           `gorm:"size:255;not null" json:"title"`
	Image          string           `gorm:"size:512" json:"image"`
	ReadyInMinutes int              `json:"ready_in_minutes"`
	Vegetarian     bool             `json:"vegetarian"`
	Vegan          bool             `json:"vegan"`
	GlutenFree     bool             `json:"gluten_free"`
	Servings       int              `json:"servings"`
	Ingredients    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Source         string           `gorm:"size:20;not null;default:'local'" json:"source"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}
