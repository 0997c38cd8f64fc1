package models

import "time"

// DataTypeConfig is a standardized, catalogue-wide definition of a data
// type independent of any specific Furnisher. Its id is a slug derived
// from the name; names are unique case-insensitively.
type DataTypeConfig struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateConfigInput carries the caller-supplied fields for a new
// DataTypeConfig. The id is always derived from the name.
type CreateConfigInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
}

// UpdateConfigInput carries a partial update; nil keeps prior value.
type UpdateConfigInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
}

// Category is an ordered grouping label for DataTypeConfig entries.
// Order is assigned monotonically at creation; the first category ever
// created gets order 1.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Order     int       `json:"order"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
