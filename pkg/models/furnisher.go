package models

import "time"

// Furnisher represents an organization that supplies one or more data
// types into the catalogue. Stored in the furnishers collection.
type Furnisher struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	ContactName  string    `json:"contactName,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	Website      string    `json:"website,omitempty"`
	Regions      []string  `json:"regions"`
	CreatedBy    string    `json:"createdBy,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// FurnisherWithStats is a Furnisher with derived ownership counts.
// The counts are computed at read time and never persisted.
type FurnisherWithStats struct {
	Furnisher
	DataTypeCount  int `json:"dataTypeCount"`
	AttributeCount int `json:"attributeCount"`
}

// FurnisherDetail nests each owned DataType with its Attribute list.
type FurnisherDetail struct {
	Furnisher
	DataTypes []*DataTypeDetail `json:"dataTypes"`
}

// CreateFurnisherInput carries the caller-supplied fields for a new
// Furnisher. ID is optional; when empty the engine assigns one.
type CreateFurnisherInput struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Description  string   `json:"description,omitempty"`
	ContactName  string   `json:"contactName,omitempty"`
	ContactEmail string   `json:"contactEmail,omitempty"`
	ContactPhone string   `json:"contactPhone,omitempty"`
	Website      string   `json:"website,omitempty"`
	Regions      []string `json:"regions,omitempty"`
}

// UpdateFurnisherInput carries a partial update. Nil fields keep the
// prior value; present fields replace it, including explicit empties.
type UpdateFurnisherInput struct {
	Name         *string   `json:"name,omitempty"`
	Description  *string   `json:"description,omitempty"`
	ContactName  *string   `json:"contactName,omitempty"`
	ContactEmail *string   `json:"contactEmail,omitempty"`
	ContactPhone *string   `json:"contactPhone,omitempty"`
	Website      *string   `json:"website,omitempty"`
	Regions      *[]string `json:"regions,omitempty"`
}
