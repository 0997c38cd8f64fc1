package models

import "time"

// DataType is a named category of data offered by a Furnisher,
// grouping one or more Attributes. Stored in the dataTypes collection.
type DataType struct {
	ID          string    `json:"id"`
	FurnisherID string    `json:"furnisherId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ConfigID    string    `json:"configId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// DataTypeDetail nests a DataType with its Attribute list.
type DataTypeDetail struct {
	DataType
	Attributes []*Attribute `json:"attributes"`
}

// CreateDataTypeInput carries the caller-supplied fields for a new
// DataType. The referenced Furnisher must exist at creation time.
type CreateDataTypeInput struct {
	ID          string `json:"id,omitempty"`
	FurnisherID string `json:"furnisherId"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ConfigID    string `json:"configId,omitempty"`
}

// UpdateDataTypeInput carries a partial update; nil keeps prior value.
type UpdateDataTypeInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	ConfigID    *string `json:"configId,omitempty"`
}
