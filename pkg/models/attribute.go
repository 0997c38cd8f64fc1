package models

import (
	"encoding/json"
	"time"
)

// Attribute is a single named field within a DataType, with a declared
// value type and optional sample/region/metadata. Stored in the
// attributes collection.
type Attribute struct {
	ID          string         `json:"id"`
	DataTypeID  string         `json:"dataTypeId"`
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName,omitempty"`
	Description string         `json:"description,omitempty"`
	ValueType   string         `json:"valueType,omitempty"`
	SampleValue string         `json:"sampleValue,omitempty"`
	Region      *string        `json:"region"`
	SourcePath  string         `json:"sourcePath,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// AttributeSearchHit is an Attribute denormalized with the owning
// Furnisher's id, looked up via the attribute's DataType, so a flat
// search result list supports direct navigation.
type AttributeSearchHit struct {
	Attribute
	FurnisherID string `json:"furnisherId"`
}

// CreateAttributeInput carries the caller-supplied fields for a new
// Attribute. The referenced DataType must exist at creation time.
type CreateAttributeInput struct {
	ID          string         `json:"id,omitempty"`
	DataTypeID  string         `json:"dataTypeId"`
	Name        string         `json:"name"`
	DisplayName string         `json:"displayName,omitempty"`
	Description string         `json:"description,omitempty"`
	ValueType   string         `json:"valueType,omitempty"`
	SampleValue string         `json:"sampleValue,omitempty"`
	Region      *string        `json:"region,omitempty"`
	SourcePath  string         `json:"sourcePath,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// BulkAttributeItem is one entry of a best-effort batch insert.
// DataTypeID comes from the batch, not the item. SampleValue is raw
// JSON because bulk payloads sourced from spreadsheets routinely carry
// numbers or booleans where a string is expected.
type BulkAttributeItem struct {
	ID          string          `json:"id,omitempty"`
	Name        string          `json:"name"`
	DisplayName string          `json:"displayName,omitempty"`
	Description string          `json:"description,omitempty"`
	ValueType   string          `json:"valueType,omitempty"`
	SampleValue json.RawMessage `json:"sampleValue,omitempty"`
	Region      *string         `json:"region,omitempty"`
	SourcePath  string          `json:"sourcePath,omitempty"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// UpdateAttributeInput carries a partial update; nil keeps prior value.
type UpdateAttributeInput struct {
	Name        *string         `json:"name,omitempty"`
	DisplayName *string         `json:"displayName,omitempty"`
	Description *string         `json:"description,omitempty"`
	ValueType   *string         `json:"valueType,omitempty"`
	SampleValue *string         `json:"sampleValue,omitempty"`
	Region      *string         `json:"region,omitempty"`
	SourcePath  *string         `json:"sourcePath,omitempty"`
	Metadata    *map[string]any `json:"metadata,omitempty"`
}
