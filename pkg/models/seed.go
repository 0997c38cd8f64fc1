package models

// SeedDocument is the fixed bootstrap dataset used to populate an empty
// catalogue or to additively sync new entries into an existing one. Its
// shape mirrors the nested hierarchy (furnishers containing embedded
// dataTypes containing embedded attributes) rather than the flat
// persisted collections.
type SeedDocument struct {
	Furnishers []SeedFurnisher `json:"furnishers" yaml:"furnishers"`
}

type SeedFurnisher struct {
	ID           string         `json:"id" yaml:"id"`
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	ContactName  string         `json:"contactName,omitempty" yaml:"contactName,omitempty"`
	ContactEmail string         `json:"contactEmail,omitempty" yaml:"contactEmail,omitempty"`
	ContactPhone string         `json:"contactPhone,omitempty" yaml:"contactPhone,omitempty"`
	Website      string         `json:"website,omitempty" yaml:"website,omitempty"`
	Regions      []string       `json:"regions,omitempty" yaml:"regions,omitempty"`
	DataTypes    []SeedDataType `json:"dataTypes,omitempty" yaml:"dataTypes,omitempty"`
}

type SeedDataType struct {
	ID          string          `json:"id" yaml:"id"`
	Name        string          `json:"name" yaml:"name"`
	Description string          `json:"description,omitempty" yaml:"description,omitempty"`
	ConfigID    string          `json:"configId,omitempty" yaml:"configId,omitempty"`
	Attributes  []SeedAttribute `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// SeedAttribute has no id of its own: attribute ids are derived
// deterministically from the owning dataType id and the attribute name
// so that re-applying the seed stays stable.
type SeedAttribute struct {
	Name        string         `json:"name" yaml:"name"`
	DisplayName string         `json:"displayName,omitempty" yaml:"displayName,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	ValueType   string         `json:"valueType,omitempty" yaml:"valueType,omitempty"`
	SampleValue string         `json:"sampleValue,omitempty" yaml:"sampleValue,omitempty"`
	Region      *string        `json:"region,omitempty" yaml:"region,omitempty"`
	SourcePath  string         `json:"sourcePath,omitempty" yaml:"sourcePath,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// ExportDocument is the full hierarchy as one nested document with an
// export timestamp, as returned by the export operation.
type ExportDocument struct {
	ExportedAt string             `json:"exportedAt"`
	Furnishers []*FurnisherDetail `json:"furnishers"`
}
