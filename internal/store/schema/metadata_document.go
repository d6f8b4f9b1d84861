package schema

import (
	"time"

	"gorm.io/datatypes"
)

// MetadataDocument represents the metadata_documents table - published
// tokenURI documents served back verbatim at their public URL
type MetadataDocument struct {
	// ID is the ULID assigned at publish time
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Document is the metadata JSON exactly as published
	Document datatypes.JSON `gorm:"column:document;not null;type:jsonb"`
	// CreatedAt is the timestamp when the document was published
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now()"`
}

// TableName specifies the table name for the MetadataDocument model
func (MetadataDocument) TableName() string {
	return "metadata_documents"
}
