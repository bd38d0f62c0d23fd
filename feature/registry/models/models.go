package models

import (
	"fmt"
	"time"
)

// RelationshipRegular is the default classification for a new record.
const RelationshipRegular = "Regular"

// DefaultPhotoLink is the placeholder image assigned when no photo is known.
const DefaultPhotoLink = "https://placehold.co/100x100/EEE/31343C?text=No+Image"

// Batch is a named grouping of records corresponding to one ingested roll
// file or logical import. Names are unique; batches are created lazily on
// first reference, never duplicated.
type Batch struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Record is the canonical persisted entity for one person on a roll.
//
// The parsed fields (serial through address) come from ingestion and are
// never touched by it again; the classification fields (relationship,
// political status, gender, description) are edited directly or through
// sync updates only.
type Record struct {
	ID      uint  `gorm:"primaryKey" json:"id"`
	BatchID uint  `gorm:"index" json:"batch_id"`
	Batch   Batch `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	// Provenance: the roll file this record was parsed from.
	FileName string `gorm:"size:255" json:"file_name"`

	SerialNo          string `gorm:"size:50" json:"serial_no"`
	Name              string `gorm:"type:text" json:"name"`
	VoterNo           string `gorm:"size:100" json:"voter_no"`
	FatherName        string `gorm:"type:text" json:"father_name"`
	MotherName        string `gorm:"type:text" json:"mother_name"`
	Occupation        string `gorm:"type:text" json:"occupation"`
	OccupationDetails string `gorm:"type:text" json:"occupation_details"`
	BirthDate         string `gorm:"size:100" json:"birth_date"`
	Address           string `gorm:"type:text" json:"address"`

	PhoneNumber    string `gorm:"size:50" json:"phone_number"`
	WhatsappNumber string `gorm:"size:100" json:"whatsapp_number"`
	FacebookLink   string `gorm:"type:text" json:"facebook_link"`
	TiktokLink     string `gorm:"type:text" json:"tiktok_link"`
	YoutubeLink    string `gorm:"type:text" json:"youtube_link"`
	InstaLink      string `gorm:"type:text" json:"insta_link"`
	PhotoLink      string `gorm:"type:text" json:"photo_link"`

	Description        string `gorm:"type:text" json:"description"`
	PoliticalStatus    string `gorm:"type:text" json:"political_status"`
	RelationshipStatus string `gorm:"size:20" json:"relationship_status"`
	Gender             string `gorm:"size:10" json:"gender"`
	Age                *int   `json:"age"`

	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the record against the schema constraints that are not
// expressible as column types. Name is the only mandatory field.
func (r Record) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("record name is required")
	}
	if r.Age != nil && *r.Age < 0 {
		return fmt.Errorf("record age must not be negative")
	}
	return nil
}

// NewRecord builds a record with the classification defaults applied.
func NewRecord() Record {
	return Record{
		RelationshipStatus: RelationshipRegular,
		PhotoLink:          DefaultPhotoLink,
	}
}
