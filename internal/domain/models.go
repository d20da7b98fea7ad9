// Package domain holds the core data model shared by every pipeline stage.
package domain

import "image"

// Document represents one source electoral-roll PDF being processed.
type Document struct {
	FilePath   string
	TotalPages int
}

// PageImage represents a single rasterized PDF page.
type PageImage struct {
	PageNumber int // 1-based
	ImagePath  string
	Width      int
	Height     int
}

// ContextRecord carries the document-level metadata recovered from page 1.
// Every field is optional: empty string / nil pointer means the label was not
// found in the recognized text.
type ContextRecord struct {
	ConstituencyName      string
	ConstituencyNumber    *int
	ParliamentaryName     string
	PartNumber            *int
	PublicationDate       string // raw as captured, normalized by the assembler
	QualificationDate     string
	DistrictName          string
	PollingStationName    string
	PollingStationAddress string
	Pincode               *int
}

// GridCell is one card slot on a grid page.
type GridCell struct {
	Row    int
	Col    int
	Bounds image.Rectangle
	Serial int // ordinal within the whole document's voter listing
}

// VoterCardCandidate holds the fields recovered from a single card image.
// Fields other than EpicID and Name may be empty when the OCR text did not
// contain their label.
type VoterCardCandidate struct {
	Serial           int
	EpicID           string
	Name             string
	GuardianName     string
	GuardianRelation string
	HouseDetail      string
	Age              *int
	Gender           string
}

// VoterRecord is the persisted entity. EpicID is the only identity; Serial is
// cosmetic positional metadata.
type VoterRecord struct {
	EpicID             string
	Name               string
	GuardianName       string
	GuardianRelation   string
	Age                *int
	Gender             string
	HouseDetail        string
	FullAddress        string
	Pincode            *int
	SectionNumber      *int
	SectionName        string
	PartNumber         *int
	PollingStationName string
	ConstituencyNumber *int
	ConstituencyName   string
	DistrictName       string
	PublicationDate    string // YYYY-MM-DD, empty when unparseable
	SourceFile         string
}

// DocumentStatus tracks a document through the per-document state machine.
type DocumentStatus string

const (
	StatusPending          DocumentStatus = "pending"
	StatusRasterized       DocumentStatus = "rasterized"
	StatusContextExtracted DocumentStatus = "context_extracted"
	StatusCardsExtracted   DocumentStatus = "cards_extracted"
	StatusPersisted        DocumentStatus = "persisted"
	StatusArchived         DocumentStatus = "archived"
	StatusFailed           DocumentStatus = "failed"
)

// GuardianRelation values as stored on voter records.
const (
	RelationFather  = "Father"
	RelationHusband = "Husband"
)

// IntPtr is a convenience for optional numeric fields.
func IntPtr(v int) *int { return &v }
