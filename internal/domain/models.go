package domain

import (
	"time"
)

// Category is the storefront grouping assigned to a product
type Category string

const (
	CategoryReligious Category = "religious"
	CategoryAnimals   Category = "animals"
	CategoryNature    Category = "nature"
	CategoryRoyal     Category = "royal"
)

// Badge values shown on product cards
const (
	BadgeNew        = "new"
	BadgeBestseller = "bestseller"
)

// PageRecord holds the raw text of one PDF page
type PageRecord struct {
	PageNumber int    `json:"page"`
	Text       string `json:"text"`
}

// ImageRef points at an embedded image written out during extraction
type ImageRef struct {
	PageNumber int    `json:"page"`
	Filename   string `json:"filename"`
	Path       string `json:"path"`
}

// ExtractedData is the full output of the raw extraction step.
// Products is always empty; it is kept for compatibility with existing consumers of the file.
type ExtractedData struct {
	Products    []Fragment   `json:"products"`
	Images      []ImageRef   `json:"images"`
	TextContent []PageRecord `json:"text_content"`
}

// Fragment is the set of heuristically tagged lines found on a single page.
// Empty fields were not found on the page.
type Fragment struct {
	Name           string `json:"name,omitempty"`
	PriceText      string `json:"price_text,omitempty"`
	Specifications string `json:"specifications,omitempty"`
	Page           int    `json:"page"`
	FullText       string `json:"full_text"`
}

// HasName reports whether the page yielded a product name line
func (f Fragment) HasName() bool {
	return f.Name != ""
}

// IsSpecification reports whether the fragment carries a spec or price line
func (f Fragment) IsSpecification() bool {
	return f.Specifications != "" || f.PriceText != ""
}

// Product is a storefront product record. Field order matches the published JSON.
type Product struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Price          int      `json:"price"`
	Description    string   `json:"description"`
	Category       Category `json:"category"`
	Rating         int      `json:"rating"`
	Reviews        int      `json:"reviews"`
	Images         []string `json:"images"`
	InStock        bool     `json:"inStock"`
	Weight         string   `json:"weight"`
	Dimensions     string   `json:"dimensions"`
	Material       string   `json:"material"`
	Badge          *string  `json:"badge"`
	DateAdded      string   `json:"dateAdded"`
	Specifications string   `json:"specifications"`
}

// BadgeValue returns the badge or "" when the product has none
func (p Product) BadgeValue() string {
	if p.Badge == nil {
		return ""
	}
	return *p.Badge
}

// EventType represents the type of stream event
type EventType string

const (
	EventStart          EventType = "start"
	EventPageProcessing EventType = "page_processing"
	EventImageSaved     EventType = "image_saved"
	EventPageComplete   EventType = "page_complete"
	EventError          EventType = "error"
	EventComplete       EventType = "complete"
)

// StreamEvent represents an event emitted during processing
type StreamEvent struct {
	Type       EventType   `json:"type"`
	PageNumber int         `json:"page_number,omitempty"`
	TotalPages int         `json:"total_pages,omitempty"`
	Payload    interface{} `json:"payload,omitempty"`
	Timestamp  time.Time   `json:"timestamp"`
}

// ProcessingStats contains metadata about the extraction execution
type ProcessingStats struct {
	TotalTime     time.Duration
	TotalPages    int
	TextPages     int
	ImagesSaved   int
	ImagesSkipped int
}
