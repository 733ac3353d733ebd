package domain

import "io"

// EmbeddedImage is one image resource found on a page
type EmbeddedImage struct {
	// Index is the 1-based position of the image on its page
	Index int
	// Components is the number of colour components, alpha excluded
	Components int
	// Format is the encoded stream format: "png", "jpg" or "tif"
	Format string
	Data   io.Reader
}

// Document is an opened PDF
type Document interface {
	// NumPages returns the page count
	NumPages() int

	// PageText returns the text of a 1-based page
	PageText(page int) (string, error)

	// PageImages returns the embedded images of a 1-based page in page order
	PageImages(page int) ([]EmbeddedImage, error)

	// Close releases the document
	Close() error
}

// DocumentOpener opens PDF documents for extraction
type DocumentOpener interface {
	Open(path string) (Document, error)
}

// ImageLocator answers whether an extracted image file is available
type ImageLocator interface {
	Exists(filename string) bool
}
