package catalog

import (
	"fmt"
	"os"
	"path/filepath"
)

// ImageFilename returns the name the extractor gives the n-th image of a page.
func ImageFilename(page, index int) string {
	return fmt.Sprintf("product_%d_%d.png", page, index)
}

// DirLocator checks image existence inside a directory on disk.
type DirLocator struct {
	Dir string
}

// NewDirLocator creates a locator rooted at dir
func NewDirLocator(dir string) DirLocator {
	return DirLocator{Dir: dir}
}

// Exists reports whether dir/filename is present
func (l DirLocator) Exists(filename string) bool {
	_, err := os.Stat(filepath.Join(l.Dir, filename))
	return err == nil
}

// productImages collects up to MaxProductImages existing images from the pages
// around mainPage, in page then index order. With nothing found it falls back
// to the first image name of mainPage, whether or not that file exists.
func (b *Builder) productImages(mainPage int) []string {
	first := mainPage - b.rules.ImagePagesBefore
	if first < 1 {
		first = 1
	}
	last := mainPage + b.rules.ImagePagesAfter
	if last > b.rules.LastImagePage {
		last = b.rules.LastImagePage
	}

	var images []string
	for page := first; page <= last && len(images) < b.rules.MaxProductImages; page++ {
		for i := 1; i <= b.rules.ImagesPerPage && len(images) < b.rules.MaxProductImages; i++ {
			name := ImageFilename(page, i)
			if b.images.Exists(name) {
				images = append(images, name)
			}
		}
	}

	if len(images) == 0 {
		return []string{ImageFilename(mainPage, 1)}
	}
	return images
}
