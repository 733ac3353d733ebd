package catalog

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spherical/catalog-extractor/internal/domain"
	"github.com/spherical/catalog-extractor/internal/observability"
)

const (
	defaultDimensions     = "15cm x 12cm"
	defaultSpecifications = "Oxidized finish for antique look"
	productMaterial       = "Resin with 999 Silver Plating"
	minNameLength         = 5
)

// Rules holds the tunable constants of the builder.
type Rules struct {
	MaxProducts        int
	AssociationWindow  int
	PriceFloor         int
	DefaultWeightGrams int
	ImagePagesBefore   int
	ImagePagesAfter    int
	LastImagePage      int
	ImagesPerPage      int
	MaxProductImages   int
}

// DefaultRules returns the rules the catalogue was tuned with.
func DefaultRules() Rules {
	return Rules{
		MaxProducts:        30,
		AssociationWindow:  2,
		PriceFloor:         999,
		DefaultWeightGrams: 500,
		ImagePagesBefore:   1,
		ImagePagesAfter:    2,
		LastImagePage:      40,
		ImagesPerPage:      14,
		MaxProductImages:   3,
	}
}

// BuildReport summarises what a build kept and dropped.
type BuildReport struct {
	Fragments        int
	Groups           int
	DroppedSpecs     int
	ShortNames       int
	TruncatedByLimit int
}

// Builder reconstructs products from page fragments.
type Builder struct {
	rules  Rules
	images domain.ImageLocator
	logger *observability.Logger
}

// NewBuilder creates a builder. images answers which extracted image files exist.
func NewBuilder(rules Rules, images domain.ImageLocator, logger *observability.Logger) *Builder {
	return &Builder{
		rules:  rules,
		images: images,
		logger: observability.OrDefault(logger).WithOperation("catalog"),
	}
}

// Build groups fragments into products, numbering them from 1 in discovery
// order and stopping once MaxProducts have been made.
func (b *Builder) Build(fragments []domain.Fragment) ([]domain.Product, BuildReport) {
	table, dropped := groupFragments(fragments, b.rules.AssociationWindow)
	groups := table.groups()

	report := BuildReport{
		Fragments:    len(fragments),
		Groups:       len(groups),
		DroppedSpecs: dropped,
	}

	products := make([]domain.Product, 0, min(len(groups), b.rules.MaxProducts))
	for i, g := range groups {
		if len(products) == b.rules.MaxProducts {
			report.TruncatedByLimit = len(groups) - i
			break
		}

		if utf8.RuneCountInString(g.key) < minNameLength {
			report.ShortNames++
			b.logger.Debug().Str("name", g.key).Msg("skipping group with short name")
			continue
		}

		products = append(products, b.buildProduct(len(products)+1, g))
	}

	b.logger.Debug().
		Int("fragments", report.Fragments).
		Int("groups", report.Groups).
		Int("dropped_specs", report.DroppedSpecs).
		Int("short_names", report.ShortNames).
		Int("products", len(products)).
		Msg("catalog built")

	return products, report
}

// groupFields are the attributes derived from all fragments of a group.
type groupFields struct {
	weightGrams    int
	dimensions     string
	specifications string
}

func deriveFields(g *group) groupFields {
	var fields groupFields
	var specs []string

	for _, f := range g.fragments {
		if f.Specifications != "" {
			specs = append(specs, f.Specifications)
		}
		if w, ok := ParseWeight(f.FullText); ok {
			fields.weightGrams = w
		}
		if fields.dimensions == "" {
			if d, ok := ParseDimensions(f.FullText); ok {
				fields.dimensions = d
			}
		}
	}

	fields.specifications = strings.TrimSpace(strings.Join(specs, " "))
	return fields
}

func (b *Builder) buildProduct(id int, g *group) domain.Product {
	fields := deriveFields(g)
	category := Categorize(g.key)
	name := CleanName(g.key)

	weight := fmt.Sprintf("%dg", b.rules.DefaultWeightGrams)
	if fields.weightGrams > 0 {
		weight = fmt.Sprintf("%dg", fields.weightGrams)
	}

	dimensions := fields.dimensions
	if dimensions == "" {
		dimensions = defaultDimensions
	}

	specs := fields.specifications
	if specs == "" {
		specs = defaultSpecifications
	}

	return domain.Product{
		ID:             id,
		Name:           name,
		Price:          EstimatePrice(fields.weightGrams, category, b.rules.DefaultWeightGrams, b.rules.PriceFloor),
		Description:    Describe(name, fields.weightGrams),
		Category:       category,
		Rating:         4 + id%2,
		Reviews:        20 + (id*7)%80,
		Images:         b.productImages(g.fragments[0].Page),
		InStock:        true,
		Weight:         weight,
		Dimensions:     dimensions,
		Material:       productMaterial,
		Badge:          badgeFor(id),
		DateAdded:      fmt.Sprintf("2024-%02d-%02d", id%12+1, id%28+1),
		Specifications: specs,
	}
}

// CleanName shortens the catalogue's "Silver-Plating Statue" wording.
func CleanName(name string) string {
	return strings.TrimSpace(strings.ReplaceAll(name, "Silver-Plating Statue", "Silver Statue"))
}

// Describe builds the storefront description. The weight sentence is only
// included when a weight was found in the catalogue.
func Describe(name string, weightGrams int) string {
	var sb strings.Builder
	sb.WriteString("Exquisite ")
	sb.WriteString(strings.ToLower(name))
	sb.WriteString(" crafted with precision and attention to detail. ")
	if weightGrams > 0 {
		fmt.Fprintf(&sb, "This beautiful piece weighs approximately %dg and ", weightGrams)
	}
	sb.WriteString("features 999 silver plating with an oxidized antique finish for a luxurious appearance.")
	return sb.String()
}

func badgeFor(id int) *string {
	var badge string
	switch {
	case id <= 5:
		badge = domain.BadgeNew
	case id%3 == 0:
		badge = domain.BadgeBestseller
	default:
		return nil
	}
	return &badge
}
