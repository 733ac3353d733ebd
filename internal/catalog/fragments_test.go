package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spherical/catalog-extractor/internal/domain"
)

func TestExtractFragments_FirstMatchPerField(t *testing.T) {
	text := "  Royal Elephant Silver-Plating Statue  \n" +
		"\n" +
		"Crafted piece with trunk raised\n" +
		"Size 20cm x 15cm\n" +
		"Height 30 cm\n"

	fragments := ExtractFragments([]domain.PageRecord{{PageNumber: 4, Text: text}})
	require.Len(t, fragments, 1)

	f := fragments[0]
	assert.Equal(t, "Royal Elephant Silver-Plating Statue", f.Name)
	assert.Equal(t, "Size 20cm x 15cm", f.PriceText, "first line with a digit")
	assert.Equal(t, "Size 20cm x 15cm", f.Specifications)
	assert.Equal(t, 4, f.Page)
	assert.Equal(t, text, f.FullText, "full text is kept untrimmed")
}

func TestExtractFragments_Fields(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantName  string
		wantPrice string
		wantSpec  string
	}{
		{
			name:     "figurine keyword is case insensitive",
			text:     "GANESHA FIGURINE",
			wantName: "GANESHA FIGURINE",
		},
		{
			name:      "currency glyph without digits",
			text:      "Price on request ₹",
			wantPrice: "Price on request ₹",
		},
		{
			name:     "weight unit without digits",
			text:     "Weight in KG",
			wantSpec: "Weight in KG",
		},
		{
			name:      "superscript digit counts as a number",
			text:      "Edition ²",
			wantPrice: "Edition ²",
		},
		{
			name:      "devanagari digits count as a number",
			text:      "मूल्य ४५०",
			wantPrice: "मूल्य ४५०",
		},
		{
			name:      "sculpture with measurements",
			text:      "Mushroom Sculpture\nWeighs 450 gram\n12 mm base",
			wantName:  "Mushroom Sculpture",
			wantPrice: "Weighs 450 gram",
			wantSpec:  "12 mm base",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fragments := ExtractFragments([]domain.PageRecord{{PageNumber: 1, Text: tt.text}})
			require.Len(t, fragments, 1)
			assert.Equal(t, tt.wantName, fragments[0].Name)
			assert.Equal(t, tt.wantPrice, fragments[0].PriceText)
			assert.Equal(t, tt.wantSpec, fragments[0].Specifications)
		})
	}
}

func TestExtractFragments_SkipsPagesWithoutCandidates(t *testing.T) {
	pages := []domain.PageRecord{
		{PageNumber: 1, Text: "Welcome to our collection"},
		{PageNumber: 2, Text: "Swan Statue"},
		{PageNumber: 3, Text: "   \n\n"},
	}

	fragments := ExtractFragments(pages)
	require.Len(t, fragments, 1)
	assert.Equal(t, 2, fragments[0].Page)
}
