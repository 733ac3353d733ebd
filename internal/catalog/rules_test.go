package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spherical/catalog-extractor/internal/domain"
)

func TestParseWeight(t *testing.T) {
	tests := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{"the statue weighs 450 gram total", 450, true},
		{"Weight: 1200GRAMS", 1200, true},
		{"300 gram base, 50 gram stand", 300, true},
		{"weighs 2 kg", 0, false},
		{"0 gram", 0, false},
		{"weighs 300\u00a0gram", 300, true},
		{"weighs 300\u202fgrams", 300, true},
		{"weighs ३०० gram", 300, true},
		{"99999999999999999999 gram", maxWeightGrams, true},
		{"00000000000000000000 gram", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseWeight(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDimensions(t *testing.T) {
	tests := []struct {
		text   string
		want   string
		wantOK bool
	}{
		{"20cm ... 15cm", "20cm x 15cm", true},
		{"20cm", "20cm", true},
		{"Height 12.5 CM, width 8cm, depth 4cm", "12.5cm x 8cm", true},
		{"no measurements here", "", false},
		{"Height 20\u00a0cm", "20cm", true},
		{"20\u00a0cm x 15\u2009cm", "20cm x 15cm", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ParseDimensions(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name string
		want domain.Category
	}{
		{"Ganesha Silver Statue", domain.CategoryReligious},
		{"Lord Vigneshwara Idol", domain.CategoryReligious},
		{"Royal Elephant Statue", domain.CategoryAnimals},
		{"Heritage Horse", domain.CategoryAnimals},
		{"Pair of Swans", domain.CategoryAnimals},
		{"Turtle Figurine", domain.CategoryAnimals},
		{"Desert Camel", domain.CategoryAnimals},
		{"Mother and Calf", domain.CategoryAnimals},
		{"Mushroom Decor", domain.CategoryNature},
		{"Tree of Life", domain.CategoryNature},
		{"Royal Heritage Piece", domain.CategoryRoyal},
		{"Antic Brass Urli", domain.CategoryRoyal},
		{"Abstract Sculpture", domain.CategoryAnimals},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.name))
		})
	}
}

func TestEstimatePrice(t *testing.T) {
	tests := []struct {
		name     string
		weight   int
		category domain.Category
		want     int
	}{
		{"default animals", 500, domain.CategoryAnimals, 2999},
		{"clamped to floor", 10, domain.CategoryAnimals, 999},
		{"missing weight uses default", 0, domain.CategoryReligious, 3999},
		{"royal", 450, domain.CategoryRoyal, 5399},
		{"nature", 1025, domain.CategoryNature, 5099},
		{"half rounds to even down", 375, domain.CategoryAnimals, 2199},
		{"half rounds to even up", 470, domain.CategoryNature, 2399},
		{"unknown category uses default rate", 500, domain.Category("other"), 2999},
		{"capped weight does not overflow", maxWeightGrams, domain.CategoryRoyal, 25769803799},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EstimatePrice(tt.weight, tt.category, 500, 999))
		})
	}
}

func TestEstimatePrice_AlwaysEndsIn99AboveFloor(t *testing.T) {
	categories := []domain.Category{
		domain.CategoryReligious, domain.CategoryRoyal, domain.CategoryAnimals, domain.CategoryNature,
	}
	for _, c := range categories {
		for w := 0; w <= 5000; w += 7 {
			price := EstimatePrice(w, c, 500, 999)
			assert.GreaterOrEqual(t, price, 999)
			assert.Equal(t, 99, price%100, "weight %d category %s", w, c)
		}
	}
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Ganesha Silver Statue", CleanName(" Ganesha Silver-Plating Statue "))
	assert.Equal(t, "Swan Statue", CleanName("Swan Statue"))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t,
		"Exquisite swan statue crafted with precision and attention to detail. "+
			"This beautiful piece weighs approximately 300g and "+
			"features 999 silver plating with an oxidized antique finish for a luxurious appearance.",
		Describe("Swan Statue", 300))

	assert.Equal(t,
		"Exquisite swan statue crafted with precision and attention to detail. "+
			"features 999 silver plating with an oxidized antique finish for a luxurious appearance.",
		Describe("Swan Statue", 0))
}
