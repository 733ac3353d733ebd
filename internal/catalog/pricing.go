package catalog

import (
	"math"

	"github.com/spherical/catalog-extractor/internal/domain"
)

// ratePerGram is the rupee price per gram of each category.
var ratePerGram = map[domain.Category]int{
	domain.CategoryReligious: 8,
	domain.CategoryRoyal:     12,
	domain.CategoryAnimals:   6,
	domain.CategoryNature:    5,
}

const defaultRatePerGram = 6

// EstimatePrice rounds weight times the category rate to the nearest hundred
// and drops one rupee, so prices end in 99. Results below floor become floor.
// A non-positive weight is replaced by defaultGrams.
func EstimatePrice(weightGrams int, category domain.Category, defaultGrams, floor int) int {
	if weightGrams <= 0 {
		weightGrams = defaultGrams
	}

	rate, ok := ratePerGram[category]
	if !ok {
		rate = defaultRatePerGram
	}

	raw := float64(weightGrams) * float64(rate)
	price := int(math.RoundToEven(raw/100)*100) - 1
	if price < floor {
		price = floor
	}
	return price
}
