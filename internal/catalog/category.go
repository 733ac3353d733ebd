package catalog

import (
	"strings"

	"github.com/spherical/catalog-extractor/internal/domain"
)

type categoryRule struct {
	keywords []string
	category domain.Category
}

// categoryRules are evaluated top to bottom; the first rule with a keyword
// contained in the name wins. Animal rules precede the royal rule so that
// "Royal Elephant" stays an animal.
var categoryRules = []categoryRule{
	{[]string{"ganesha", "ganesh", "vigneshwara"}, domain.CategoryReligious},
	{[]string{"elephant", "royal elephant", "gaja"}, domain.CategoryAnimals},
	{[]string{"horse", "horses"}, domain.CategoryAnimals},
	{[]string{"swan", "bird", "sparrow"}, domain.CategoryAnimals},
	{[]string{"tortoise", "turtle"}, domain.CategoryAnimals},
	{[]string{"camel"}, domain.CategoryAnimals},
	{[]string{"cow", "mother"}, domain.CategoryAnimals},
	{[]string{"mushroom", "tree"}, domain.CategoryNature},
	{[]string{"royal", "heritage", "antic"}, domain.CategoryRoyal},
}

// Categorize assigns a category from keywords in the product name.
func Categorize(name string) domain.Category {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return domain.CategoryAnimals
}
