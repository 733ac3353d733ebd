package storage

import (
	"bytes"
	"fmt"

	"github.com/spherical/catalog-extractor/internal/domain"
)

const jsModuleTemplate = `// Generated products from PDF extraction
const %[1]s = %[2]s;

// Export for use in other files
if (typeof module !== 'undefined' && module.exports) {
    module.exports = %[1]s;
}

// Make available globally
if (typeof window !== 'undefined') {
    window.%[1]s = %[1]s;
}
`

// MarshalProducts renders the product list exactly as it appears in
// final_products.json.
func MarshalProducts(products []domain.Product) ([]byte, error) {
	if products == nil {
		products = []domain.Product{}
	}
	data, err := encodeJSON(products)
	if err != nil {
		return nil, domain.IOError("failed to encode products", err)
	}
	return data, nil
}

// RenderJSModule wraps the product payload in a script that exposes it as
// constName to CommonJS and browser consumers.
func RenderJSModule(constName string, payload []byte) []byte {
	return []byte(fmt.Sprintf(jsModuleTemplate, constName, bytes.TrimRight(payload, "\n")))
}

// WriteProducts writes final_products.json and the JS module from one payload
func WriteProducts(jsonPath, jsPath, constName string, products []domain.Product) error {
	payload, err := MarshalProducts(products)
	if err != nil {
		return err
	}
	if err := writeFile(jsonPath, payload); err != nil {
		return err
	}
	if jsPath == "" {
		return nil
	}
	return writeFile(jsPath, RenderJSModule(constName, payload))
}
