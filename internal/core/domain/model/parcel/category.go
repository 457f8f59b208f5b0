package parcel

import (
	"fmt"

	"parceltrack/internal/pkg/errs"
)

// Category classifies the contents of a parcel item.
type Category int

const (
	// CategoryUnknown represents an invalid or undefined category.
	CategoryUnknown Category = iota

	CategoryElectronics
	CategoryClothing
	CategoryFood
	CategoryDocuments
	CategoryFurniture
	CategoryOther
)

func getCategoryStrings() map[Category]string {
	return map[Category]string{
		CategoryUnknown:     "unknown",
		CategoryElectronics: "electronics",
		CategoryClothing:    "clothing",
		CategoryFood:        "food",
		CategoryDocuments:   "documents",
		CategoryFurniture:   "furniture",
		CategoryOther:       "other",
	}
}

func getValidCategoryStrings() map[Category]string {
	//nolint:exhaustive // CategoryUnknown is intentionally excluded as it's invalid
	return map[Category]string{
		CategoryElectronics: "electronics",
		CategoryClothing:    "clothing",
		CategoryFood:        "food",
		CategoryDocuments:   "documents",
		CategoryFurniture:   "furniture",
		CategoryOther:       "other",
	}
}

// ParseCategory converts a wire representation back to a Category.
// Returns an error for any string that is not a valid category.
func ParseCategory(s string) (Category, error) {
	for category, str := range getValidCategoryStrings() {
		if str == s {
			return category, nil
		}
	}
	return CategoryUnknown, errs.NewValueIsInvalidErrorWithCause(
		"category",
		fmt.Errorf("%q is not a valid category", s),
	)
}

// Validate checks if the Category value is valid.
func (c Category) Validate() error {
	if _, ok := getValidCategoryStrings()[c]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("category", fmt.Errorf("%d is not a valid category", c))
	}
	return nil
}

// String returns the wire representation of the category.
func (c Category) String() string {
	if str, ok := getCategoryStrings()[c]; ok {
		return str
	}
	return "unknown"
}
