package board

import (
	"strconv"
	"strings"
)

// Category is one of the four boards a post can live on.
type Category int

const (
	CategoryAdoption Category = 1
	CategoryReview   Category = 2
	CategorySNS      Category = 3
	CategoryLost     Category = 4
)

var categoryNames = map[Category]string{
	CategoryAdoption: "adoption",
	CategoryReview:   "review",
	CategorySNS:      "sns",
	CategoryLost:     "lost",
}

// Categories lists every board in id order.
func Categories() []Category {
	return []Category{CategoryAdoption, CategoryReview, CategorySNS, CategoryLost}
}

func CategoryByID(id int) (Category, bool) {
	c := Category(id)
	return c, c.Valid()
}

// ParseCategory accepts a category name (any case) or its decimal id. The
// empty string parses to the zero Category, meaning every board.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if id, err := strconv.Atoi(s); err == nil {
		if c, ok := CategoryByID(id); ok {
			return c, nil
		}
		return 0, ErrInvalidCategory
	}
	lower := strings.ToLower(s)
	for c, name := range categoryNames {
		if name == lower {
			return c, nil
		}
	}
	return 0, ErrInvalidCategory
}

func (c Category) ID() int {
	return int(c)
}

func (c Category) Valid() bool {
	_, ok := categoryNames[c]
	return ok
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return ""
}

// LostType distinguishes a missing-animal report from a sighting.
type LostType string

const (
	LostTypeMissing LostType = "missing"
	LostTypeSighted LostType = "sighted"
)

func (t LostType) Valid() bool {
	return t == LostTypeMissing || t == LostTypeSighted
}
