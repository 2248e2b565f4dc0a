package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Street Food":        "street-food",
		"  Mac & Cheese!  ":  "mac-and-cheese",
		"Crème Brûlée":       "creme-brulee",
		"Soup!":              "soup",
		"Soup?":              "soup",
		"3-Ingredient Meals": "3-ingredient-meals",
		"---":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
}

func TestBeforeSaveKeepsExplicitSlug(t *testing.T) {
	c := Category{Name: "Dinner", Slug: "evening"}
	assert.NoError(t, c.BeforeSave())
	assert.Equal(t, "evening", c.Slug)

	c = Category{Name: "Late Dinner"}
	assert.NoError(t, c.BeforeSave())
	assert.Equal(t, "late-dinner", c.Slug)
}
