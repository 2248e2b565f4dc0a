package controllers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeForm(t *testing.T) {
	out := normalizeForm(url.Values{
		"ingredients[0][id]": {"4"},
		"instructions[2]":    {"Boil"},
		"tags[]":             {"1", "2"},
		"cuisine_id":         {""},
		"_method":            {"PUT"},
	})
	assert.Equal(t, url.Values{
		"ingredients[0].id": {"4"},
		"instructions[2]":   {"Boil"},
		"tags":              {"1", "2"},
	}, out)
}

func TestDecodeFormBuildsNestedInput(t *testing.T) {
	values := url.Values{
		"title":                    {"Dal"},
		"description":              {"Lentils"},
		"prep_time":                {"10"},
		"cook_time":                {"0"},
		"servings":                 {"4"},
		"difficulty":               {"easy"},
		"category_id":              {"3"},
		"cuisine_id":               {""},
		"is_published":             {"1"},
		"ingredients[1][id]":       {"9"},
		"ingredients[1][quantity]": {"1"},
		"ingredients[0][id]":       {"4"},
		"ingredients[0][quantity]": {"2"},
		"ingredients[0][unit]":     {"cup"},
		"instructions[0]":          {"Rinse"},
		"instructions[1]":          {"Boil"},
		"tags[]":                   {"1", "2"},
		"_method":                  {"PUT"},
	}

	var in storeRecipeInput
	require.NoError(t, decodeForm(values, &in))

	assert.Equal(t, "Dal", in.Title)
	assert.Equal(t, FlexInt(0), *in.CookTime)
	assert.Nil(t, in.CuisineID)
	assert.True(t, bool(*in.IsPublished))
	require.Len(t, in.Ingredients, 2)
	assert.Equal(t, FlexInt(4), in.Ingredients[0].ID)
	assert.Equal(t, FlexString("cup"), *in.Ingredients[0].Unit)
	assert.Equal(t, FlexInt(9), in.Ingredients[1].ID)
	assert.Nil(t, in.Ingredients[1].Unit)
	assert.Equal(t, []string{"Rinse", "Boil"}, in.Instructions)
	assert.Equal(t, []FlexInt{1, 2}, in.Tags)
}

func TestDecodeFormOrdersNumericIndexes(t *testing.T) {
	values := url.Values{}
	for i, step := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"} {
		values.Set("instructions["+itoa(i)+"]", step)
	}
	var in updateRecipeInput
	require.NoError(t, decodeForm(values, &in))
	require.NotNil(t, in.Instructions)
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"}, *in.Instructions)
	assert.Nil(t, in.Ingredients)
	assert.Nil(t, in.Title)
}

func TestDecodeFormReportsBadNumbers(t *testing.T) {
	values := url.Values{
		"servings":           {"four"},
		"ingredients[0][id]": {"x"},
	}
	var in storeRecipeInput
	err := decodeForm(values, &in)
	var fe FieldErrors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, []string{"The servings field is invalid."}, fe["servings"])
	assert.Equal(t, []string{"The ingredients.0.id field is invalid."}, fe["ingredients.0.id"])
}
