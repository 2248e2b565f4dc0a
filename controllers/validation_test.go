package controllers

import (
	"encoding/json"
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStrongPassword(t *testing.T) {
	assert.True(t, strongPassword("s3cret!pass"))
	assert.False(t, strongPassword("secretpass"))
	assert.False(t, strongPassword("12345678!"))
	assert.False(t, strongPassword("s3cretpass"))
}

func TestFieldKey(t *testing.T) {
	assert.Equal(t, "title", fieldKey("storeRecipeInput.title"))
	assert.Equal(t, "ingredients.0.id", fieldKey("storeRecipeInput.ingredients[0].id"))
	assert.Equal(t, "instructions.3", fieldKey("storeRecipeInput.instructions[3]"))
}

func validationErrors(t *testing.T, v interface{}) FieldErrors {
	t.Helper()
	err := binding.Validator.ValidateStruct(v)
	require.Error(t, err)
	var ve validator.ValidationErrors
	require.ErrorAs(t, err, &ve)
	return translate(ve)
}

func TestTranslateRecipeErrors(t *testing.T) {
	prep := FlexInt(-1)
	in := storeRecipeInput{
		Title:        "Soup",
		PrepTime:     &prep,
		Difficulty:   "extreme",
		Ingredients:  []ingredientLine{{ID: 0, Quantity: "1"}},
		Instructions: []string{"Boil", ""},
	}

	fe := validationErrors(t, &in)
	assert.Equal(t, []string{"The description field is required."}, fe["description"])
	assert.Equal(t, []string{"The prep time field must be at least 0."}, fe["prep_time"])
	assert.Equal(t, []string{"The cook time field is required."}, fe["cook_time"])
	assert.Equal(t, []string{"The selected difficulty is invalid."}, fe["difficulty"])
	assert.Equal(t, []string{"The category id field is required."}, fe["category_id"])
	assert.Equal(t, []string{"The ingredients.0.id field is required."}, fe["ingredients.0.id"])
	assert.Equal(t, []string{"The instructions.1 field is required."}, fe["instructions.1"])
}

func TestBlankStringsAreRequired(t *testing.T) {
	title, name := "  ", "\t"
	fe := validationErrors(t, &updateRecipeInput{Title: &title})
	assert.Equal(t, []string{"The title field is required."}, fe["title"])

	fe = validationErrors(t, &cuisineInput{Name: &name})
	assert.Equal(t, []string{"The name field is required."}, fe["name"])

	fe = validationErrors(t, &nameInput{Name: "   "})
	assert.Equal(t, []string{"The name field is required."}, fe["name"])

	fe = validationErrors(t, &ingredientLine{ID: 1, Quantity: " "})
	assert.Equal(t, []string{"The quantity field is required."}, fe["quantity"])
}

func TestTranslateRegisterErrors(t *testing.T) {
	in := registerInput{
		Name:                 "Cook",
		Email:                "not-an-email",
		Password:             "password",
		PasswordConfirmation: "different",
	}
	fe := validationErrors(t, &in)
	assert.Equal(t, []string{"The email field must be a valid email address."}, fe["email"])
	assert.Contains(t, fe["password"], "The password field must contain at least one letter, one number and one symbol.")
	assert.Contains(t, fe["password"], "The password field confirmation does not match.")
}

func TestFieldErrorsMessage(t *testing.T) {
	fe := FieldErrors{}
	fe.Add("name", "The name field is required.")
	assert.Equal(t, "The name field is required.", fe.message())

	fe.Add("email", "The email field is required.")
	fe.Add("email", "The email field must be a valid email address.")
	assert.Equal(t, "The email field is required. (and 2 more errors)", fe.message())
}

func TestFlexTypes(t *testing.T) {
	var v struct {
		A FlexInt    `json:"a"`
		B FlexInt    `json:"b"`
		C FlexBool   `json:"c"`
		D FlexString `json:"d"`
		E FlexString `json:"e"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":3,"b":"12","c":"1","d":2.5,"e":"a pinch"}`), &v))
	assert.Equal(t, FlexInt(3), v.A)
	assert.Equal(t, FlexInt(12), v.B)
	assert.True(t, bool(v.C))
	assert.Equal(t, FlexString("2.5"), v.D)
	assert.Equal(t, FlexString("a pinch"), v.E)

	assert.Error(t, json.Unmarshal([]byte(`{"a":"lots"}`), &v))
}
