package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// FieldErrors maps a field key such as "ingredients.0.id" to its messages.
type FieldErrors map[string][]string

func (fe FieldErrors) Add(field, msg string) {
	fe[field] = append(fe[field], msg)
}

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fe[keys[0]][0]
}

func (fe FieldErrors) message() string {
	n := 0
	for _, msgs := range fe {
		n += len(msgs)
	}
	first := fe.Error()
	if n <= 1 {
		return first
	}
	more := "error"
	if n > 2 {
		more = "errors"
	}
	return fmt.Sprintf("%s (and %d more %s)", first, n-1, more)
}

func respondValidation(c *gin.Context, fe FieldErrors) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": fe.message(), "errors": fe})
}

var registerOnce sync.Once

// registerValidators teaches gin's validator the json field names, the
// password rule and notblank. Safe to call more than once.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			for _, tag := range []string{"json", "form"} {
				name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
				if name == "-" {
					return ""
				}
				if name != "" {
					return name
				}
			}
			return f.Name
		})
		_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
			return strongPassword(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", validators.NotBlank)
	})
}

func init() {
	registerValidators()
}

// strongPassword wants a letter, a digit and a symbol.
func strongPassword(s string) bool {
	var letter, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}
	return letter && digit && symbol
}

// bindError writes the response for a failed ShouldBind call.
func bindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		respondValidation(c, translate(ve))
		return
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		respondValidation(c, fe)
		return
	}
	var syntax *json.SyntaxError
	if errors.As(err, &syntax) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Malformed request body"})
		return
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fe := FieldErrors{}
		fe.Add(typeErr.Field, fmt.Sprintf("The %s field is invalid.", attribute(typeErr.Field)))
		respondValidation(c, fe)
		return
	}
	c.JSON(http.StatusUnprocessableEntity, gin.H{"message": err.Error()})
}

var indexPattern = regexp.MustCompile(`\[(\d+)\]`)

// fieldKey turns "storeRecipeInput.ingredients[0].id" into "ingredients.0.id".
func fieldKey(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	return indexPattern.ReplaceAllString(ns, ".$1")
}

func attribute(key string) string {
	if strings.Contains(key, ".") {
		return key
	}
	return strings.ReplaceAll(key, "_", " ")
}

func translate(ve validator.ValidationErrors) FieldErrors {
	out := FieldErrors{}
	for _, e := range ve {
		key := fieldKey(e.Namespace())
		if e.Tag() == "eqfield" {
			key = strings.TrimSuffix(key, "_confirmation")
		}
		out.Add(key, fieldMessage(attribute(key), e))
	}
	return out
}

func fieldMessage(attr string, e validator.FieldError) string {
	kind := e.Kind()
	if kind == reflect.Ptr {
		kind = e.Type().Elem().Kind()
	}
	switch e.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", attr)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	case "eqfield":
		return fmt.Sprintf("The %s field confirmation does not match.", attr)
	case "password":
		return fmt.Sprintf("The %s field must contain at least one letter, one number and one symbol.", attr)
	case "max", "lte":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, e.Param())
		case reflect.Slice:
			return fmt.Sprintf("The %s field must not have more than %s items.", attr, e.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, e.Param())
	case "min", "gte":
		switch kind {
		case reflect.String:
			return fmt.Sprintf("The %s field must be at least %s characters.", attr, e.Param())
		case reflect.Slice:
			return fmt.Sprintf("The %s field must have at least %s items.", attr, e.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", attr, e.Param())
	}
	return fmt.Sprintf("The %s field is invalid.", attr)
}

// FlexInt decodes from a JSON number or a numeric string, since multipart
// forms only carry strings.
type FlexInt int64

func (n *FlexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return &json.UnmarshalTypeError{Value: string(b), Type: reflect.TypeOf(*n)}
	}
	*n = FlexInt(v)
	return nil
}

func (n *FlexInt) uintPtr() *uint {
	if n == nil {
		return nil
	}
	v := uint(*n)
	return &v
}

// FlexBool accepts true/false as well as the "1"/"0" strings forms send.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(raw []byte) error {
	v, err := strconv.ParseBool(strings.Trim(string(raw), `"`))
	if err != nil {
		return &json.UnmarshalTypeError{Value: string(raw), Type: reflect.TypeOf(*b)}
	}
	*b = FlexBool(v)
	return nil
}

// FlexString accepts a string or a bare number, so a quantity may be 2 or "2".
type FlexString string

func (s *FlexString) UnmarshalJSON(raw []byte) error {
	if len(raw) > 0 && raw[0] == '"' {
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return &json.UnmarshalTypeError{Value: string(raw), Type: reflect.TypeOf(*s)}
	}
	*s = FlexString(num.String())
	return nil
}
