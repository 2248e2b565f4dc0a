package controllers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/form/v4"
)

// formDecoder reads form values into the same json-tagged input structs the
// JSON path uses.
var formDecoder = newFormDecoder()

func newFormDecoder() *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName("json")
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		s := strings.TrimSpace(vals[0])
		if s == "" {
			return FlexInt(0), nil
		}
		n, err := strconv.ParseInt(s, 10, 64)
		return FlexInt(n), err
	}, FlexInt(0))
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		s := strings.TrimSpace(vals[0])
		if s == "" {
			return FlexBool(false), nil
		}
		b, err := strconv.ParseBool(s)
		return FlexBool(b), err
	}, FlexBool(false))
	d.RegisterCustomTypeFunc(func(vals []string) (interface{}, error) {
		return FlexString(vals[0]), nil
	}, FlexString(""))
	return d
}

// bindRequest fills dst from either a JSON body or a multipart form
// using bracketed keys (ingredients[0][id], instructions[1], tags[]), then
// runs the binding rules on it. The uploaded image, if any, is returned.
func bindRequest(c *gin.Context, dst interface{}) (*multipart.FileHeader, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm && c.ContentType() != binding.MIMEPOSTForm {
		return nil, c.ShouldBindJSON(dst)
	}

	if err := c.Request.ParseMultipartForm(32 << 20); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return nil, err
	}
	if err := decodeForm(c.Request.PostForm, dst); err != nil {
		return nil, err
	}
	if err := binding.Validator.ValidateStruct(dst); err != nil {
		return nil, err
	}

	file, err := c.FormFile("image")
	if err != nil {
		return nil, nil
	}
	return file, nil
}

// decodeForm decodes values into dst. Values that fail to convert come back
// as FieldErrors keyed like validation errors.
func decodeForm(values url.Values, dst interface{}) error {
	err := formDecoder.Decode(dst, normalizeForm(values))
	var de form.DecodeErrors
	if errors.As(err, &de) {
		fe := FieldErrors{}
		for ns := range de {
			key := indexPattern.ReplaceAllString(ns, ".$1")
			fe.Add(key, fmt.Sprintf("The %s field is invalid.", attribute(key)))
		}
		return fe
	}
	return err
}

var namedSegment = regexp.MustCompile(`\[([^\]\d][^\]]*)\]`)

// normalizeForm rewrites browser style keys for the decoder: named segments
// become dotted (ingredients[0][id] to ingredients[0].id) and a trailing []
// is dropped so tags[] repeats into a slice. Blank top level values count as
// absent, and the _method override is skipped.
func normalizeForm(values url.Values) url.Values {
	out := url.Values{}
	for key, vals := range values {
		if key == "_method" {
			continue
		}
		name := namedSegment.ReplaceAllString(strings.TrimSuffix(key, "[]"), ".$1")
		for _, v := range vals {
			if v == "" && !strings.ContainsAny(name, "[.") {
				continue
			}
			out.Add(name, v)
		}
	}
	return out
}
