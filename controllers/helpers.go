package controllers

import (
	"strconv"
	"strings"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

func indexedKey(field string, i int, sub string) string {
	key := field + "." + strconv.Itoa(i)
	if sub != "" {
		key += "." + sub
	}
	return key
}

func optionalString(s *FlexString) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(string(*s))
	if v == "" {
		return nil
	}
	return &v
}
