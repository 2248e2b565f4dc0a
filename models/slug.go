package models

import (
	"github.com/gosimple/slug"
)

// Slugify transliterates s to ASCII and joins its words with dashes, so
// "Crème Brûlée" becomes "creme-brulee".
func Slugify(s string) string {
	return slug.Make(s)
}
