package controllers

import (
	"github.com/jinzhu/gorm"
)

// Page is the paginator shape the frontend reads: data plus page counters.
type Page struct {
	Data        interface{} `json:"data"`
	CurrentPage int         `json:"current_page"`
	LastPage    int         `json:"last_page"`
	PerPage     int         `json:"per_page"`
	Total       int         `json:"total"`
	From        *int        `json:"from"`
	To          *int        `json:"to"`
}

// paginate counts query, then loads one page of it into out. out must be a
// pointer to a slice; the query must not be ordered yet when ordered is nil.
func paginate(query *gorm.DB, ordered func(*gorm.DB) *gorm.DB, page, size int, out interface{}) (*Page, error) {
	var total int
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	lastPage := (total + size - 1) / size
	if lastPage < 1 {
		lastPage = 1
	}
	// Anything past the last page is the same empty page; clamping also keeps
	// the offset from overflowing.
	if page > lastPage+1 {
		page = lastPage + 1
	}

	if ordered != nil {
		query = ordered(query)
	}
	if err := query.Offset((page - 1) * size).Limit(size).Find(out).Error; err != nil {
		return nil, err
	}

	p := &Page{
		Data:        out,
		CurrentPage: page,
		LastPage:    lastPage,
		PerPage:     size,
		Total:       total,
	}
	first := (page-1)*size + 1
	if first <= total {
		last := first + size - 1
		if last > total {
			last = total
		}
		p.From, p.To = &first, &last
	}
	return p, nil
}
