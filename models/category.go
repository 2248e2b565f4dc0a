package models

import (
	"time"
)

type Category struct {
	ID        uint      `json:"id" gorm:"primary_key"`
	Name      string    `json:"name" gorm:"type:varchar(255);unique;not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(255);unique;not null"`
	Recipes   []Recipe  `json:"-" gorm:"foreignkey:CategoryID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Category) BeforeSave() error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

type Cuisine struct {
	ID          uint      `json:"id" gorm:"primary_key"`
	Name        string    `json:"name" gorm:"type:varchar(255);unique;not null"`
	Slug        string    `json:"slug" gorm:"type:varchar(255);index"`
	Description string    `json:"description" gorm:"type:text"`
	Image       *string   `json:"image"`
	ImageURL    *string   `json:"image_url" gorm:"-"`
	Recipes     []Recipe  `json:"-" gorm:"foreignkey:CuisineID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (c *Cuisine) BeforeSave() error {
	if c.Slug == "" {
		c.Slug = Slugify(c.Name)
	}
	return nil
}

type Tag struct {
	ID        uint      `json:"id" gorm:"primary_key"`
	Name      string    `json:"name" gorm:"type:varchar(100);unique;not null"`
	Slug      string    `json:"slug" gorm:"type:varchar(100)"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *Tag) BeforeSave() error {
	if t.Slug == "" {
		t.Slug = Slugify(t.Name)
	}
	return nil
}
