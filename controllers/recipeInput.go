package controllers

import (
	"strings"

	"github.com/jinzhu/gorm"

	"github.com/Kunxl-4568/VirtualKitchen/models"
)

type ingredientLine struct {
	ID       FlexInt     `json:"id" binding:"required,gte=1"`
	Quantity FlexString  `json:"quantity" binding:"required,notblank,max=100"`
	Unit     *FlexString `json:"unit" binding:"omitempty,max=20"`
	Notes    *FlexString `json:"notes" binding:"omitempty,max=1000"`
}

type storeRecipeInput struct {
	Title        string           `json:"title" binding:"required,notblank,max=255"`
	Description  string           `json:"description" binding:"required,notblank"`
	PrepTime     *FlexInt         `json:"prep_time" binding:"required,gte=0"`
	CookTime     *FlexInt         `json:"cook_time" binding:"required,gte=0"`
	Servings     *FlexInt         `json:"servings" binding:"required,gte=1"`
	Difficulty   string           `json:"difficulty" binding:"required,oneof=easy medium hard"`
	CategoryID   *FlexInt         `json:"category_id" binding:"required"`
	CuisineID    *FlexInt         `json:"cuisine_id"`
	IsPublished  *FlexBool        `json:"is_published"`
	Ingredients  []ingredientLine `json:"ingredients" binding:"required,min=1,dive"`
	Instructions []string         `json:"instructions" binding:"required,min=1,dive,required,notblank,max=1000"`
	Tags         []FlexInt        `json:"tags"`
}

// updateRecipeInput leaves a field untouched when it is absent. A cuisine_id
// of 0 clears the cuisine.
type updateRecipeInput struct {
	Title        *string           `json:"title" binding:"omitempty,notblank,max=255"`
	Description  *string           `json:"description" binding:"omitempty,notblank"`
	PrepTime     *FlexInt          `json:"prep_time" binding:"omitempty,gte=0"`
	CookTime     *FlexInt          `json:"cook_time" binding:"omitempty,gte=0"`
	Servings     *FlexInt          `json:"servings" binding:"omitempty,gte=1"`
	Difficulty   *string           `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	CategoryID   *FlexInt          `json:"category_id"`
	CuisineID    *FlexInt          `json:"cuisine_id"`
	IsPublished  *FlexBool         `json:"is_published"`
	Ingredients  *[]ingredientLine `json:"ingredients" binding:"omitempty,min=1,dive"`
	Instructions *[]string         `json:"instructions" binding:"omitempty,min=1,dive,required,notblank,max=1000"`
	Tags         *[]FlexInt        `json:"tags"`
}

func (in *storeRecipeInput) recipe(userID uint) *models.Recipe {
	r := &models.Recipe{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		PrepTime:    int(*in.PrepTime),
		CookTime:    int(*in.CookTime),
		Servings:    int(*in.Servings),
		Difficulty:  in.Difficulty,
		UserID:      userID,
		CategoryID:  uint(*in.CategoryID),
		IsPublished: in.IsPublished != nil && bool(*in.IsPublished),
	}
	if in.CuisineID != nil && *in.CuisineID > 0 {
		r.CuisineID = in.CuisineID.uintPtr()
	}
	return r
}

// changes returns the column updates the input asks for.
func (in *updateRecipeInput) changes() map[string]interface{} {
	cols := map[string]interface{}{}
	if in.Title != nil {
		cols["title"] = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		cols["description"] = strings.TrimSpace(*in.Description)
	}
	if in.PrepTime != nil {
		cols["prep_time"] = int(*in.PrepTime)
	}
	if in.CookTime != nil {
		cols["cook_time"] = int(*in.CookTime)
	}
	if in.Servings != nil {
		cols["servings"] = int(*in.Servings)
	}
	if in.Difficulty != nil {
		cols["difficulty"] = *in.Difficulty
	}
	if in.CategoryID != nil {
		cols["category_id"] = uint(*in.CategoryID)
	}
	if in.CuisineID != nil {
		if *in.CuisineID > 0 {
			cols["cuisine_id"] = uint(*in.CuisineID)
		} else {
			cols["cuisine_id"] = nil
		}
	}
	if in.IsPublished != nil {
		cols["is_published"] = bool(*in.IsPublished)
	}
	return cols
}

type recipeRefs struct {
	CategoryID  *FlexInt
	CuisineID   *FlexInt
	Ingredients []ingredientLine
	Tags        []FlexInt
}

// checkRefs verifies that every referenced row exists.
func checkRefs(db *gorm.DB, refs recipeRefs) (FieldErrors, error) {
	fe := FieldErrors{}

	if refs.CategoryID != nil {
		ok, err := exists(db, &models.Category{}, []uint{uint(*refs.CategoryID)})
		if err != nil {
			return nil, err
		}
		if !ok {
			fe.Add("category_id", "The selected category id is invalid.")
		}
	}
	if refs.CuisineID != nil && *refs.CuisineID > 0 {
		ok, err := exists(db, &models.Cuisine{}, []uint{uint(*refs.CuisineID)})
		if err != nil {
			return nil, err
		}
		if !ok {
			fe.Add("cuisine_id", "The selected cuisine id is invalid.")
		}
	}

	if len(refs.Ingredients) > 0 {
		ids := make([]uint, 0, len(refs.Ingredients))
		for _, line := range refs.Ingredients {
			ids = append(ids, uint(line.ID))
		}
		found, err := existingIDs(db, &models.Ingredient{}, ids)
		if err != nil {
			return nil, err
		}
		for i, line := range refs.Ingredients {
			if !found[uint(line.ID)] {
				fe.Add(indexedKey("ingredients", i, "id"), "The selected ingredients."+itoa(i)+".id is invalid.")
			}
		}
	}

	if len(refs.Tags) > 0 {
		ids := make([]uint, 0, len(refs.Tags))
		for _, t := range refs.Tags {
			ids = append(ids, uint(t))
		}
		found, err := existingIDs(db, &models.Tag{}, ids)
		if err != nil {
			return nil, err
		}
		for i, t := range refs.Tags {
			if !found[uint(t)] {
				fe.Add(indexedKey("tags", i, ""), "The selected tags."+itoa(i)+" is invalid.")
			}
		}
	}

	if len(fe) == 0 {
		return nil, nil
	}
	return fe, nil
}

func exists(db *gorm.DB, model interface{}, ids []uint) (bool, error) {
	found, err := existingIDs(db, model, ids)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if !found[id] {
			return false, nil
		}
	}
	return true, nil
}

func existingIDs(db *gorm.DB, model interface{}, ids []uint) (map[uint]bool, error) {
	var found []uint
	if err := db.Model(model).Where("id IN (?)", ids).Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	set := make(map[uint]bool, len(found))
	for _, id := range found {
		set[id] = true
	}
	return set, nil
}

// dedupeLines keeps the first position of each ingredient and the values of
// its last occurrence.
func dedupeLines(lines []ingredientLine) []ingredientLine {
	pos := map[FlexInt]int{}
	out := make([]ingredientLine, 0, len(lines))
	for _, line := range lines {
		if i, ok := pos[line.ID]; ok {
			out[i] = line
			continue
		}
		pos[line.ID] = len(out)
		out = append(out, line)
	}
	return out
}
