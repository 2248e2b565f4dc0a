package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/jung-kurt/gofpdf"

	"github.com/Kunxl-4568/VirtualKitchen/models"
)

const popularLimit = 20

type GenerateReportRequest struct {
	ReportType string `json:"reportType" binding:"required,oneof=recipes popular pending ingredients"`
	StartDate  string `json:"startDate" binding:"required"`
	EndDate    string `json:"endDate" binding:"required"`
}

type ReportRow struct {
	Date   string
	Name   string
	Detail string
	Count  int
}

// GenerateReport renders an admin report as a PDF download.
func (h *Controller) GenerateReport(c *gin.Context) {
	var req GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	fe := FieldErrors{}
	startDate, err := time.Parse(time.RFC3339, req.StartDate)
	if err != nil {
		fe.Add("startDate", "The startDate field must be a valid RFC3339 date.")
	}
	endDate, err := time.Parse(time.RFC3339, req.EndDate)
	if err != nil {
		fe.Add("endDate", "The endDate field must be a valid RFC3339 date.")
	}
	if len(fe) == 0 && endDate.Before(startDate) {
		fe.Add("endDate", "The endDate field must be a date after or equal to startDate.")
	}
	if len(fe) > 0 {
		respondValidation(c, fe)
		return
	}

	rows, title, err := fetchReportData(h.DB, req.ReportType, startDate, endDate)
	if err != nil {
		h.serverError(c, "fetch report data", err)
		return
	}

	pdf, err := generatePDF(rows, title, req.ReportType, startDate, endDate)
	if err != nil {
		h.serverError(c, "render report", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s_report.pdf", req.ReportType))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

func fetchReportData(db *gorm.DB, reportType string, startDate, endDate time.Time) ([]ReportRow, string, error) {
	var rows []ReportRow
	var title string

	switch reportType {
	case "recipes", "pending":
		query := db.Preload("User").
			Where("recipes.created_at BETWEEN ? AND ?", startDate, endDate)
		title = "Recipes Report"
		if reportType == "pending" {
			query = query.Where("recipes.is_published = ?", false)
			title = "Pending Recipes Report"
		}
		var recipes []models.Recipe
		if err := query.Scopes(models.Latest).Find(&recipes).Error; err != nil {
			return nil, "", err
		}
		for _, r := range recipes {
			author := ""
			if r.User != nil {
				author = r.User.Name
			}
			rows = append(rows, ReportRow{
				Date:   r.CreatedAt.Format("2006-01-02"),
				Name:   r.Title,
				Detail: author,
				Count:  r.ViewsCount,
			})
		}

	case "popular":
		var recipes []models.Recipe
		if err := db.Preload("Category").
			Scopes(models.Published, models.Popular).
			Limit(popularLimit).
			Find(&recipes).Error; err != nil {
			return nil, "", err
		}
		for _, r := range recipes {
			category := ""
			if r.Category != nil {
				category = r.Category.Name
			}
			rows = append(rows, ReportRow{
				Date:   r.CreatedAt.Format("2006-01-02"),
				Name:   r.Title,
				Detail: category,
				Count:  r.ViewsCount,
			})
		}
		title = "Most Viewed Recipes"

	case "ingredients":
		var usage []struct {
			Name       string
			IsAllergen bool
			Uses       int
		}
		err := db.Table("ingredients").
			Select("ingredients.name, ingredients.is_allergen, COUNT(recipes.id) AS uses").
			Joins("LEFT JOIN ingredient_recipe ON ingredient_recipe.ingredient_id = ingredients.id").
			Joins("LEFT JOIN recipes ON recipes.id = ingredient_recipe.recipe_id AND recipes.deleted_at IS NULL").
			Group("ingredients.id, ingredients.name, ingredients.is_allergen").
			Order("uses DESC").
			Order("ingredients.name ASC").
			Scan(&usage).Error
		if err != nil {
			return nil, "", err
		}
		for _, u := range usage {
			detail := ""
			if u.IsAllergen {
				detail = "allergen"
			}
			rows = append(rows, ReportRow{Name: u.Name, Detail: detail, Count: u.Uses})
		}
		title = "Ingredient Usage Report"

	default:
		return nil, "", fmt.Errorf("invalid report type %q", reportType)
	}

	return rows, title, nil
}

func generatePDF(rows []ReportRow, title, reportType string, startDate, endDate time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "", 12)
	if reportType == "recipes" || reportType == "pending" {
		pdf.CellFormat(0, 10, fmt.Sprintf("Date Range: %s to %s", startDate.Format("2006-01-02"), endDate.Format("2006-01-02")), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 10, fmt.Sprintf("Rows: %d", len(rows)), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	detailHeader, countHeader := "Author", "Views"
	switch reportType {
	case "popular":
		detailHeader = "Category"
	case "ingredients":
		detailHeader, countHeader = "Allergen", "Recipes"
	}

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(30, 10, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(80, 10, "Name", "1", 0, "C", false, 0, "")
	pdf.CellFormat(50, 10, detailHeader, "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 10, countHeader, "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, row := range rows {
		pdf.CellFormat(30, 10, row.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(80, 10, tr(truncate(row.Name, 40)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 10, tr(truncate(row.Detail, 24)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 10, fmt.Sprintf("%d", row.Count), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RecipePDF renders a printable card for one recipe.
func (h *Controller) RecipePDF(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	recipe, err := loadRecipe(h.DB, id)
	if err != nil {
		h.lookupError(c, "Recipe", err)
		return
	}

	data, err := recipeCard(recipe)
	if err != nil {
		h.serverError(c, "render recipe card", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=recipe-%d.pdf", recipe.ID))
	c.Data(http.StatusOK, "application/pdf", data)
}

func recipeCard(r *models.Recipe) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr(r.Title), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.MultiCell(0, 10, tr(r.Title), "", "C", false)
	pdf.Ln(2)

	pdf.SetFont("Arial", "", 11)
	meta := []string{
		fmt.Sprintf("Prep: %d min", r.PrepTime),
		fmt.Sprintf("Cook: %d min", r.CookTime),
		fmt.Sprintf("Serves: %d", r.Servings),
		"Difficulty: " + r.Difficulty,
	}
	pdf.CellFormat(0, 8, strings.Join(meta, "   "), "", 1, "C", false, 0, "")

	var about []string
	if r.Category != nil {
		about = append(about, r.Category.Name)
	}
	if r.Cuisine != nil {
		about = append(about, r.Cuisine.Name)
	}
	if r.User != nil {
		about = append(about, "by "+r.User.Name)
	}
	if len(about) > 0 {
		pdf.CellFormat(0, 8, tr(strings.Join(about, " | ")), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	pdf.MultiCell(0, 6, tr(r.Description), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Ingredients", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, ri := range r.Ingredients {
		pdf.MultiCell(0, 6, tr("- "+ingredientLineText(ri)), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, "Instructions", "B", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, step := range r.Instructions {
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", step.StepNumber, step.Description)), "", "L", false)
		pdf.Ln(1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ingredientLineText formats "2 cup Rice (washed)".
func ingredientLineText(ri models.RecipeIngredient) string {
	parts := []string{ri.Quantity}
	if ri.Unit != nil && *ri.Unit != "" {
		parts = append(parts, *ri.Unit)
	}
	parts = append(parts, ri.Ingredient.Name)
	line := strings.Join(parts, " ")
	if ri.Notes != nil && *ri.Notes != "" {
		line += " (" + *ri.Notes + ")"
	}
	return line
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
