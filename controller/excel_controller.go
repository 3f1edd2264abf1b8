package controller

import (
	"cafewifi/model"
	"cafewifi/repository"
	"cafewifi/utils"
	"errors"
	"fmt"
	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"io"
	"log"
	"net/http"
	"strings"
)

const (
	cafesSheet = "Cafes"
	xlsxMIME   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var cafeColumns = []interface{}{
	"name", "map_url", "img_url", "location", "seats",
	"has_toilet", "has_wifi", "has_sockets", "can_take_calls",
	"coffee_price", "author_name",
}

// ExportCafes streams every cafe as an .xlsx workbook.
func (cc *CafeController) ExportCafes(c *gin.Context) {
	cafes, err := cc.Cafes.List(c.Request.Context())
	if err != nil {
		log.Printf("Failed to fetch cafes for export: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch cafes"})
		return
	}

	xl, err := writeCafesWorkbook(cafes)
	if err != nil {
		log.Printf("Failed to build workbook: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}
	defer xl.Close()

	buf, err := xl.WriteToBuffer()
	if err != nil {
		log.Printf("Failed to write workbook: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build workbook"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="cafes.xlsx"`)
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

// ImportCafes creates cafes from the first sheet of an uploaded workbook,
// authored by the importing admin. Invalid and duplicate rows are skipped.
func (cc *CafeController) ImportCafes(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.AddFlash(c, "warning", "Please choose an Excel file to import.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.AddFlash(c, "warning", "Unable to open the Excel file.")
		c.Redirect(http.StatusFound, "/")
		return
	}
	defer file.Close()

	cafes, skipped, err := readCafesWorkbook(file)
	if err != nil {
		log.Printf("Failed to parse workbook %q: %v", fileHeader.Filename, err)
		utils.AddFlash(c, "warning", "Failed to parse the Excel file.")
		c.Redirect(http.StatusFound, "/")
		return
	}

	admin := utils.CurrentUser(c)
	imported := 0
	for i := range cafes {
		cafes[i].AuthorID = &admin.ID
		if err := cc.Cafes.Create(c.Request.Context(), &cafes[i]); err != nil {
			if !errors.Is(err, repository.ErrCafeNameTaken) {
				log.Printf("Failed to import cafe %q: %v", cafes[i].Name, err)
			}
			skipped++
			continue
		}
		imported++
	}
	log.Printf("Imported %d cafes from %q (%d skipped)", imported, fileHeader.Filename, skipped)

	utils.AddFlash(c, "success", fmt.Sprintf("Imported %d cafes (%d skipped).", imported, skipped))
	c.Redirect(http.StatusFound, "/")
}

func writeCafesWorkbook(cafes []model.Cafe) (*excelize.File, error) {
	xl := excelize.NewFile()
	if err := xl.SetSheetName("Sheet1", cafesSheet); err != nil {
		xl.Close()
		return nil, err
	}
	if err := xl.SetSheetRow(cafesSheet, "A1", &cafeColumns); err != nil {
		xl.Close()
		return nil, err
	}

	for i, cafe := range cafes {
		authorName := ""
		if name := cafe.AuthorName(); name != nil {
			authorName = *name
		}
		coffeePrice := ""
		if cafe.CoffeePrice != nil {
			coffeePrice = *cafe.CoffeePrice
		}
		row := []interface{}{
			cafe.Name, cafe.MapURL, cafe.ImgURL, cafe.Location, cafe.Seats,
			cafe.HasToilet, cafe.HasWifi, cafe.HasSockets, cafe.CanTakeCalls,
			coffeePrice, authorName,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			xl.Close()
			return nil, err
		}
		if err := xl.SetSheetRow(cafesSheet, cell, &row); err != nil {
			xl.Close()
			return nil, err
		}
	}
	return xl, nil
}

// readCafesWorkbook parses the first sheet, skipping the header row. It
// returns the valid cafes and how many rows were skipped.
func readCafesWorkbook(r io.Reader) ([]model.Cafe, int, error) {
	xl, err := excelize.OpenReader(r)
	if err != nil {
		return nil, 0, err
	}
	defer xl.Close()

	sheets := xl.GetSheetList()
	if len(sheets) == 0 {
		return nil, 0, errors.New("workbook has no sheets")
	}
	rows, err := xl.GetRows(sheets[0])
	if err != nil {
		return nil, 0, err
	}
	if len(rows) < 2 {
		return nil, 0, nil
	}

	var (
		cafes   []model.Cafe
		skipped int
	)
	for _, row := range rows[1:] {
		cell := func(i int) string {
			if i < len(row) {
				return strings.TrimSpace(row[i])
			}
			return ""
		}

		cafe := model.Cafe{
			Name:         cell(0),
			MapURL:       cell(1),
			ImgURL:       cell(2),
			Location:     cell(3),
			Seats:        cell(4),
			HasToilet:    checked(cell(5)),
			HasWifi:      checked(cell(6)),
			HasSockets:   checked(cell(7)),
			CanTakeCalls: checked(cell(8)),
		}
		if price := cell(9); price != "" {
			cafe.CoffeePrice = &price
		}

		if cafe.Name == "" || cafe.MapURL == "" || cafe.ImgURL == "" || cafe.Location == "" || cafe.Seats == "" {
			skipped++
			continue
		}
		cafes = append(cafes, cafe)
	}
	return cafes, skipped, nil
}
