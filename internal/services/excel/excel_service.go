package excel

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/delesray/forum/internal/models"
	"github.com/xuri/excelize/v2"
)

// ContentType is the MIME type of the generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var privilegedColumns = []string{"user_id", "username", "access"}

// ExportPrivilegedUsers writes the grants of a category to an XLSX workbook.
// Rows with write access are highlighted.
func ExportPrivilegedUsers(category string, users []models.PrivilegedUser) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Privileged users"
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	f.SetActiveSheet(0)

	writeStyle, _ := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"C6EFCE"}, // Light green
			Pattern: 1,
		},
	})

	// Title row, then headers
	f.SetCellValue(sheetName, "A1", fmt.Sprintf("Category: %s", category))
	f.SetCellValue(sheetName, "C1", time.Now().UTC().Format(time.RFC3339))

	for i, col := range privilegedColumns {
		f.SetCellValue(sheetName, fmt.Sprintf("%s2", columnToLetter(i+1)), col)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"FFFF00"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err == nil {
		f.SetCellStyle(sheetName, "A2", columnToLetter(len(privilegedColumns))+strconv.Itoa(2), headerStyle)
	}

	f.SetColWidth(sheetName, "A", "A", 12.0)
	f.SetColWidth(sheetName, "B", "B", 30.0)
	f.SetColWidth(sheetName, "C", "C", 24.0)

	if len(users) == 0 {
		f.SetCellValue(sheetName, "A3", "no users hold a grant for this category")
	}
	for j, user := range users {
		rowNum := j + 3
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", rowNum), user.UserID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", rowNum), user.Username)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", rowNum), user.Access)

		if user.Access == models.AccessName(true) {
			f.SetCellStyle(sheetName, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("%s%d", columnToLetter(len(privilegedColumns)), rowNum), writeStyle)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write Excel file: %w", err)
	}
	return buf, nil
}

// Helper function to convert column number to Excel column letter
func columnToLetter(col int) string {
	var result string
	for col > 0 {
		col--
		result = string(rune('A'+col%26)) + result
		col /= 26
	}
	return result
}
