package main

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/sighc/sighc/pkg/records"
)

const auditSheet = "Auditoría"

var auditHeader = []string{"Id", "Tabla", "Operación", "Registro", "Usuario", "Fecha y hora", "Valores nuevos", "Valores anteriores"}

var auditColumnWidths = []float64{8, 18, 12, 10, 18, 22, 60, 60}

func auditRow(e records.AuditEntry) []interface{} {
	return []interface{}{e.ID, e.Table, e.Operation, e.RecordID, e.UserName, e.OccurredAt, e.NewValues, e.PreviousValues}
}

// writeAuditWorkbook saves entries as a single-sheet workbook at path.
func writeAuditWorkbook(path string, entries []records.AuditEntry) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(auditSheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	if err := f.SetSheetRow(auditSheet, "A1", &auditHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(auditHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(auditSheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}

	for i, w := range auditColumnWidths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(auditSheet, col, col, w); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := auditRow(e)
		if err := f.SetSheetRow(auditSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(auditSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
