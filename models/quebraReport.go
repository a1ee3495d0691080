package models

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// QuebraReportRow is one consumption line flattened for export. Lines
// whose item was deleted after the fact still export with the recorded
// quantity and an empty item name.
type QuebraReportRow struct {
	QuebraId  int
	Data      string
	Service   string
	Categoria string
	Item      string
	Unidade   string
	Qty       string
	UsarTudo  bool
}

func buildQuebraReportRows(quebras []*Quebra) []QuebraReportRow {
	var rows []QuebraReportRow
	for _, q := range quebras {
		base := QuebraReportRow{
			QuebraId: q.ID,
			Data:     q.Data.Format("2006-01-02"),
			Service:  q.Service.Nome,
		}
		for _, line := range q.Comidas {
			row := base
			row.Categoria = "Comida"
			row.Item = line.Item.Nome
			row.Unidade = string(line.Item.Unidade)
			row.Qty = line.Quantidade.String()
			row.UsarTudo = line.UsarTudo
			rows = append(rows, row)
		}
		for _, line := range q.Bebidas {
			row := base
			row.Categoria = "Bebida"
			row.Item = line.Item.Nome
			row.Unidade = string(line.Item.Unidade)
			row.Qty = line.Quantidade.String()
			row.UsarTudo = line.UsarTudo
			rows = append(rows, row)
		}
		for _, line := range q.Materiais {
			row := base
			row.Categoria = "Material"
			row.Item = line.Item.Nome
			row.Qty = line.Quantidade.String()
			row.UsarTudo = line.UsarTudo
			rows = append(rows, row)
		}
	}
	return rows
}

// ExportQuebrasExcel renders the whole ledger as a spreadsheet, one row
// per consumption line.
func ExportQuebrasExcel(ctx context.Context) (*excelize.File, error) {
	quebras, err := GetAllQuebras(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Sheet1"
	if _, err := f.NewSheet(sheetName); err != nil {
		return nil, err
	}

	// Add headers
	headings := []string{"Quebra", "Data", "Service", "Categoria", "Item", "Unidade", "Quantidade", "UsarTudo"}
	col := 'A'
	for _, h := range headings {
		f.SetCellValue(sheetName, string(col)+"1", h)
		col++
	}

	// Add data
	for i, row := range buildQuebraReportRows(quebras) {
		rowNo := fmt.Sprint(i + 2)
		f.SetCellValue(sheetName, "A"+rowNo, row.QuebraId)
		f.SetCellValue(sheetName, "B"+rowNo, row.Data)
		f.SetCellValue(sheetName, "C"+rowNo, row.Service)
		f.SetCellValue(sheetName, "D"+rowNo, row.Categoria)
		f.SetCellValue(sheetName, "E"+rowNo, row.Item)
		f.SetCellValue(sheetName, "F"+rowNo, row.Unidade)
		f.SetCellValue(sheetName, "G"+rowNo, row.Qty)
		f.SetCellValue(sheetName, "H"+rowNo, row.UsarTudo)
	}

	return f, nil
}
