package inquiry

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Sheet1"

// WritePurchaseOrdersXlsx streams the purchase order inquiry as a
// spreadsheet. Caller sets the response headers.
func WritePurchaseOrdersXlsx(w io.Writer, rows []PurchaseOrderRow) error {
	f := excelize.NewFile()
	if _, err := f.NewSheet(exportSheet); err != nil {
		return err
	}

	f.SetCellValue(exportSheet, "A1", "OrderNo")
	f.SetCellValue(exportSheet, "B1", "Supplier")
	f.SetCellValue(exportSheet, "C1", "Reference")
	f.SetCellValue(exportSheet, "D1", "OrderDate")
	f.SetCellValue(exportSheet, "E1", "Location")
	f.SetCellValue(exportSheet, "F1", "Total")
	f.SetCellValue(exportSheet, "G1", "QtyOutstanding")

	for i, row := range rows {
		n := fmt.Sprint(i + 2)
		f.SetCellValue(exportSheet, "A"+n, row.OrderNo)
		f.SetCellValue(exportSheet, "B"+n, row.SuppName)
		f.SetCellValue(exportSheet, "C"+n, row.Reference)
		f.SetCellValue(exportSheet, "D"+n, row.OrdDate.String())
		f.SetCellValue(exportSheet, "E"+n, row.IntoStockLocation)
		f.SetCellValue(exportSheet, "F"+n, row.Total.String())
		f.SetCellValue(exportSheet, "G"+n, row.QtyOutstanding.String())
	}

	return f.Write(w)
}

// WriteAllocationsXlsx streams the supplier allocation inquiry as a
// spreadsheet.
func WriteAllocationsXlsx(w io.Writer, rows []AllocationRow) error {
	f := excelize.NewFile()
	if _, err := f.NewSheet(exportSheet); err != nil {
		return err
	}

	f.SetCellValue(exportSheet, "A1", "TransType")
	f.SetCellValue(exportSheet, "B1", "TransNo")
	f.SetCellValue(exportSheet, "C1", "Supplier")
	f.SetCellValue(exportSheet, "D1", "Reference")
	f.SetCellValue(exportSheet, "E1", "TranDate")
	f.SetCellValue(exportSheet, "F1", "Amount")
	f.SetCellValue(exportSheet, "G1", "Allocated")
	f.SetCellValue(exportSheet, "H1", "LeftToAllocate")

	for i, row := range rows {
		n := fmt.Sprint(i + 2)
		f.SetCellValue(exportSheet, "A"+n, row.TransType)
		f.SetCellValue(exportSheet, "B"+n, row.TransNo)
		f.SetCellValue(exportSheet, "C"+n, row.SuppName)
		f.SetCellValue(exportSheet, "D"+n, row.Reference)
		f.SetCellValue(exportSheet, "E"+n, row.TranDate.String())
		f.SetCellValue(exportSheet, "F"+n, row.OvAmount.String())
		f.SetCellValue(exportSheet, "G"+n, row.Alloc.String())
		f.SetCellValue(exportSheet, "H"+n, row.LeftToAllocate.String())
	}

	return f.Write(w)
}
