// Package voucher renders check vouchers as printable Excel forms.
package voucher

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/rbcaldoza/docflows/internal/domain/entity"
)

const sheetName = "Check Voucher"

// Exporter renders check voucher forms
type Exporter struct {
	companyName string
	logger      *zap.Logger
}

// NewExporter creates a new voucher exporter
func NewExporter(companyName string, logger *zap.Logger) *Exporter {
	return &Exporter{
		companyName: companyName,
		logger:      logger,
	}
}

// Export renders the voucher form as an xlsx workbook. The check section is
// filled in when a check has been issued against the voucher.
func (e *Exporter) Export(cv *entity.CheckVoucher, check *entity.Check) ([]byte, error) {
	e.logger.Info("Exporting check voucher",
		zap.Int64("cv_id", cv.ID),
		zap.String("cv_number", cv.CVNumber))

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	e.setCell(f, "B1", e.companyName)
	e.setCell(f, "B2", "CHECK VOUCHER")

	e.setCell(f, "A4", "CV Number:")
	e.setCell(f, "B4", cv.CVNumber)
	e.setCell(f, "D4", "Date:")
	e.setCell(f, "E4", cv.CreatedAt.Format("2006-01-02"))

	e.setCell(f, "A6", "Payee:")
	e.setCell(f, "B6", cv.Payee)

	e.setCell(f, "A7", "Particulars:")
	e.setCell(f, "B7", cv.Particulars)

	e.setCell(f, "A9", "Amount:")
	e.setCell(f, "B9", entity.FormatCents(cv.AmountCents))
	e.setCell(f, "A10", "Amount in Words:")
	e.setCell(f, "B10", AmountInWords(cv.AmountCents))

	e.setCell(f, "A12", "Status:")
	e.setCell(f, "B12", cv.Status)

	if check != nil {
		e.setCell(f, "A14", "Check Number:")
		e.setCell(f, "B14", check.CheckNumber)
		e.setCell(f, "A15", "Bank Account:")
		e.setCell(f, "B15", check.BankAccountID)
		e.setCell(f, "A16", "Check Date:")
		e.setCell(f, "B16", check.CheckDate.Format("2006-01-02"))
		if check.DisbursementDate != nil {
			e.setCell(f, "A17", "Disbursement Date:")
			e.setCell(f, "B17", check.DisbursementDate.Format("2006-01-02"))
		}
	}

	e.setCell(f, "A20", "Prepared By:")
	e.setCell(f, "C20", "Verified By:")
	e.setCell(f, "E20", "Approved By:")

	e.setCell(f, "A23", "Printed:")
	e.setCell(f, "B23", time.Now().Format("2006-01-02 15:04"))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render voucher: %w", err)
	}

	return buf.Bytes(), nil
}

// setCell sets a cell value, logging failures instead of aborting the form
func (e *Exporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}
