package report

import (
	"fmt"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	payrollSheet = "Payroll"
	billingSheet = "Billing"
)

// BuildPayrollRegister renders the payroll and billing summaries into a
// two-sheet workbook. The caller owns closing the returned file.
func BuildPayrollRegister(payroll []*domain.PayrollSummaryRow, billing []*domain.BillingSummaryRow, from time.Time, to time.Time) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(billingSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, err
	}

	// builtin format 4: #,##0.00
	moneyFmt := 4
	moneyStyle, err := f.NewStyle(&excelize.Style{
		NumFmt: moneyFmt,
	})
	if err != nil {
		return nil, err
	}

	rangeLabel := fmt.Sprintf("Weeks starting %s through %s", from.Format("2006-01-02"), to.Format("2006-01-02"))

	if err := writePayrollSheet(f, payroll, headerStyle, moneyStyle, rangeLabel); err != nil {
		return nil, err
	}
	if err := writeBillingSheet(f, billing, headerStyle, moneyStyle, rangeLabel); err != nil {
		return nil, err
	}

	return f, nil
}

func writePayrollSheet(f *excelize.File, rows []*domain.PayrollSummaryRow, headerStyle int, moneyStyle int, rangeLabel string) error {
	if err := f.SetCellValue(payrollSheet, "A1", rangeLabel); err != nil {
		return err
	}

	headers := []string{"Jobseeker ID", "Jobseeker", "Total Hours", "Regular Hours", "Overtime Hours", "Total Pay"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(payrollSheet, cell, header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(payrollSheet, "A2", "F2", headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		values := []any{row.JobseekerID, row.JobseekerName, row.TotalHours, row.RegularHours, row.OvertimeHours, row.TotalPay}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+3)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(payrollSheet, cell, value); err != nil {
				return err
			}
		}
	}

	if len(rows) > 0 {
		if err := f.SetCellStyle(payrollSheet, "F3", fmt.Sprintf("F%d", len(rows)+2), moneyStyle); err != nil {
			return err
		}
	}

	return f.SetColWidth(payrollSheet, "B", "F", 16)
}

func writeBillingSheet(f *excelize.File, rows []*domain.BillingSummaryRow, headerStyle int, moneyStyle int, rangeLabel string) error {
	if err := f.SetCellValue(billingSheet, "A1", rangeLabel); err != nil {
		return err
	}

	headers := []string{"Client ID", "Client", "Total Hours", "Total Bill"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 2)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(billingSheet, cell, header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(billingSheet, "A2", "D2", headerStyle); err != nil {
		return err
	}

	for i, row := range rows {
		values := []any{row.ClientID, row.ClientName, row.TotalHours, row.TotalBill}
		for j, value := range values {
			cell, err := excelize.CoordinatesToCellName(j+1, i+3)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(billingSheet, cell, value); err != nil {
				return err
			}
		}
	}

	if len(rows) > 0 {
		if err := f.SetCellStyle(billingSheet, "D3", fmt.Sprintf("D%d", len(rows)+2), moneyStyle); err != nil {
			return err
		}
	}

	return f.SetColWidth(billingSheet, "B", "D", 16)
}
