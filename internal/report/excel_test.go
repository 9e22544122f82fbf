package report

import (
	"testing"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPayrollRegister(t *testing.T) {
	payroll := []*domain.PayrollSummaryRow{
		{JobseekerID: 1, JobseekerName: "Alice Moore", TotalHours: 45, RegularHours: 40, OvertimeHours: 5, TotalPay: 950},
		{JobseekerID: 2, JobseekerName: "Bob Reyes", TotalHours: 38, RegularHours: 38, TotalPay: 760},
	}
	billing := []*domain.BillingSummaryRow{
		{ClientID: 7, ClientName: "Summit Logistics", TotalHours: 83, TotalBill: 2992.5},
	}

	from := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 1, 26, 0, 0, 0, 0, time.UTC)

	f, err := BuildPayrollRegister(payroll, billing, from, to)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Payroll")
	assert.Contains(t, sheets, "Billing")

	label, err := f.GetCellValue("Payroll", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Weeks starting 2026-01-05 through 2026-01-26", label)

	name, err := f.GetCellValue("Payroll", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Alice Moore", name)

	pay, err := f.GetCellValue("Payroll", "F3")
	require.NoError(t, err)
	assert.Equal(t, "950.00", pay)

	client, err := f.GetCellValue("Billing", "B3")
	require.NoError(t, err)
	assert.Equal(t, "Summit Logistics", client)
}

func TestBuildPayrollRegisterEmpty(t *testing.T) {
	from := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)

	f, err := BuildPayrollRegister(nil, nil, from, from)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	header, err := f.GetCellValue("Payroll", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Jobseeker ID", header)
}
