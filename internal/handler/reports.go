package handler

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/report"
)

func (h *Handler) reportRange(r *http.Request) (time.Time, time.Time, error) {
	from, err := time.Parse("2006-01-02", r.URL.Query().Get("from"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("from must be a date in YYYY-MM-DD form")
	}
	to, err := time.Parse("2006-01-02", r.URL.Query().Get("to"))
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("to must be a date in YYYY-MM-DD form")
	}
	if to.Before(from) {
		return time.Time{}, time.Time{}, errors.New("to must not be before from")
	}
	return from, to, nil
}

func (h *Handler) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.reportRange(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	summary, err := h.repository.GetPayrollSummary(from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "payroll summary fetched", summary)
}

func (h *Handler) GetBillingSummary(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.reportRange(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	summary, err := h.repository.GetBillingSummary(from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "billing summary fetched", summary)
}

// GetPayrollRegister streams both summaries as a two-sheet XLSX workbook.
func (h *Handler) GetPayrollRegister(w http.ResponseWriter, r *http.Request) {
	from, to, err := h.reportRange(r)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	payrollRows, err := h.repository.GetPayrollSummary(from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	billingRows, err := h.repository.GetBillingSummary(from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	f, err := report.BuildPayrollRegister(payrollRows, billingRows, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	defer func() {
		_ = f.Close()
	}()

	filename := fmt.Sprintf("payroll-register_%s_%s.xlsx", from.Format("2006-01-02"), to.Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	if _, err := f.WriteTo(w); err != nil {
		h.logInternalServerError(r, err)
	}
}
