package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"github.com/crewdesk-dev/back-office/backend/internal/payroll"
	"github.com/crewdesk-dev/back-office/backend/internal/utils"
)

func (h *Handler) CreateBulkTimesheet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PositionID int64     `json:"positionID" validate:"required"`
		WeekStart  time.Time `json:"weekStart" validate:"required"`
		Items      []struct {
			JobseekerID int64                   `json:"jobseekerID" validate:"required"`
			Entries     []domain.TimesheetEntry `json:"entries" validate:"required"`
			Bonus       float64                 `json:"bonus" validate:"gte=0"`
			Deduction   float64                 `json:"deduction" validate:"gte=0"`
		} `json:"items" validate:"required,min=1,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := utils.ValidateWeekStart(req.WeekStart); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	for i, item := range req.Items {
		if err := utils.ValidateTimesheetEntries(req.WeekStart, item.Entries); err != nil {
			h.errorResponse(w, r, "item "+strconv.Itoa(i+1)+": "+err.Error())
			return
		}
	}

	position, err := h.repository.GetPositionByID(req.PositionID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "position not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	assignments, err := h.repository.GetAssignments(req.PositionID, 0)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	bulk := &domain.BulkTimesheet{
		Number:     uuid.NewString(),
		PositionID: req.PositionID,
		WeekStart:  req.WeekStart,
		Items:      make([]domain.BulkTimesheetItem, 0, len(req.Items)),
	}

	rates := payroll.Rates{
		Pay:          position.PayRate,
		OvertimePay:  position.OvertimePayRate,
		Bill:         position.BillRate,
		OvertimeBill: position.OvertimeBillRate,
	}

	// every item's week is recomputed against the same position rates, then
	// summed into the header totals
	for _, item := range req.Items {
		input := &payroll.WeekInput{
			Threshold: position.OvertimeThreshold,
			Rates:     rates,
			Bonus:     item.Bonus,
			Deduction: item.Deduction,
		}
		for i, entry := range item.Entries {
			input.DailyHours[i] = entry.Hours
		}

		result, err := payroll.Calculate(input)
		if err != nil {
			h.errorResponse(w, r, err.Error())
			return
		}

		bulkItem := domain.BulkTimesheetItem{
			JobseekerID:   item.JobseekerID,
			Entries:       make([]domain.TimesheetEntry, 0, payroll.DaysPerWeek),
			Bonus:         item.Bonus,
			Deduction:     item.Deduction,
			TotalHours:    result.TotalHours,
			RegularHours:  result.RegularHours,
			OvertimeHours: result.OvertimeHours,
			TotalPay:      result.Pay,
			TotalBill:     result.Bill,
		}
		for i, day := range result.Days {
			bulkItem.Entries = append(bulkItem.Entries, domain.TimesheetEntry{
				Date:          item.Entries[i].Date,
				Hours:         day.Hours,
				RegularHours:  day.RegularHours,
				OvertimeHours: day.OvertimeHours,
			})
		}

		bulk.Items = append(bulk.Items, bulkItem)
		bulk.TotalPay += bulkItem.TotalPay
		bulk.TotalBill += bulkItem.TotalBill
	}

	// summing rounded item totals reintroduces float noise
	bulk.TotalPay = payroll.RoundCents(bulk.TotalPay)
	bulk.TotalBill = payroll.RoundCents(bulk.TotalBill)

	if err := utils.ValidateBulkItemsAgainstAssignments(bulk.Items, assignments); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.CreateBulkTimesheet(bulk); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "bulk_timesheets_position_id_week_start_key":
			h.badRequest(w, r, errors.New("a bulk timesheet for this position and week already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "create", "bulk_timesheet", bulk.ID, bulk.Number)

	h.successResponse(w, r, "bulk timesheet created", bulk)
}

func (h *Handler) GetAllBulkTimesheets(w http.ResponseWriter, r *http.Request) {
	page, pageSize, offset := h.pageParams(r)

	var positionID int64
	if v, err := strconv.ParseInt(r.URL.Query().Get("positionID"), 10, 64); err == nil {
		positionID = v
	}
	status := r.URL.Query().Get("status")

	bulks, total, err := h.repository.GetBulkTimesheets(positionID, status, pageSize, offset)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "bulk timesheets fetched", Page{
		Items:    bulks,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *Handler) GetBulkTimesheet(w http.ResponseWriter, r *http.Request) {
	bulk := r.Context().Value(BulkTimesheetCtx).(*domain.BulkTimesheet)
	h.successResponse(w, r, "bulk timesheet fetched", bulk)
}

func (h *Handler) UpdateBulkTimesheetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=approved rejected"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	bulk := r.Context().Value(BulkTimesheetCtx).(*domain.BulkTimesheet)

	if bulk.Status != domain.TimesheetPending {
		h.errorResponse(w, r, "only pending bulk timesheets can be approved or rejected")
		return
	}

	if err := h.repository.UpdateBulkTimesheetStatus(bulk, domain.TimesheetStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "bulk timesheet update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "update", "bulk_timesheet", bulk.ID, req.Status)

	h.successResponse(w, r, "bulk timesheet status updated", bulk)
}

func (h *Handler) DeleteBulkTimesheet(w http.ResponseWriter, r *http.Request) {
	bulk := r.Context().Value(BulkTimesheetCtx).(*domain.BulkTimesheet)

	if bulk.Status != domain.TimesheetPending {
		h.errorResponse(w, r, "only pending bulk timesheets can be deleted")
		return
	}

	if err := h.repository.DeleteBulkTimesheet(bulk.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.logActivityFromRequest(r, "delete", "bulk_timesheet", bulk.ID, bulk.Number)

	h.successResponse(w, r, "bulk timesheet deleted", nil)
}
