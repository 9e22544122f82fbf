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

func (h *Handler) CreateTimesheet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AssignmentID int64                   `json:"assignmentID" validate:"required"`
		WeekStart    time.Time               `json:"weekStart" validate:"required"`
		Entries      []domain.TimesheetEntry `json:"entries" validate:"required"`
		Bonus        float64                 `json:"bonus" validate:"gte=0"`
		Deduction    float64                 `json:"deduction" validate:"gte=0"`
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
	if err := utils.ValidateTimesheetEntries(req.WeekStart, req.Entries); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	assignment, err := h.repository.GetAssignmentByID(req.AssignmentID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "assignment not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !assignment.Status.OccupiesCapacity() {
		h.errorResponse(w, r, "timesheets can only be filed against upcoming or active assignments")
		return
	}

	position, err := h.repository.GetPositionByID(assignment.PositionID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// the client never supplies the split or the totals, they are recomputed
	// here from the entries and the position rates
	input := &payroll.WeekInput{
		Threshold: position.OvertimeThreshold,
		Rates: payroll.Rates{
			Pay:          position.PayRate,
			OvertimePay:  position.OvertimePayRate,
			Bill:         position.BillRate,
			OvertimeBill: position.OvertimeBillRate,
		},
		Bonus:     req.Bonus,
		Deduction: req.Deduction,
	}
	for i, entry := range req.Entries {
		input.DailyHours[i] = entry.Hours
	}

	result, err := payroll.Calculate(input)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	timesheet := &domain.Timesheet{
		Number:        uuid.NewString(),
		AssignmentID:  req.AssignmentID,
		WeekStart:     req.WeekStart,
		Entries:       make([]domain.TimesheetEntry, 0, payroll.DaysPerWeek),
		Bonus:         req.Bonus,
		Deduction:     req.Deduction,
		TotalHours:    result.TotalHours,
		RegularHours:  result.RegularHours,
		OvertimeHours: result.OvertimeHours,
		TotalPay:      result.Pay,
		TotalBill:     result.Bill,
	}
	for i, day := range result.Days {
		timesheet.Entries = append(timesheet.Entries, domain.TimesheetEntry{
			Date:          req.Entries[i].Date,
			Hours:         day.Hours,
			RegularHours:  day.RegularHours,
			OvertimeHours: day.OvertimeHours,
		})
	}

	if err := h.repository.CreateTimesheet(timesheet); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "timesheets_assignment_id_week_start_key":
			h.badRequest(w, r, errors.New("a timesheet for this assignment and week already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "create", "timesheet", timesheet.ID, timesheet.Number)

	h.successResponse(w, r, "timesheet created", timesheet)
}

func (h *Handler) GetAllTimesheets(w http.ResponseWriter, r *http.Request) {
	page, pageSize, offset := h.pageParams(r)

	var assignmentID int64
	if v, err := strconv.ParseInt(r.URL.Query().Get("assignmentID"), 10, 64); err == nil {
		assignmentID = v
	}
	status := r.URL.Query().Get("status")

	timesheets, total, err := h.repository.GetTimesheets(assignmentID, status, pageSize, offset)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "timesheets fetched", Page{
		Items:    timesheets,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *Handler) GetTimesheet(w http.ResponseWriter, r *http.Request) {
	timesheet := r.Context().Value(TimesheetCtx).(*domain.Timesheet)
	h.successResponse(w, r, "timesheet fetched", timesheet)
}

func (h *Handler) UpdateTimesheetStatus(w http.ResponseWriter, r *http.Request) {
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

	timesheet := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	if timesheet.Status != domain.TimesheetPending {
		h.errorResponse(w, r, "only pending timesheets can be approved or rejected")
		return
	}

	if err := h.repository.UpdateTimesheetStatus(timesheet, domain.TimesheetStatus(req.Status)); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "timesheet update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "update", "timesheet", timesheet.ID, req.Status)

	h.successResponse(w, r, "timesheet status updated", timesheet)
}

func (h *Handler) DeleteTimesheet(w http.ResponseWriter, r *http.Request) {
	timesheet := r.Context().Value(TimesheetCtx).(*domain.Timesheet)

	if timesheet.Status != domain.TimesheetPending {
		h.errorResponse(w, r, "only pending timesheets can be deleted")
		return
	}

	if err := h.repository.DeleteTimesheet(timesheet.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.logActivityFromRequest(r, "delete", "timesheet", timesheet.ID, timesheet.Number)

	h.successResponse(w, r, "timesheet deleted", nil)
}
