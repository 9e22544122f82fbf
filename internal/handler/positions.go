package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"github.com/crewdesk-dev/back-office/backend/internal/matching"
	"github.com/crewdesk-dev/back-office/backend/internal/repository"
	"github.com/crewdesk-dev/back-office/backend/internal/utils"
)

func (h *Handler) CreatePosition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientID          int64     `json:"clientID" validate:"required"`
		Title             string    `json:"title" validate:"required"`
		Description       string    `json:"description"`
		Skills            []string  `json:"skills" validate:"unique"`
		PayRate           float64   `json:"payRate" validate:"required,gt=0"`
		OvertimePayRate   float64   `json:"overtimePayRate"`
		BillRate          float64   `json:"billRate" validate:"required,gt=0"`
		OvertimeBillRate  float64   `json:"overtimeBillRate"`
		OvertimeThreshold float64   `json:"overtimeThreshold"`
		NumberOfPositions int32     `json:"numberOfPositions" validate:"required,min=1"`
		StartDate         time.Time `json:"startDate" validate:"required"`
		EndDate           time.Time `json:"endDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	position := &domain.Position{
		ClientID:          req.ClientID,
		Title:             req.Title,
		Description:       req.Description,
		Skills:            req.Skills,
		PayRate:           req.PayRate,
		OvertimePayRate:   req.OvertimePayRate,
		BillRate:          req.BillRate,
		OvertimeBillRate:  req.OvertimeBillRate,
		OvertimeThreshold: req.OvertimeThreshold,
		NumberOfPositions: req.NumberOfPositions,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
	}
	if position.Skills == nil {
		position.Skills = []string{}
	}

	// overtime rates default to the regular rates, the threshold to 40 hours
	if position.OvertimePayRate == 0 {
		position.OvertimePayRate = position.PayRate
	}
	if position.OvertimeBillRate == 0 {
		position.OvertimeBillRate = position.BillRate
	}
	if position.OvertimeThreshold == 0 {
		position.OvertimeThreshold = domain.DefaultOvertimeThreshold
	}

	if err := utils.ValidatePositionRates(position); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	if err := utils.ValidatePositionDates(position); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.CreatePosition(position); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "positions_client_id_fkey":
			h.badRequest(w, r, errors.New("client not found"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "create", "position", position.ID, position.Title)

	h.successResponse(w, r, "position created", position)
}

func (h *Handler) GetAllPositions(w http.ResponseWriter, r *http.Request) {
	page, pageSize, offset := h.pageParams(r)

	var clientID int64
	if v, err := strconv.ParseInt(r.URL.Query().Get("clientID"), 10, 64); err == nil {
		clientID = v
	}
	status := r.URL.Query().Get("status")

	// re-derive the denormalized arrays before reading them out
	if err := h.repository.RefreshAssignedJobseekers(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	positions, total, err := h.repository.GetPositions(clientID, status, pageSize, offset)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "positions fetched", Page{
		Items:    positions,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *Handler) GetPosition(w http.ResponseWriter, r *http.Request) {
	position := r.Context().Value(PositionCtx).(*domain.Position)
	h.successResponse(w, r, "position fetched", position)
}

func (h *Handler) UpdatePosition(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title             *string    `json:"title"`
		Description       *string    `json:"description"`
		Skills            *[]string  `json:"skills" validate:"omitempty,unique"`
		PayRate           *float64   `json:"payRate" validate:"omitempty,gt=0"`
		OvertimePayRate   *float64   `json:"overtimePayRate" validate:"omitempty,gt=0"`
		BillRate          *float64   `json:"billRate" validate:"omitempty,gt=0"`
		OvertimeBillRate  *float64   `json:"overtimeBillRate" validate:"omitempty,gt=0"`
		OvertimeThreshold *float64   `json:"overtimeThreshold" validate:"omitempty,gt=0"`
		NumberOfPositions *int32     `json:"numberOfPositions" validate:"omitempty,min=1"`
		StartDate         *time.Time `json:"startDate"`
		EndDate           *time.Time `json:"endDate"`
		Status            *string    `json:"status" validate:"omitempty,oneof=open filled closed"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	position := r.Context().Value(PositionCtx).(*domain.Position)

	if req.Title != nil {
		position.Title = *req.Title
	}
	if req.Description != nil {
		position.Description = *req.Description
	}
	if req.Skills != nil {
		position.Skills = *req.Skills
	}
	if req.PayRate != nil {
		position.PayRate = *req.PayRate
	}
	if req.OvertimePayRate != nil {
		position.OvertimePayRate = *req.OvertimePayRate
	}
	if req.BillRate != nil {
		position.BillRate = *req.BillRate
	}
	if req.OvertimeBillRate != nil {
		position.OvertimeBillRate = *req.OvertimeBillRate
	}
	if req.OvertimeThreshold != nil {
		position.OvertimeThreshold = *req.OvertimeThreshold
	}
	if req.NumberOfPositions != nil {
		position.NumberOfPositions = *req.NumberOfPositions
	}
	if req.StartDate != nil {
		position.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		position.EndDate = *req.EndDate
	}
	if req.Status != nil {
		position.Status = domain.PositionStatus(*req.Status)
	}

	if err := utils.ValidatePositionRates(position); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}
	if err := utils.ValidatePositionDates(position); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.UpdatePosition(position); err != nil {
		switch {
		case errors.Is(err, repository.ErrCapacityBelowAssigned):
			h.errorResponse(w, r, "number of positions cannot drop below the current number of assigned jobseekers")
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "position update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "update", "position", position.ID, position.Title)

	h.successResponse(w, r, "position updated", position)
}

func (h *Handler) DeletePosition(w http.ResponseWriter, r *http.Request) {
	position := r.Context().Value(PositionCtx).(*domain.Position)

	if err := h.repository.DeletePosition(position.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.Code == "23503":
			h.errorResponse(w, r, "the position still has assignments and cannot be deleted")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "delete", "position", position.ID, position.Title)

	h.successResponse(w, r, "position deleted", nil)
}

func (h *Handler) GetPositionMatches(w http.ResponseWriter, r *http.Request) {
	position := r.Context().Value(PositionCtx).(*domain.Position)

	limit := h.config.Matching.Limit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}

	jobseekers, err := h.repository.GetAllActiveJobseekers()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	candidates := matching.Rank(position, jobseekers, limit)

	h.successResponse(w, r, "candidates ranked", candidates)
}
