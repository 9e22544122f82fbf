package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
	"github.com/crewdesk-dev/back-office/backend/internal/repository"
	"github.com/crewdesk-dev/back-office/backend/internal/utils"
)

// allowedAssignmentTransitions: upcoming can be activated or cancelled, active
// can be completed or cancelled, terminal statuses stay put.
var allowedAssignmentTransitions = map[domain.AssignmentStatus][]domain.AssignmentStatus{
	domain.AssignmentUpcoming: {domain.AssignmentActive, domain.AssignmentCancelled},
	domain.AssignmentActive:   {domain.AssignmentCompleted, domain.AssignmentCancelled},
}

func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		PositionID  int64     `json:"positionID" validate:"required"`
		JobseekerID int64     `json:"jobseekerID" validate:"required"`
		StartDate   time.Time `json:"startDate" validate:"required"`
		EndDate     time.Time `json:"endDate" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
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

	jobseeker, err := h.repository.GetJobseekerByID(req.JobseekerID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "jobseeker not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !jobseeker.IsActive {
		h.errorResponse(w, r, "the jobseeker is inactive")
		return
	}

	assignment := &domain.Assignment{
		PositionID:  req.PositionID,
		JobseekerID: req.JobseekerID,
		Status:      domain.AssignmentUpcoming,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if err := utils.ValidateAssignmentWithinPosition(assignment, position); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	if err := h.repository.CreateAssignment(assignment); err != nil {
		switch {
		case errors.Is(err, repository.ErrPositionClosed):
			h.errorResponse(w, r, "the position is closed")
		case errors.Is(err, repository.ErrDuplicateAssignment):
			h.errorResponse(w, r, "the jobseeker is already assigned to this position")
		case errors.Is(err, repository.ErrPositionAtCapacity):
			h.errorResponse(w, r, "the position is already at capacity")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	client, err := h.repository.GetClientByID(position.ClientID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	mailMessage := domain.MailMessage{
		Type: "assignment_created",
		To:   jobseeker.Email,
		Data: domain.AssignmentCreatedMailData{
			FullName:      jobseeker.FullName,
			PositionTitle: position.Title,
			ClientName:    client.Name,
			StartDate:     assignment.StartDate.Format("2006-01-02"),
			EndDate:       assignment.EndDate.Format("2006-01-02"),
		},
	}

	if err := h.publishMail(mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.logActivityFromRequest(r, "create", "assignment", assignment.ID, jobseeker.FullName+" -> "+position.Title)

	h.successResponse(w, r, "assignment created", assignment)
}

func (h *Handler) GetAllAssignments(w http.ResponseWriter, r *http.Request) {
	var positionID, jobseekerID int64
	if v, err := strconv.ParseInt(r.URL.Query().Get("positionID"), 10, 64); err == nil {
		positionID = v
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("jobseekerID"), 10, 64); err == nil {
		jobseekerID = v
	}

	assignments, err := h.repository.GetAssignments(positionID, jobseekerID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "assignments fetched", assignments)
}

func (h *Handler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	assignment := r.Context().Value(AssignmentCtx).(*domain.Assignment)
	h.successResponse(w, r, "assignment fetched", assignment)
}

func (h *Handler) UpdateAssignmentStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status" validate:"required,oneof=active completed cancelled"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	assignment := r.Context().Value(AssignmentCtx).(*domain.Assignment)
	target := domain.AssignmentStatus(req.Status)

	allowed := false
	for _, next := range allowedAssignmentTransitions[assignment.Status] {
		if next == target {
			allowed = true
			break
		}
	}
	if !allowed {
		h.errorResponse(w, r, "the assignment cannot move from "+string(assignment.Status)+" to "+string(target))
		return
	}

	if err := h.repository.UpdateAssignmentStatus(assignment, target); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "assignment update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "update", "assignment", assignment.ID, string(target))

	h.successResponse(w, r, "assignment status updated", assignment)
}
