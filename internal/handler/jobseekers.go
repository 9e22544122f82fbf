package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

func (h *Handler) CreateJobseeker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName       string   `json:"fullName" validate:"required"`
		Email          string   `json:"email" validate:"required,email"`
		Phone          string   `json:"phone"`
		Skills         []string `json:"skills" validate:"unique"`
		DesiredPayRate float64  `json:"desiredPayRate" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	jobseeker := &domain.Jobseeker{
		FullName:       req.FullName,
		Email:          req.Email,
		Phone:          req.Phone,
		Skills:         req.Skills,
		DesiredPayRate: req.DesiredPayRate,
	}
	if jobseeker.Skills == nil {
		jobseeker.Skills = []string{}
	}

	if err := h.repository.CreateJobseeker(jobseeker); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "jobseekers_email_key":
			h.badRequest(w, r, errors.New("a jobseeker with this email already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "create", "jobseeker", jobseeker.ID, jobseeker.FullName)

	h.successResponse(w, r, "jobseeker created", jobseeker)
}

func (h *Handler) GetAllJobseekers(w http.ResponseWriter, r *http.Request) {
	page, pageSize, offset := h.pageParams(r)
	search := r.URL.Query().Get("search")
	skill := r.URL.Query().Get("skill")

	jobseekers, total, err := h.repository.GetJobseekers(search, skill, pageSize, offset)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "jobseekers fetched", Page{
		Items:    jobseekers,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *Handler) GetJobseeker(w http.ResponseWriter, r *http.Request) {
	jobseeker := r.Context().Value(JobseekerCtx).(*domain.Jobseeker)
	h.successResponse(w, r, "jobseeker fetched", jobseeker)
}

func (h *Handler) UpdateJobseeker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName       *string   `json:"fullName"`
		Email          *string   `json:"email" validate:"omitempty,email"`
		Phone          *string   `json:"phone"`
		Skills         *[]string `json:"skills" validate:"omitempty,unique"`
		DesiredPayRate *float64  `json:"desiredPayRate" validate:"omitempty,gte=0"`
		IsActive       *bool     `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	jobseeker := r.Context().Value(JobseekerCtx).(*domain.Jobseeker)

	if req.FullName != nil {
		jobseeker.FullName = *req.FullName
	}
	if req.Email != nil {
		jobseeker.Email = *req.Email
	}
	if req.Phone != nil {
		jobseeker.Phone = *req.Phone
	}
	if req.Skills != nil {
		jobseeker.Skills = *req.Skills
	}
	if req.DesiredPayRate != nil {
		jobseeker.DesiredPayRate = *req.DesiredPayRate
	}
	if req.IsActive != nil {
		jobseeker.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateJobseeker(jobseeker); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "jobseekers_email_key":
			h.badRequest(w, r, errors.New("a jobseeker with this email already exists"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "jobseeker update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "update", "jobseeker", jobseeker.ID, jobseeker.FullName)

	h.successResponse(w, r, "jobseeker updated", jobseeker)
}

func (h *Handler) DeleteJobseeker(w http.ResponseWriter, r *http.Request) {
	jobseeker := r.Context().Value(JobseekerCtx).(*domain.Jobseeker)

	if err := h.repository.DeleteJobseeker(jobseeker.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.Code == "23503":
			h.errorResponse(w, r, "the jobseeker still has assignments and cannot be deleted")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "delete", "jobseeker", jobseeker.ID, jobseeker.FullName)

	h.successResponse(w, r, "jobseeker deleted", nil)
}
