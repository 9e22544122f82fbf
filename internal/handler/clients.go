package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

func (h *Handler) CreateClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name" validate:"required"`
		ContactName  string `json:"contactName" validate:"required"`
		ContactEmail string `json:"contactEmail" validate:"required,email"`
		ContactPhone string `json:"contactPhone"`
		Address      string `json:"address"`
		Notes        string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	client := &domain.Client{
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		Notes:        req.Notes,
	}

	if err := h.repository.CreateClient(client); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "clients_name_key":
			h.badRequest(w, r, errors.New("a client with this name already exists"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "create", "client", client.ID, client.Name)

	h.successResponse(w, r, "client created", client)
}

func (h *Handler) GetAllClients(w http.ResponseWriter, r *http.Request) {
	page, pageSize, offset := h.pageParams(r)
	search := r.URL.Query().Get("search")

	clients, total, err := h.repository.GetClients(search, pageSize, offset)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "clients fetched", Page{
		Items:    clients,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *Handler) GetClient(w http.ResponseWriter, r *http.Request) {
	client := r.Context().Value(ClientCtx).(*domain.Client)
	h.successResponse(w, r, "client fetched", client)
}

func (h *Handler) UpdateClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         *string `json:"name"`
		ContactName  *string `json:"contactName"`
		ContactEmail *string `json:"contactEmail" validate:"omitempty,email"`
		ContactPhone *string `json:"contactPhone"`
		Address      *string `json:"address"`
		Notes        *string `json:"notes"`
		IsActive     *bool   `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	client := r.Context().Value(ClientCtx).(*domain.Client)

	if req.Name != nil {
		client.Name = *req.Name
	}
	if req.ContactName != nil {
		client.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		client.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		client.ContactPhone = *req.ContactPhone
	}
	if req.Address != nil {
		client.Address = *req.Address
	}
	if req.Notes != nil {
		client.Notes = *req.Notes
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateClient(client); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "clients_name_key":
			h.badRequest(w, r, errors.New("a client with this name already exists"))
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "client update failed, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "update", "client", client.ID, client.Name)

	h.successResponse(w, r, "client updated", client)
}

func (h *Handler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	client := r.Context().Value(ClientCtx).(*domain.Client)

	if err := h.repository.DeleteClient(client.ID); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.Code == "23503":
			h.errorResponse(w, r, "the client still has positions and cannot be deleted")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.logActivityFromRequest(r, "delete", "client", client.ID, client.Name)

	h.successResponse(w, r, "client deleted", nil)
}
