package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/crewdesk-dev/back-office/backend/internal/domain"
)

// logActivity records an audit entry. Failures are logged and swallowed so
// bookkeeping never fails the request that triggered it.
func (h *Handler) logActivity(userID int64, action string, entityType string, entityID int64, detail string) {
	activity := &domain.Activity{
		UserID:     userID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail,
	}

	if err := h.repository.InsertActivity(activity); err != nil {
		slog.Error("failed to record activity", "action", action, "entityType", entityType, "entityID", entityID, "error", err)
	}
}

// logActivityFromRequest resolves the acting user from the auth context.
func (h *Handler) logActivityFromRequest(r *http.Request, action string, entityType string, entityID int64, detail string) {
	subString, ok := r.Context().Value(SubCtxKey).(string)
	if !ok {
		return
	}

	userID, err := strconv.ParseInt(subString, 10, 64)
	if err != nil {
		return
	}

	h.logActivity(userID, action, entityType, entityID, detail)
}

func (h *Handler) GetActivities(w http.ResponseWriter, r *http.Request) {
	page, pageSize, offset := h.pageParams(r)

	activities, total, err := h.repository.GetActivities(pageSize, offset)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "activities fetched", Page{
		Items:    activities,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}
