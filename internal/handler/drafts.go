package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

// draftForms are the forms a draft can be saved under. Anything else is
// rejected so the key space stays bounded.
var draftForms = []string{"client", "jobseeker", "position", "assignment", "timesheet", "bulk_timesheet"}

func draftKey(userID string, form string) string {
	return fmt.Sprintf("draft:%s:%s", userID, form)
}

func (h *Handler) draftParams(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	form := chi.URLParam(r, "form")
	if !slices.Contains(draftForms, form) {
		h.errorResponse(w, r, "unknown form")
		return "", "", false
	}

	sub := r.Context().Value(SubCtxKey).(string)
	return sub, form, true
}

func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	sub, form, ok := h.draftParams(w, r)
	if !ok {
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, int64(h.config.Draft.MaxBytes)+1))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if len(body) > h.config.Draft.MaxBytes {
		h.errorResponse(w, r, "the draft is too large")
		return
	}
	if !json.Valid(body) {
		h.errorResponse(w, r, "the draft must be valid JSON")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.redisClient.Set(ctx, draftKey(sub, form), body, time.Duration(h.config.Draft.Expiration)*time.Second).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "draft saved", nil)
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	sub, form, ok := h.draftParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	body, err := h.redisClient.Get(ctx, draftKey(sub, form)).Bytes()
	if err != nil {
		switch {
		case errors.Is(err, redis.Nil):
			// a missing draft is not an error, the client just starts blank
			h.successResponse(w, r, "no draft", nil)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "draft fetched", json.RawMessage(body))
}

func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	sub, form, ok := h.draftParams(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), time.Duration(h.config.Redis.OperationExpiration)*time.Minute)
	defer cancel()

	if err := h.redisClient.Del(ctx, draftKey(sub, form)).Err(); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "draft deleted", nil)
}
