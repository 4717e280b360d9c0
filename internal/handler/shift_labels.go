package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (h *Handler) GetShiftLabels(w http.ResponseWriter, r *http.Request) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	labels, err := h.repository.GetShiftLabelsByShop(shop.ID, false)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift labels retrieved", labels)
}

func (h *Handler) CreateShiftLabel(w http.ResponseWriter, r *http.Request) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	var req struct {
		Name                   string           `json:"name" validate:"required"`
		DefaultDurationMinutes int32            `json:"defaultDurationMinutes" validate:"required,min=1"`
		ApplicableDays         []domain.Weekday `json:"applicableDays" validate:"required,min=1,dive,min=1,max=7"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	label := &domain.ShiftLabel{
		ShopID:                 shop.ID,
		Name:                   req.Name,
		DefaultDurationMinutes: req.DefaultDurationMinutes,
		ApplicableDays:         req.ApplicableDays,
	}

	if err := h.repository.CreateShiftLabel(label); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift label created", label)
}

func (h *Handler) loadShopLabel(w http.ResponseWriter, r *http.Request) *domain.ShiftLabel {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	labelIDParam := chi.URLParam(r, "labelID")
	labelID, err := strconv.ParseInt(labelIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "invalid label id")
		return nil
	}

	label, err := h.repository.GetShiftLabelByID(labelID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "shift label not found")
		default:
			h.internalServerError(w, r, err)
		}
		return nil
	}

	if label.ShopID != shop.ID {
		h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "shift label not found")
		return nil
	}

	return label
}

func (h *Handler) UpdateShiftLabel(w http.ResponseWriter, r *http.Request) {
	label := h.loadShopLabel(w, r)
	if label == nil {
		return
	}

	var req struct {
		Name                   *string          `json:"name"`
		DefaultDurationMinutes *int32           `json:"defaultDurationMinutes" validate:"omitempty,min=1"`
		ApplicableDays         []domain.Weekday `json:"applicableDays" validate:"omitempty,min=1,dive,min=1,max=7"`
		IsActive               *bool            `json:"isActive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		label.Name = *req.Name
	}
	if req.DefaultDurationMinutes != nil {
		label.DefaultDurationMinutes = *req.DefaultDurationMinutes
	}
	if req.ApplicableDays != nil {
		label.ApplicableDays = req.ApplicableDays
	}
	if req.IsActive != nil {
		label.IsActive = *req.IsActive
	}

	if err := h.repository.UpdateShiftLabel(label); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift label updated", label)
}

func (h *Handler) DeleteShiftLabel(w http.ResponseWriter, r *http.Request) {
	label := h.loadShopLabel(w, r)
	if label == nil {
		return
	}

	if err := h.repository.DeleteShiftLabel(label.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shift label deleted", nil)
}
