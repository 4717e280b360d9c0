package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (h *Handler) RequestOffDay(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)

	var req struct {
		Date   string `json:"date" validate:"required,datetime=2006-01-02"`
		Reason string `json:"reason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	offDay := &domain.OffDay{
		EmployeeID: user.ID,
		Date:       req.Date,
		Reason:     req.Reason,
	}

	if err := h.repository.CreateOffDay(offDay); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "off day requested", offDay)
}

func (h *Handler) GetOffDays(w http.ResponseWriter, r *http.Request) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	offDays, err := h.repository.GetOffDaysByShop(shop.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "off days retrieved", offDays)
}

func (h *Handler) decideOffDay(w http.ResponseWriter, r *http.Request, status domain.OffDayStatus) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	offDayIDParam := chi.URLParam(r, "offDayID")
	offDayID, err := strconv.ParseInt(offDayIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "invalid off day id")
		return
	}

	offDay, err := h.repository.GetOffDayByID(offDayID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "off day not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	isMember, err := h.repository.IsShopMember(offDay.EmployeeID, shop.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !isMember {
		h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "off day not found")
		return
	}

	if err := h.repository.UpdateOffDayStatus(offDay, status); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			// the WHERE status = 'pending' clause matched nothing
			h.errorResponse(w, r, http.StatusConflict, kindInvalidState, "off day has already been decided")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "off day "+string(status), offDay)
}

func (h *Handler) ApproveOffDay(w http.ResponseWriter, r *http.Request) {
	h.decideOffDay(w, r, domain.OffDayApproved)
}

func (h *Handler) RejectOffDay(w http.ResponseWriter, r *http.Request) {
	h.decideOffDay(w, r, domain.OffDayRejected)
}
