package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (h *Handler) CreateSwapRequest(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	var req struct {
		ShiftLabelID int64  `json:"shiftLabelID" validate:"required"`
		ShiftDate    string `json:"shiftDate" validate:"required,datetime=2006-01-02"`
		RequestedID  int64  `json:"requestedID" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	label, err := h.repository.GetShiftLabelByID(req.ShiftLabelID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "shift label not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}
	if label.ShopID != shop.ID {
		h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "shift label not found")
		return
	}

	isMember, err := h.repository.IsShopMember(req.RequestedID, shop.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !isMember {
		h.errorResponse(w, r, http.StatusBadRequest, kindPrecondition, "requested employee is not a member of this shop")
		return
	}

	swapRequest := &domain.ShiftSwapRequest{
		ShopID:       shop.ID,
		ShiftLabelID: req.ShiftLabelID,
		ShiftDate:    req.ShiftDate,
		RequesterID:  user.ID,
		RequestedID:  req.RequestedID,
	}

	if err := h.repository.CreateSwapRequest(swapRequest); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap request created", swapRequest)
}

func (h *Handler) GetSwapRequests(w http.ResponseWriter, r *http.Request) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	swapRequests, err := h.repository.GetSwapRequestsByShop(shop.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "swap requests retrieved", swapRequests)
}

func (h *Handler) ApproveSwapRequest(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)
	swapRequest := r.Context().Value(SwapRequestCtx).(*domain.ShiftSwapRequest)

	approved, err := h.repository.ApproveSwapRequest(swapRequest.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishHistory(domain.HistoryApproveSwap, user.ID, approved.ShopID, approved)

	h.successResponse(w, r, "swap request approved", approved)
}

func (h *Handler) RejectSwapRequest(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)
	swapRequest := r.Context().Value(SwapRequestCtx).(*domain.ShiftSwapRequest)

	rejected, err := h.repository.RejectSwapRequest(swapRequest.ID)
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishHistory(domain.HistoryRejectSwap, user.ID, rejected.ShopID, rejected)

	h.successResponse(w, r, "swap request rejected", rejected)
}
