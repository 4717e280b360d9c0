package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

type assignmentInput struct {
	Label struct {
		ID   int64  `json:"id" validate:"required"`
		Name string `json:"name" validate:"required"`
	} `json:"label" validate:"required"`
	EmployeeID      int64  `json:"employeeId"`
	EmployeeName    string `json:"employeeName"`
	DurationMinutes int32  `json:"durationMinutes" validate:"required,min=1"`
}

func toAssignments(inputs []assignmentInput) []domain.Assignment {
	assignments := make([]domain.Assignment, 0, len(inputs))
	for _, in := range inputs {
		assignments = append(assignments, domain.Assignment{
			Label: domain.AssignmentLabel{
				ID:   in.Label.ID,
				Name: in.Label.Name,
			},
			EmployeeID:      in.EmployeeID,
			EmployeeName:    in.EmployeeName,
			DurationMinutes: in.DurationMinutes,
		})
	}
	return assignments
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	from, err := time.ParseInLocation(domain.DateLayout, r.URL.Query().Get("from"), time.UTC)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "from must be a date in the form 2006-01-02")
		return
	}
	to, err := time.ParseInLocation(domain.DateLayout, r.URL.Query().Get("to"), time.UTC)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "to must be a date in the form 2006-01-02")
		return
	}
	if to.Before(from) {
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "to must not be before from")
		return
	}

	shifts, err := h.repository.GetShiftsByShopAndDateRange(shop.ID, from, to)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shifts retrieved", shifts)
}

func (h *Handler) StoreShift(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	var req struct {
		Date        string            `json:"date" validate:"required,datetime=2006-01-02"`
		Assignments []assignmentInput `json:"assignments" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shift, existed, err := h.repository.UpsertShiftAssignments(shop.ID, req.Date, toAssignments(req.Assignments))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishHistory(domain.HistoryAddShift, user.ID, shop.ID, shift)

	message := "shift created"
	if existed {
		message = "shift updated"
	}
	h.successResponse(w, r, message, shift)
}

// RemoveShift clears out assignments from the shift on a given date. Sending
// an empty list wipes the whole day.
func (h *Handler) RemoveShift(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	var req struct {
		Date        string            `json:"date" validate:"required,datetime=2006-01-02"`
		Assignments []assignmentInput `json:"assignments" validate:"dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetShiftByShopAndDate(shop.ID, req.Date); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "shift not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	shift, err := h.repository.ReplaceShiftAssignments(shop.ID, req.Date, toAssignments(req.Assignments))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishHistory(domain.HistoryRemoveShift, user.ID, shop.ID, shift)

	h.successResponse(w, r, "shift assignments removed", shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	var req struct {
		Assignments []assignmentInput `json:"assignments" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	updated, err := h.repository.UpdateShiftAssignmentsByID(shift.ID, toAssignments(req.Assignments))
	if err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishHistory(domain.HistoryUpdateShift, user.ID, shift.ShopID, updated)

	h.successResponse(w, r, "shift updated", updated)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)
	shift := r.Context().Value(ShiftCtx).(*domain.Shift)

	if err := h.repository.DeleteShiftByID(shift.ID); err != nil {
		h.domainError(w, r, err)
		return
	}

	h.publishHistory(domain.HistoryDeleteShift, user.ID, shift.ShopID, shift)

	h.successResponse(w, r, "shift deleted", nil)
}
