package handler

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
	"github.com/shiftwise-dev/shiftwise/backend/internal/scheduler"
)

func (h *Handler) AutoAssignShifts(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	var req struct {
		DateFrom string `json:"dateFrom" validate:"required,datetime=2006-01-02"`
		DateTo   string `json:"dateTo" validate:"required,datetime=2006-01-02"`
		Seed     *int64 `json:"seed"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	dateFrom, _ := time.ParseInLocation(domain.DateLayout, req.DateFrom, time.UTC)
	dateTo, _ := time.ParseInLocation(domain.DateLayout, req.DateTo, time.UTC)

	if dateTo.Before(dateFrom) {
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "dateTo must not be before dateFrom")
		return
	}
	if rangeDays := int(dateTo.Sub(dateFrom).Hours()/24) + 1; rangeDays > h.config.Scheduler.MaxRangeDays {
		message := fmt.Sprintf("date range spans %d days which exceeds the maximum of %d", rangeDays, h.config.Scheduler.MaxRangeDays)
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, message)
		return
	}

	employees, err := h.repository.GetActiveShopEmployees(shop.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(employees) == 0 {
		h.errorResponse(w, r, http.StatusBadRequest, kindPrecondition, "shop has no active employees to assign")
		return
	}

	labels, err := h.repository.GetShiftLabelsByShop(shop.ID, true)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if len(labels) == 0 {
		h.errorResponse(w, r, http.StatusBadRequest, kindPrecondition, "shop has no active shift labels to schedule")
		return
	}

	rules, err := h.repository.GetRulesByEmployee(shop.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	employeeIDs := make([]int64, 0, len(employees))
	for _, employee := range employees {
		employeeIDs = append(employeeIDs, employee.ID)
	}
	offDays, err := h.repository.GetApprovedOffDays(employeeIDs, dateFrom, dateTo)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// seed weekly counts from shifts already persisted around the range; the
	// range itself is skipped because it gets replaced wholesale below
	weekCounts, err := h.repository.GetWeeklyAssignmentCounts(shop.ID, dateFrom, dateTo, dateFrom, dateTo)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	var rng *rand.Rand
	if req.Seed != nil {
		rng = rand.New(rand.NewSource(*req.Seed))
	}

	result := scheduler.New(employees, labels, rules, offDays, weekCounts, rng).Run(dateFrom, dateTo)

	daysWritten := 0
	for _, day := range result.Days {
		if err := h.writeScheduledDay(r, shop.ID, day); err != nil {
			message := fmt.Sprintf("schedule interrupted after writing %d of %d days: %v", daysWritten, len(result.Days), err)
			h.errorResponse(w, r, http.StatusConflict, kindConflict, message)
			return
		}
		daysWritten++
	}

	h.publishHistory(domain.HistoryAutoAssign, user.ID, shop.ID, map[string]any{
		"dateFrom":      req.DateFrom,
		"dateTo":        req.DateTo,
		"assignedCount": result.AssignedCount,
		"unfilledSlots": result.UnfilledSlots,
	})

	h.successResponse(w, r, "shifts assigned", map[string]any{
		"daysScheduled": daysWritten,
		"assignedCount": result.AssignedCount,
		"unfilledSlots": result.UnfilledSlots,
		"days":          result.Days,
	})
}

// writeScheduledDay replaces one day's shift under the per-(shop, date) redis
// lease so concurrent manual edits fail fast instead of interleaving.
func (h *Handler) writeScheduledDay(r *http.Request, shopID int64, day scheduler.DaySchedule) error {
	release, err := h.acquireShiftLock(r.Context(), shopID, day.Date)
	if err != nil {
		return err
	}
	defer release()

	if _, err := h.repository.ReplaceShiftAssignments(shopID, day.Date, day.Assignments); err != nil {
		return err
	}

	return nil
}
