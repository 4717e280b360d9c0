package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	rulesByEmployee, err := h.repository.GetRulesByEmployee(shop.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "rules retrieved", rulesByEmployee)
}

func (h *Handler) CreateRule(w http.ResponseWriter, r *http.Request) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	var req struct {
		EmployeeID int64           `json:"employeeID" validate:"required"`
		Kind       domain.RuleKind `json:"kind" validate:"required,oneof=exclude_label exclude_days"`
		Payload    struct {
			LabelID int64          `json:"labelId"`
			Day     domain.Weekday `json:"day" validate:"required,min=1,max=7"`
		} `json:"payload" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Kind == domain.RuleExcludeLabel && req.Payload.LabelID == 0 {
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "exclude_label rules need a label id")
		return
	}

	isMember, err := h.repository.IsShopMember(req.EmployeeID, shop.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if !isMember {
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "target employee is not a member of this shop")
		return
	}

	rule := &domain.Rule{
		ShopID:     shop.ID,
		EmployeeID: req.EmployeeID,
		Kind:       req.Kind,
		Payload: domain.RulePayload{
			LabelID: req.Payload.LabelID,
			Day:     req.Payload.Day,
		},
	}

	if err := h.repository.CreateRule(rule); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "rule created", rule)
}

func (h *Handler) DeleteRule(w http.ResponseWriter, r *http.Request) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	ruleIDParam := chi.URLParam(r, "ruleID")
	ruleID, err := strconv.ParseInt(ruleIDParam, 10, 64)
	if err != nil {
		h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "invalid rule id")
		return
	}

	rule, err := h.repository.GetRuleByID(ruleID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "rule not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if rule.ShopID != shop.ID {
		h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "rule not found")
		return
	}

	if err := h.repository.DeleteRule(rule.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "rule deleted", nil)
}
