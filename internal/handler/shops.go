package handler

import (
	"net/http"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (h *Handler) CreateShop(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)

	var req struct {
		Name     string `json:"name" validate:"required"`
		Location string `json:"location"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	shop := &domain.Shop{
		Name:     req.Name,
		Location: req.Location,
		OwnerID:  user.ID,
	}

	if err := h.repository.CreateShop(shop); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shop created", shop)
}

func (h *Handler) GetMyShops(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(CurrentUserCtx).(*domain.User)

	shops, err := h.repository.GetShopsByUser(user.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shops retrieved", shops)
}

func (h *Handler) GetShop(w http.ResponseWriter, r *http.Request) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	members, err := h.repository.GetShopMembers(shop.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "shop retrieved", struct {
		*domain.Shop
		Members []*domain.ShopMember `json:"members"`
	}{shop, members})
}
