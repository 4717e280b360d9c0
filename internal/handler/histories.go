package handler

import (
	"net/http"

	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

func (h *Handler) GetShopHistory(w http.ResponseWriter, r *http.Request) {
	shop := r.Context().Value(ShopCtx).(*domain.Shop)

	histories, err := h.repository.GetHistoriesByShop(shop.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "history retrieved", histories)
}
