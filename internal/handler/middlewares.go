package handler

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/shiftwise-dev/shiftwise/backend/internal/domain"
)

type AuthClaims struct {
	jwt.RegisteredClaims
}

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("request handled", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // slog would mangle the multi-line trace
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// auth verifies the JWT cookie minted by the external auth service and puts
// the subject (user id) on the context. No session state lives here.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("__shiftwise_token")
		if err != nil {
			switch {
			case errors.Is(err, http.ErrNoCookie):
				h.errorResponse(w, r, http.StatusUnauthorized, kindAuthorization, "not logged in")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		tokenString := cookie.Value
		claims := &AuthClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			return []byte(h.config.JWT.Secret), nil
		})
		if err != nil {
			h.errorResponse(w, r, http.StatusUnauthorized, kindAuthorization, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), SubCtxKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) currentUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		subString := r.Context().Value(SubCtxKey).(string)

		sub, err := strconv.ParseInt(subString, 10, 64)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}

		user, err := h.repository.GetUserByID(sub)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, http.StatusUnauthorized, kindAuthorization, "account no longer exists")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		ctx := context.WithValue(r.Context(), CurrentUserCtx, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) shop(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shopIDParam := chi.URLParam(r, "shopID")
		shopID, err := strconv.ParseInt(shopIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "invalid shop id")
			return
		}

		shop, err := h.repository.GetShopByID(shopID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "shop not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		if !shop.IsActive {
			h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "shop not found")
			return
		}

		ctx := context.WithValue(r.Context(), ShopCtx, shop)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireShopManager gates every mutating scheduling operation on the
// owner-or-manager check.
func (h *Handler) requireShopManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(CurrentUserCtx).(*domain.User)
		shop := r.Context().Value(ShopCtx).(*domain.Shop)

		canManage, err := h.repository.CanManageShop(user.ID, shop.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if !canManage {
			h.errorResponse(w, r, http.StatusForbidden, kindAuthorization, "you cannot manage this shop")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) requireShopMember(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := r.Context().Value(CurrentUserCtx).(*domain.User)
		shop := r.Context().Value(ShopCtx).(*domain.Shop)

		isMember, err := h.repository.IsShopMember(user.ID, shop.ID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if !isMember {
			h.errorResponse(w, r, http.StatusForbidden, kindAuthorization, "you are not a member of this shop")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) shiftRecord(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		shiftIDParam := chi.URLParam(r, "shiftID")
		shiftID, err := strconv.ParseInt(shiftIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "invalid shift id")
			return
		}

		shift, err := h.repository.GetShiftByID(shiftID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "shift not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		// the shop is not in the URL on this route, so the manager check
		// happens here against the loaded record
		user := r.Context().Value(CurrentUserCtx).(*domain.User)
		canManage, err := h.repository.CanManageShop(user.ID, shift.ShopID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if !canManage {
			h.errorResponse(w, r, http.StatusForbidden, kindAuthorization, "you cannot manage this shop")
			return
		}

		ctx := context.WithValue(r.Context(), ShiftCtx, shift)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) swapRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestIDParam := chi.URLParam(r, "requestID")
		requestID, err := strconv.ParseInt(requestIDParam, 10, 64)
		if err != nil {
			h.errorResponse(w, r, http.StatusBadRequest, kindValidation, "invalid swap request id")
			return
		}

		req, err := h.repository.GetSwapRequestByID(requestID)
		if err != nil {
			switch {
			case errors.Is(err, sql.ErrNoRows):
				h.errorResponse(w, r, http.StatusNotFound, kindNotFound, "swap request not found")
			default:
				h.internalServerError(w, r, err)
			}
			return
		}

		user := r.Context().Value(CurrentUserCtx).(*domain.User)
		canManage, err := h.repository.CanManageShop(user.ID, req.ShopID)
		if err != nil {
			h.internalServerError(w, r, err)
			return
		}
		if !canManage {
			h.errorResponse(w, r, http.StatusForbidden, kindAuthorization, "you cannot manage this shop")
			return
		}

		ctx := context.WithValue(r.Context(), SwapRequestCtx, req)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
