package handler

type ContextKey string

var (
	SubCtxKey      ContextKey = "sub"
	CurrentUserCtx ContextKey = "currentUser"
	ShopCtx        ContextKey = "shop"
	ShiftCtx       ContextKey = "shift"
	SwapRequestCtx ContextKey = "swapRequest"
)
