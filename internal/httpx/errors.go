package httpx

import (
	"errors"
	"net/http"

	"cercle-be/internal/category"
	"cercle-be/internal/logger"
	"cercle-be/internal/membership"
	"cercle-be/internal/order"
	"cercle-be/internal/penne"
	"cercle-be/internal/pin"
	"cercle-be/internal/pinrequest"
	"cercle-be/internal/user"
	"cercle-be/internal/utils"

	"go.uber.org/zap"
)

var notFoundErrors = []error{
	pin.ErrPinNotFound,
	order.ErrOrderNotFound,
	category.ErrCategoryNotFound,
	membership.ErrCardNotFound,
	user.ErrUserNotFound,
	pinrequest.ErrRequestNotFound,
	penne.ErrRequestNotFound,
}

var conflictErrors = []error{
	user.ErrEmailExists,
	user.ErrMemberIDExists,
	category.ErrCategoryExists,
	membership.ErrCodeTaken,
}

var validationErrors = []error{
	order.ErrEmptyOrder,
	order.ErrInvalidQuantity,
	pin.ErrMissingField,
	category.ErrMissingName,
	category.ErrDefaultCategory,
	membership.ErrInvalidCode,
	membership.ErrInvalidYear,
	user.ErrInvalidRole,
	pinrequest.ErrMissingTitle,
	pinrequest.ErrInvalidQuantity,
	pinrequest.ErrMissingStatus,
	penne.ErrMissingColor,
	penne.ErrMissingHeadSize,
	penne.ErrInvalidStatus,
}

var unauthenticatedErrors = []error{
	user.ErrInvalidCredentials,
	user.ErrAccountInactive,
	user.ErrInvalidToken,
	membership.ErrInvalidToken,
	membership.ErrCardRevoked,
}

var forbiddenErrors = []error{
	order.ErrForbidden,
	penne.ErrForbidden,
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeError maps domain errors onto HTTP statuses. Unrecognized errors
// become opaque 500s so internals never leak to clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var stockErr *order.InsufficientStockError
	switch {
	case errors.As(err, &stockErr):
		utils.WriteJSON(w, map[string]interface{}{
			"error":     "insufficient stock",
			"pin":       stockErr.PinTitle,
			"available": stockErr.Available,
			"requested": stockErr.Requested,
		}, http.StatusBadRequest)
	case matchesAny(err, validationErrors):
		utils.WriteJSONError(w, err.Error(), http.StatusBadRequest)
	case matchesAny(err, unauthenticatedErrors):
		utils.WriteJSONError(w, err.Error(), http.StatusUnauthorized)
	case matchesAny(err, forbiddenErrors):
		utils.WriteJSONError(w, err.Error(), http.StatusForbidden)
	case matchesAny(err, notFoundErrors):
		utils.WriteJSONError(w, err.Error(), http.StatusNotFound)
	case matchesAny(err, conflictErrors):
		utils.WriteJSONError(w, err.Error(), http.StatusConflict)
	default:
		logger.FromCtx(r.Context()).Error("request failed", zap.Error(err))
		utils.WriteJSONError(w, "internal server error", http.StatusInternalServerError)
	}
}
