package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"business-cards/pkg/apperror"
	"business-cards/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError logs err and writes the status its kind maps to.
// Internal causes are logged but never sent to the client.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal(operation, err)
	}

	fields := []zap.Field{
		zap.Error(err),
		zap.String("operation", operation),
		zap.String("kind", appErr.Kind.String()),
	}

	switch appErr.Kind {
	case apperror.KindInternal:
		log.Error(operation+" failed", fields...)
		utils.ResponseInternalError(w, "Internal server error")
	case apperror.KindValidation:
		log.Warn(operation+" validation failed", fields...)
		var details any
		if len(appErr.Fields) > 0 {
			details = appErr.Fields
		}
		utils.ResponseBadRequest(w, appErr.Reason, details)
	default:
		log.Warn(operation+" failed", fields...)
		utils.ResponseError(w, appErr.Kind.HTTPStatus(), appErr.Reason, nil)
	}
}

// decodeJSON reads the body into dst, answering 400 itself on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}
	return true
}
