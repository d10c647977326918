package controllers

import (
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"cleanup-be/models"
	"cleanup-be/store"
)

var (
	errorMessageMap = map[int64]string{
		999:  "Something went wrong",
		1000: "User not authenticated",
		1001: "Admin access required",

		1010: "Invalid parameters",
		1011: "Cannot parse request",
		1012: "Invalid ID",

		1100: store.ErrDuplicateEmail.Error(),
		1101: store.ErrUserNotFound.Error(),
		1102: "Invalid credentials",
		1103: "Account is not active",
		1104: store.ErrInvalidResetToken.Error(),

		1200: store.ErrRequestNotFound.Error(),
		1201: models.ErrInvalidStatus.Error(),
		1202: models.ErrInvalidDate.Error(),
		1203: models.ErrInvalidTransition.Error(),
	}

	errorInternalServer    = errorJSON(999)
	errorNotAuthenticated  = errorJSON(1000)
	errorInvalidParameters = errorJSON(1010)
	errorCannotParse       = errorJSON(1011)
	errorInvalidID         = errorJSON(1012)

	errorDuplicateEmail     = errorJSON(1100)
	errorUserNotFound       = errorJSON(1101)
	errorInvalidCredentials = errorJSON(1102)
	errorAccountInactive    = errorJSON(1103)
	errorInvalidResetToken  = errorJSON(1104)

	errorRequestNotFound   = errorJSON(1200)
	errorInvalidStatus     = errorJSON(1201)
	errorInvalidDate       = errorJSON(1202)
	errorInvalidTransition = errorJSON(1203)
)

type ErrorResponse struct {
	Code    int64               `json:"code"`
	Message string              `json:"error"`
	Detail  string              `json:"detail,omitempty"`
	Fields  []models.FieldError `json:"fields,omitempty"`
}

// errorJSON converts an error code to a standardized error object
func errorJSON(code int64) ErrorResponse {
	message, ok := errorMessageMap[code]
	if !ok {
		message = "unknown"
	}
	return ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func abortWithError(c *gin.Context, status int, resp ErrorResponse) {
	c.AbortWithStatusJSON(status, resp)
}

// respondError maps a domain or storage error onto an HTTP response. Unknown
// errors are logged and reported without detail.
func respondError(c *gin.Context, err error) {
	if verrs, ok := models.AsValidationErrors(err); ok {
		resp := errorInvalidParameters
		resp.Fields = verrs
		abortWithError(c, http.StatusBadRequest, resp)
		return
	}

	switch {
	case errors.Is(err, store.ErrRequestNotFound):
		abortWithError(c, http.StatusNotFound, errorRequestNotFound)
	case errors.Is(err, store.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, errorUserNotFound)
	case errors.Is(err, store.ErrDuplicateEmail):
		abortWithError(c, http.StatusConflict, errorDuplicateEmail)
	case errors.Is(err, store.ErrInvalidResetToken):
		abortWithError(c, http.StatusBadRequest, errorInvalidResetToken)
	case errors.Is(err, models.ErrInvalidStatus):
		resp := errorInvalidStatus
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
	case errors.Is(err, models.ErrInvalidDate):
		resp := errorInvalidDate
		resp.Detail = err.Error()
		abortWithError(c, http.StatusBadRequest, resp)
	case errors.Is(err, models.ErrInvalidTransition):
		resp := errorInvalidTransition
		resp.Detail = err.Error()
		abortWithError(c, http.StatusConflict, resp)
	default:
		log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		sentry.CaptureException(err)
		abortWithError(c, http.StatusInternalServerError, errorInternalServer)
	}
}
