package response

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	CodeInvalidJSON      = "invalid_json"
	CodeInvalidInput     = "invalid_input"
	CodeInvalidDate      = "invalid_date"
	CodeInvalidHierarchy = "invalid_hierarchy"
	CodeNotFound         = "not_found"
	CodeUnrepresentable  = "unrepresentable_result"
	CodeInternal         = "internal"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.AbortWithStatusJSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// RespondOK writes payload as JSON. A payload that cannot be encoded, such as
// one holding an infinite float, gets a 422 envelope instead of a blank 200.
func RespondOK(c *gin.Context, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, CodeUnrepresentable,
			fmt.Errorf("result cannot be encoded: %w", err))
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}
