package utils

import "github.com/gin-gonic/gin"

// Response is the envelope every dashboard endpoint answers with.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func SuccessResponse(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *gin.Context, status int, message string) {
	c.JSON(status, Response{
		Success: false,
		Message: message,
	})
}

// ValidationErrorResponse carries a field-scoped error map so forms can place
// messages next to the offending inputs.
func ValidationErrorResponse(c *gin.Context, status int, fieldErrors any) {
	c.JSON(status, Response{
		Success: false,
		Message: "Validation failed",
		Errors:  fieldErrors,
	})
}
