package response

import "github.com/gin-gonic/gin"

// ErrorBody is the wire format for every error response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Code   ErrCode           `json:"code"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Fail sends an error response with the default message for the code.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, ErrorBody{Error: GetMessage(code), Code: code})
}

// FailMsg sends an error response with a custom human-readable message.
// Used where the message carries information the default lacks, e.g. the
// retry-after hint on rate-limited logins.
func FailMsg(c *gin.Context, statusCode int, code ErrCode, msg string) {
	c.JSON(statusCode, ErrorBody{Error: msg, Code: code})
}

// FailWithFields sends an error response with field-level validation details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, ErrorBody{Error: GetMessage(code), Code: code, Fields: fields})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: GetMessage(code), Code: code})
}

// AbortFailMsg aborts the middleware chain with a custom message.
func AbortFailMsg(c *gin.Context, statusCode int, code ErrCode, msg string) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Error: msg, Code: code})
}
