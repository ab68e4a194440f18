package handlers

import "github.com/gin-gonic/gin"

// Error kinds surfaced to clients. Storage detail never leaks; unexpected
// failures collapse to CodeInternal.
const (
	CodeValidation   = "validation_failed"
	CodeConflict     = "conflict"
	CodeNotFound     = "not_found"
	CodeOtpNotFound  = "otp_not_found"
	CodeOtpExpired   = "otp_expired"
	CodeOtpMismatch  = "otp_mismatch"
	CodeTokenMissing = "token_not_found"
	CodeTokenExpired = "token_expired"
	CodeTokenInvalid = "token_invalid"
	CodeBadLogin     = "invalid_credentials"
	CodeUnauthorized = "unauthorized"
	CodeDelivery     = "delivery_failed"
	CodeInternal     = "internal_error"
)

func fail(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{"code": code, "error": message})
}
