package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Mrgamji/Emsats-Backend/internal/config"
	"github.com/Mrgamji/Emsats-Backend/internal/email"
	"github.com/Mrgamji/Emsats-Backend/internal/middleware"
	"github.com/Mrgamji/Emsats-Backend/internal/models"
	"github.com/Mrgamji/Emsats-Backend/internal/utils"
)

type AuthHandler struct {
	DB     *gorm.DB
	Cfg    config.Config
	Mailer email.Sender
}

func NewAuthHandler(db *gorm.DB, cfg config.Config, mailer email.Sender) *AuthHandler {
	return &AuthHandler{DB: db, Cfg: cfg, Mailer: mailer}
}

type signupRequest struct {
	Fullname             string `json:"fullname" binding:"required,min=2"`
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Phone                string `json:"phone"`
}

type verifyOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

type resendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type updatePasswordRequest struct {
	Email                string `json:"email" binding:"required,email"`
	Password             string `json:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" binding:"required,eqfield=Password"`
	Token                string `json:"token" binding:"required"`
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// canonicalEmail is the single normalization applied at every store
// boundary: lookups and writes always see the same form.
func canonicalEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// Signup runs the deferred, OTP-gated registration: nothing is persisted
// until the OTP mail is accepted for delivery, and no user row exists until
// the code is verified.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "invalid input")
		return
	}

	normalizedEmail := canonicalEmail(req.Email)

	var existing models.User
	err := h.DB.Where("email = ?", normalizedEmail).First(&existing).Error
	if err == nil {
		fail(c, http.StatusConflict, CodeConflict, "email already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		slog.Error("signup: user lookup failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		slog.Error("signup: otp generation failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}
	passwordHash, err := utils.HashPassword(req.Password)
	if err != nil {
		slog.Error("signup: password hash failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	subject, body := email.OTPMessage(req.Fullname, code, h.Cfg.OtpMinutes)
	if err := h.Mailer.Send(c.Request.Context(), normalizedEmail, subject, body); err != nil {
		slog.Error("signup: otp mail failed", "email", normalizedEmail, "err", err)
		fail(c, http.StatusInternalServerError, CodeDelivery, "could not send verification email")
		return
	}

	pending := models.PendingRegistration{
		Email:        normalizedEmail,
		Name:         req.Fullname,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: passwordHash,
		Code:         code,
		ExpiresAt:    time.Now().Add(time.Duration(h.Cfg.OtpMinutes) * time.Minute),
		CreatedAt:    time.Now(),
	}
	if err := h.upsertPending(&pending); err != nil {
		slog.Error("signup: pending store failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "otp sent, check your email", "email": normalizedEmail})
}

// VerifyOTP consumes a pending registration and materializes the user. A
// second verify after success finds nothing: the record is gone.
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "invalid input")
		return
	}

	normalizedEmail := canonicalEmail(req.Email)

	var pending models.PendingRegistration
	if err := h.DB.Where("email = ?", normalizedEmail).First(&pending).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusBadRequest, CodeOtpNotFound, "no otp found for this email")
			return
		}
		slog.Error("verify otp: lookup failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	if time.Now().After(pending.ExpiresAt) {
		h.deletePending(normalizedEmail)
		fail(c, http.StatusBadRequest, CodeOtpExpired, "otp has expired")
		return
	}

	if !utils.MatchOTP(pending.Code, req.OTP) {
		// record stays so the caller can retry within the expiry window
		fail(c, http.StatusBadRequest, CodeOtpMismatch, "incorrect otp")
		return
	}

	now := time.Now()
	user := models.User{
		Name:            pending.Name,
		Email:           pending.Email,
		Phone:           pending.Phone,
		PasswordHash:    pending.PasswordHash,
		EmailVerifiedAt: &now,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			h.deletePending(normalizedEmail)
			fail(c, http.StatusConflict, CodeConflict, "email already exists")
			return
		}
		slog.Error("verify otp: user creation failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	h.deletePending(normalizedEmail)

	token, err := utils.GenerateSessionToken(user.ID.String(), user.Email, h.Cfg.JwtSecret, h.Cfg.SessionHours)
	if err != nil {
		slog.Error("verify otp: token issue failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "otp verified successfully", "user": user, "token": token})
}

// ResendOTP regenerates the code on an existing pending registration. The
// mail goes out before anything is stored, so a failed send leaves the old
// record (and its code) intact.
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req resendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "invalid input")
		return
	}

	normalizedEmail := canonicalEmail(req.Email)

	var pending models.PendingRegistration
	if err := h.DB.Where("email = ?", normalizedEmail).First(&pending).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusNotFound, CodeNotFound, "no pending registration for this email")
			return
		}
		slog.Error("resend otp: lookup failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	code, err := utils.GenerateOTP()
	if err != nil {
		slog.Error("resend otp: otp generation failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	subject, body := email.OTPMessage(pending.Name, code, h.Cfg.OtpMinutes)
	if err := h.Mailer.Send(c.Request.Context(), normalizedEmail, subject, body); err != nil {
		slog.Error("resend otp: mail failed", "email", normalizedEmail, "err", err)
		fail(c, http.StatusInternalServerError, CodeDelivery, "could not send verification email")
		return
	}

	// insert-or-replace keyed on email, not on the loaded row's id
	pending.ID = 0
	pending.Code = code
	pending.ExpiresAt = time.Now().Add(time.Duration(h.Cfg.OtpMinutes) * time.Minute)
	pending.CreatedAt = time.Now()
	if err := h.upsertPending(&pending); err != nil {
		slog.Error("resend otp: pending store failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "otp resent successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "invalid input")
		return
	}

	normalizedEmail := canonicalEmail(req.Email)

	// unknown email and wrong password produce the same response, so a
	// caller cannot probe which addresses are registered
	var user models.User
	if err := h.DB.Where("email = ?", normalizedEmail).First(&user).Error; err != nil {
		fail(c, http.StatusUnauthorized, CodeBadLogin, "invalid credentials")
		return
	}
	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		fail(c, http.StatusUnauthorized, CodeBadLogin, "invalid credentials")
		return
	}

	token, err := utils.GenerateSessionToken(user.ID.String(), user.Email, h.Cfg.JwtSecret, h.Cfg.SessionHours)
	if err != nil {
		slog.Error("login: token issue failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// ForgotPassword issues a signed reset token, one live token per email.
// Whether a missing account is visible to the caller is a config choice.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "invalid input")
		return
	}

	normalizedEmail := canonicalEmail(req.Email)
	genericMessage := "if the account exists, a reset email has been sent"

	var user models.User
	if err := h.DB.Where("email = ?", normalizedEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if h.Cfg.ResetLeakExistence {
				fail(c, http.StatusNotFound, CodeNotFound, "user not found")
				return
			}
			c.JSON(http.StatusOK, gin.H{"message": genericMessage})
			return
		}
		slog.Error("forgot password: lookup failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	token, err := utils.GenerateResetToken(normalizedEmail, h.Cfg.JwtSecret, h.Cfg.ResetMinutes)
	if err != nil {
		slog.Error("forgot password: token issue failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	subject, body := email.ResetMessage(token, h.Cfg.ResetMinutes)
	if err := h.Mailer.Send(c.Request.Context(), normalizedEmail, subject, body); err != nil {
		slog.Error("forgot password: mail failed", "email", normalizedEmail, "err", err)
		fail(c, http.StatusInternalServerError, CodeDelivery, "could not send reset email")
		return
	}

	record := models.PasswordResetToken{
		Email:     normalizedEmail,
		Token:     token,
		CreatedAt: time.Now(),
	}
	if err := h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "created_at"}),
	}).Create(&record).Error; err != nil {
		slog.Error("forgot password: token store failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": genericMessage})
}

// UpdatePassword checks the reset record's age and the token's own
// signature and claims; both must pass.
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "invalid input")
		return
	}

	normalizedEmail := canonicalEmail(req.Email)

	var record models.PasswordResetToken
	if err := h.DB.Where("email = ?", normalizedEmail).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, http.StatusBadRequest, CodeTokenMissing, "no reset token for this email")
			return
		}
		slog.Error("update password: lookup failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	if time.Since(record.CreatedAt) > time.Duration(h.Cfg.ResetMinutes)*time.Minute {
		h.DB.Where("email = ?", normalizedEmail).Delete(&models.PasswordResetToken{})
		fail(c, http.StatusBadRequest, CodeTokenExpired, "reset token has expired")
		return
	}

	if req.Token != record.Token || utils.VerifyResetToken(req.Token, normalizedEmail, h.Cfg.JwtSecret) != nil {
		fail(c, http.StatusBadRequest, CodeTokenInvalid, "invalid reset token")
		return
	}

	newHash, err := utils.HashPassword(req.Password)
	if err != nil {
		slog.Error("update password: hash failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	result := h.DB.Model(&models.User{}).Where("email = ?", normalizedEmail).Update("password_hash", newHash)
	if result.Error != nil {
		slog.Error("update password: user update failed", "err", result.Error)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, CodeNotFound, "user not found")
		return
	}

	h.DB.Where("email = ?", normalizedEmail).Delete(&models.PasswordResetToken{})

	c.JSON(http.StatusCreated, gin.H{"message": "password updated successfully"})
}

// UpdateProfile applies only the fields present in the request body.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)
	if userID == "" {
		fail(c, http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "invalid input")
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			fail(c, http.StatusUnprocessableEntity, CodeValidation, "name cannot be empty")
			return
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Phone != nil {
		updates["phone"] = strings.TrimSpace(*req.Phone)
	}
	if len(updates) == 0 {
		fail(c, http.StatusUnprocessableEntity, CodeValidation, "nothing to update")
		return
	}

	result := h.DB.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		slog.Error("update profile: update failed", "err", result.Error)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}
	if result.RowsAffected == 0 {
		fail(c, http.StatusNotFound, CodeNotFound, "user not found")
		return
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		slog.Error("update profile: reload failed", "err", err)
		fail(c, http.StatusInternalServerError, CodeInternal, "unexpected error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "profile updated successfully", "user": user})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString(middleware.ContextUserID)

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		fail(c, http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Logout is advisory: sessions are stateless, clients drop the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// upsertPending replaces any live record for the email in one statement, so
// concurrent requests cannot leave two codes behind.
func (h *AuthHandler) upsertPending(pending *models.PendingRegistration) error {
	return h.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "phone", "password_hash", "code", "expires_at", "created_at"}),
	}).Create(pending).Error
}

func (h *AuthHandler) deletePending(email string) {
	if err := h.DB.Where("email = ?", email).Delete(&models.PendingRegistration{}).Error; err != nil {
		slog.Error("pending cleanup failed", "email", email, "err", err)
	}
}
