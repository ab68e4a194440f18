package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Mrgamji/Emsats-Backend/internal/config"
	"github.com/Mrgamji/Emsats-Backend/internal/db"
	"github.com/Mrgamji/Emsats-Backend/internal/models"
	"github.com/Mrgamji/Emsats-Backend/internal/routes"
	"github.com/Mrgamji/Emsats-Backend/internal/utils"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type stubSender struct {
	mu   sync.Mutex
	fail bool
	sent []sentMail
}

func (s *stubSender) Send(ctx context.Context, to string, subject string, htmlBody string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("smtp unavailable")
	}
	s.sent = append(s.sent, sentMail{To: to, Subject: subject, Body: htmlBody})
	return nil
}

func (s *stubSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func (s *stubSender) last() sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sent[len(s.sent)-1]
}

var otpPattern = regexp.MustCompile(`>(\d{6})<`)

func (s *stubSender) lastCode(t *testing.T) string {
	t.Helper()
	match := otpPattern.FindStringSubmatch(s.last().Body)
	require.Len(t, match, 2, "otp mail should carry a 6-digit code")
	return match[1]
}

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	sender *stubSender
	cfg    config.Config
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)

	cfg := config.Config{
		AppEnv:       "test",
		JwtSecret:    "test-secret",
		SessionHours: 24,
		OtpMinutes:   10,
		ResetMinutes: 60,
	}
	for _, fn := range mutate {
		fn(&cfg)
	}

	sender := &stubSender{}
	router := gin.New()
	routes.Register(router, database, cfg, sender)

	return &testEnv{router: router, db: database, sender: sender, cfg: cfg}
}

func (e *testEnv) do(t *testing.T, method string, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func signupPayload(email string) gin.H {
	return gin.H{
		"fullname":              "Jane Doe",
		"email":                 email,
		"password":              "s3cretpass",
		"password_confirmation": "s3cretpass",
		"phone":                 "08012345678",
	}
}

func (e *testEnv) seedUser(t *testing.T, emailAddr string, password string) models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)
	now := time.Now()
	user := models.User{
		Name:            "Seeded User",
		Email:           emailAddr,
		Phone:           "08000000000",
		PasswordHash:    hash,
		EmailVerifiedAt: &now,
	}
	require.NoError(t, e.db.Create(&user).Error)
	return user
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSignupStoresPendingRegistration(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/signup", signupPayload("Jane@Example.com"), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var pending models.PendingRegistration
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&pending).Error)

	assert.Equal(t, "Jane Doe", pending.Name)
	assert.NotEqual(t, "s3cretpass", pending.PasswordHash)
	assert.Len(t, pending.Code, 6)
	assert.WithinDuration(t, time.Now().Add(10*time.Minute), pending.ExpiresAt, time.Minute)

	// no user yet; the account only exists after verification
	var count int64
	env.db.Model(&models.User{}).Where("email = ?", "jane@example.com").Count(&count)
	assert.Zero(t, count)

	require.Equal(t, 1, env.sender.count())
	assert.Equal(t, "jane@example.com", env.sender.last().To)
	assert.Equal(t, pending.Code, env.sender.lastCode(t))
}

func TestSignupConflictLeavesNoPending(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "jane@example.com", "s3cretpass")

	rec := env.do(t, http.MethodPost, "/api/signup", signupPayload("JANE@example.com"), "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeBody(t, rec)["code"])

	var count int64
	env.db.Model(&models.PendingRegistration{}).Count(&count)
	assert.Zero(t, count)
	assert.Zero(t, env.sender.count())
}

func TestSignupValidation(t *testing.T) {
	env := newTestEnv(t)

	payload := signupPayload("jane@example.com")
	payload["password_confirmation"] = "different"
	rec := env.do(t, http.MethodPost, "/api/signup", payload, "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_failed", decodeBody(t, rec)["code"])
}

func TestSignupDeliveryFailurePersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	env.sender.fail = true

	rec := env.do(t, http.MethodPost, "/api/signup", signupPayload("jane@example.com"), "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "delivery_failed", decodeBody(t, rec)["code"])

	var count int64
	env.db.Model(&models.PendingRegistration{}).Count(&count)
	assert.Zero(t, count)
}

func TestVerifyOtpMaterializesUserOnce(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/signup", signupPayload("jane@example.com"), "")
	code := env.sender.lastCode(t)

	rec := env.do(t, http.MethodPost, "/api/verify-otp", gin.H{"email": "jane@example.com", "otp": code}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	require.Contains(t, body, "token")

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.NotNil(t, user.EmailVerifiedAt)

	claims, err := utils.ParseSessionToken(body["token"].(string), env.cfg.JwtSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)

	// the pending record is consumed; a replay finds nothing
	rec = env.do(t, http.MethodPost, "/api/verify-otp", gin.H{"email": "jane@example.com", "otp": code}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "otp_not_found", decodeBody(t, rec)["code"])
}

func TestVerifyOtpExpiredDeletesRecord(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/signup", signupPayload("jane@example.com"), "")
	code := env.sender.lastCode(t)

	env.db.Model(&models.PendingRegistration{}).
		Where("email = ?", "jane@example.com").
		Update("expires_at", time.Now().Add(-time.Minute))

	rec := env.do(t, http.MethodPost, "/api/verify-otp", gin.H{"email": "jane@example.com", "otp": code}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "otp_expired", decodeBody(t, rec)["code"])

	var count int64
	env.db.Model(&models.PendingRegistration{}).Count(&count)
	assert.Zero(t, count)
}

func TestVerifyOtpMismatchRetainsRecord(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/signup", signupPayload("jane@example.com"), "")
	code := env.sender.lastCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	rec := env.do(t, http.MethodPost, "/api/verify-otp", gin.H{"email": "jane@example.com", "otp": wrong}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "otp_mismatch", decodeBody(t, rec)["code"])

	// retry within the window still works
	rec = env.do(t, http.MethodPost, "/api/verify-otp", gin.H{"email": "jane@example.com", "otp": "  " + code + " "}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

func TestVerifyOtpConflictsWithExistingUser(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/signup", signupPayload("jane@example.com"), "")
	code := env.sender.lastCode(t)

	// someone claimed the email between signup and verification
	env.seedUser(t, "jane@example.com", "otherpassword")

	rec := env.do(t, http.MethodPost, "/api/verify-otp", gin.H{"email": "jane@example.com", "otp": code}, "")
	require.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "conflict", decodeBody(t, rec)["code"])
}

func TestResendOtpReplacesSingleRecord(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/signup", signupPayload("jane@example.com"), "")

	var before models.PendingRegistration
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&before).Error)

	rec := env.do(t, http.MethodPost, "/api/resend-otp", gin.H{"email": "jane@example.com"}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var count int64
	env.db.Model(&models.PendingRegistration{}).Where("email = ?", "jane@example.com").Count(&count)
	assert.EqualValues(t, 1, count)

	var after models.PendingRegistration
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&after).Error)
	assert.Len(t, after.Code, 6)
	value, err := strconv.Atoi(after.Code)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, value, 100000)
	assert.LessOrEqual(t, value, 999999)
	assert.True(t, after.ExpiresAt.After(before.ExpiresAt) || after.ExpiresAt.Equal(before.ExpiresAt))
	assert.Equal(t, after.Code, env.sender.lastCode(t))
}

func TestResendOtpWithoutPendingRegistration(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/resend-otp", gin.H{"email": "nobody@example.com"}, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeBody(t, rec)["code"])
}

func TestResendOtpDeliveryFailureKeepsOldCode(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/signup", signupPayload("jane@example.com"), "")
	oldCode := env.sender.lastCode(t)

	env.sender.fail = true
	rec := env.do(t, http.MethodPost, "/api/resend-otp", gin.H{"email": "jane@example.com"}, "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var pending models.PendingRegistration
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&pending).Error)
	assert.Equal(t, oldCode, pending.Code)
}

func TestLoginDoesNotRevealWhichCredentialFailed(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "jane@example.com", "s3cretpass")

	wrongPassword := env.do(t, http.MethodPost, "/api/login", gin.H{"email": "jane@example.com", "password": "wrongpass1"}, "")
	unknownEmail := env.do(t, http.MethodPost, "/api/login", gin.H{"email": "ghost@example.com", "password": "wrongpass1"}, "")

	require.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	require.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLoginIssuesSessionToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.seedUser(t, "jane@example.com", "s3cretpass")

	rec := env.do(t, http.MethodPost, "/api/login", gin.H{"email": "Jane@Example.com", "password": "s3cretpass"}, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)

	claims, err := utils.ParseSessionToken(body["token"].(string), env.cfg.JwtSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)

	me := env.do(t, http.MethodGet, "/api/me", nil, body["token"].(string))
	require.Equal(t, http.StatusOK, me.Code)
}

func TestForgotPasswordGenericResponse(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "jane@example.com", "s3cretpass")

	known := env.do(t, http.MethodPost, "/api/forgot-password", gin.H{"email": "jane@example.com"}, "")
	unknown := env.do(t, http.MethodPost, "/api/forgot-password", gin.H{"email": "ghost@example.com"}, "")

	require.Equal(t, http.StatusOK, known.Code)
	require.Equal(t, http.StatusOK, unknown.Code)
	assert.Equal(t, known.Body.String(), unknown.Body.String())

	var record models.PasswordResetToken
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&record).Error)
	require.NoError(t, utils.VerifyResetToken(record.Token, "jane@example.com", env.cfg.JwtSecret))
	require.Equal(t, 1, env.sender.count())
}

func TestForgotPasswordLeakModeReturnsNotFound(t *testing.T) {
	env := newTestEnv(t, func(cfg *config.Config) { cfg.ResetLeakExistence = true })

	rec := env.do(t, http.MethodPost, "/api/forgot-password", gin.H{"email": "ghost@example.com"}, "")
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForgotPasswordOverwritesPriorToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "jane@example.com", "s3cretpass")

	env.do(t, http.MethodPost, "/api/forgot-password", gin.H{"email": "jane@example.com"}, "")
	var first models.PasswordResetToken
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&first).Error)

	time.Sleep(1100 * time.Millisecond) // jwt iat has second resolution
	env.do(t, http.MethodPost, "/api/forgot-password", gin.H{"email": "jane@example.com"}, "")

	var count int64
	env.db.Model(&models.PasswordResetToken{}).Where("email = ?", "jane@example.com").Count(&count)
	assert.EqualValues(t, 1, count)

	var second models.PasswordResetToken
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&second).Error)
	assert.NotEqual(t, first.Token, second.Token)
}

func TestUpdatePasswordExpiredRecord(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "jane@example.com", "s3cretpass")

	token, err := utils.GenerateResetToken("jane@example.com", env.cfg.JwtSecret, 600)
	require.NoError(t, err)
	require.NoError(t, env.db.Create(&models.PasswordResetToken{
		Email:     "jane@example.com",
		Token:     token,
		CreatedAt: time.Now().Add(-2 * time.Hour),
	}).Error)

	rec := env.do(t, http.MethodPost, "/api/password/update", gin.H{
		"email":                 "jane@example.com",
		"password":              "newpassword1",
		"password_confirmation": "newpassword1",
		"token":                 token,
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "token_expired", decodeBody(t, rec)["code"])

	var count int64
	env.db.Model(&models.PasswordResetToken{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdatePasswordTamperedToken(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "jane@example.com", "s3cretpass")
	env.do(t, http.MethodPost, "/api/forgot-password", gin.H{"email": "jane@example.com"}, "")

	var record models.PasswordResetToken
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&record).Error)

	rec := env.do(t, http.MethodPost, "/api/password/update", gin.H{
		"email":                 "jane@example.com",
		"password":              "newpassword1",
		"password_confirmation": "newpassword1",
		"token":                 record.Token + "x",
	}, "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "token_invalid", decodeBody(t, rec)["code"])

	// record survives an invalid-token attempt
	var count int64
	env.db.Model(&models.PasswordResetToken{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestUpdatePasswordSuccess(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "jane@example.com", "s3cretpass")
	env.do(t, http.MethodPost, "/api/forgot-password", gin.H{"email": "jane@example.com"}, "")

	var record models.PasswordResetToken
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&record).Error)

	rec := env.do(t, http.MethodPost, "/api/password/update", gin.H{
		"email":                 "jane@example.com",
		"password":              "newpassword1",
		"password_confirmation": "newpassword1",
		"token":                 record.Token,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	login := env.do(t, http.MethodPost, "/api/login", gin.H{"email": "jane@example.com", "password": "newpassword1"}, "")
	require.Equal(t, http.StatusOK, login.Code)

	var count int64
	env.db.Model(&models.PasswordResetToken{}).Count(&count)
	assert.Zero(t, count)
}

func TestUpdateProfileOnlyTouchesGivenFields(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "jane@example.com", "s3cretpass")
	login := env.do(t, http.MethodPost, "/api/login", gin.H{"email": "jane@example.com", "password": "s3cretpass"}, "")
	token := decodeBody(t, login)["token"].(string)

	rec := env.do(t, http.MethodPost, "/api/updateProfile", gin.H{"phone": "0700111222"}, token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var user models.User
	require.NoError(t, env.db.Where("email = ?", "jane@example.com").First(&user).Error)
	assert.Equal(t, "Seeded User", user.Name)
	assert.Equal(t, "0700111222", user.Phone)
}

func TestUpdateProfileRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/updateProfile", gin.H{"name": "New Name"}, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/api/updateProfile", gin.H{"name": "New Name"}, "not-a-token")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	env.seedUser(t, "jane@example.com", "s3cretpass")
	login := env.do(t, http.MethodPost, "/api/login", gin.H{"email": "jane@example.com", "password": "s3cretpass"}, "")
	token := decodeBody(t, login)["token"].(string)

	rec := env.do(t, http.MethodPost, "/api/logout", nil, token)
	require.Equal(t, http.StatusOK, rec.Code)
}
