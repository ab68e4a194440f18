package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mrgamji/Emsats-Backend/internal/models"
)

func (e *testEnv) sessionToken(t *testing.T) string {
	t.Helper()
	e.seedUser(t, "admin@example.com", "s3cretpass")
	login := e.do(t, http.MethodPost, "/api/login", gin.H{"email": "admin@example.com", "password": "s3cretpass"}, "")
	require.Equal(t, http.StatusOK, login.Code)
	return decodeBody(t, login)["token"].(string)
}

func employeePayload(email string, code string) gin.H {
	return gin.H{
		"first_name":      "Ada",
		"last_name":       "Obi",
		"email":           email,
		"designation":     "Engineer",
		"department":      "Platform",
		"employment_type": "full_time",
		"employee_code":   code,
		"role":            "staff",
	}
}

func TestCrudRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/employees", nil, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCrudLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionToken(t)

	created := env.do(t, http.MethodPost, "/api/employees", employeePayload("ada@example.com", "EMP-001"), token)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	id := decodeBody(t, created)["id"].(string)
	require.NotEmpty(t, id)

	list := env.do(t, http.MethodGet, "/api/employees", nil, token)
	require.Equal(t, http.StatusOK, list.Code)

	fetched := env.do(t, http.MethodGet, "/api/employees/"+id, nil, token)
	require.Equal(t, http.StatusOK, fetched.Code)
	assert.Equal(t, "Ada", decodeBody(t, fetched)["first_name"])

	// partial update leaves the other columns alone
	patched := env.do(t, http.MethodPatch, "/api/employees/"+id, gin.H{"designation": "Senior Engineer"}, token)
	require.Equal(t, http.StatusOK, patched.Code, patched.Body.String())
	body := decodeBody(t, patched)
	assert.Equal(t, "Senior Engineer", body["designation"])
	assert.Equal(t, "Platform", body["department"])

	deleted := env.do(t, http.MethodDelete, "/api/employees/"+id, nil, token)
	require.Equal(t, http.StatusOK, deleted.Code)

	gone := env.do(t, http.MethodGet, "/api/employees/"+id, nil, token)
	require.Equal(t, http.StatusNotFound, gone.Code)
}

func TestCrudCreateConflict(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionToken(t)

	first := env.do(t, http.MethodPost, "/api/employees", employeePayload("ada@example.com", "EMP-001"), token)
	require.Equal(t, http.StatusCreated, first.Code)

	dup := env.do(t, http.MethodPost, "/api/employees", employeePayload("ada@example.com", "EMP-002"), token)
	require.Equal(t, http.StatusConflict, dup.Code)
	assert.Equal(t, "conflict", decodeBody(t, dup)["code"])
}

func TestCrudInvalidID(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionToken(t)

	rec := env.do(t, http.MethodGet, "/api/employees/not-a-uuid", nil, token)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCrudWorksAcrossResources(t *testing.T) {
	env := newTestEnv(t)
	token := env.sessionToken(t)

	created := env.do(t, http.MethodPost, "/api/leave-types", gin.H{
		"name":              "Annual Leave",
		"max_days_per_year": 21,
	}, token)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	id := decodeBody(t, created)["id"].(string)

	var leaveType models.LeaveType
	require.NoError(t, env.db.First(&leaveType, "id = ?", id).Error)
	assert.Equal(t, "Annual Leave", leaveType.Name)
	assert.Equal(t, 21, leaveType.MaxDaysPerYear)

	course := env.do(t, http.MethodPost, "/api/courses", gin.H{"title": "Onboarding"}, token)
	require.Equal(t, http.StatusCreated, course.Code, course.Body.String())
}
