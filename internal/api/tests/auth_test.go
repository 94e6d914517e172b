package api_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tkmani91/khs-server/internal/api/testutils"
	"github.com/tkmani91/khs-server/internal/models"
)

func TestLogin(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Test case 1: Successful login with the seeded admin
	loginReq := models.LoginRequest{
		Username: "admin",
		Password: testutils.AdminPassword,
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		loginReq,
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, models.RoleAdmin, resp.Role)
	assert.NotEmpty(t, resp.Token)

	// Test case 2: Wrong password
	loginReq.Password = "wrong-password"
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		loginReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Test case 3: Unknown username
	loginReq = models.LoginRequest{Username: "nobody", Password: "whatever"}
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		loginReq,
		nil,
	)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestViewerAccess(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/viewer",
		nil,
		nil,
	)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.RoleViewer, resp.Role)
	require.NotEmpty(t, resp.Token)

	// A viewer can read
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/members",
		nil,
		testutils.AuthHeaders(resp.Token),
	)
	assert.Equal(t, http.StatusOK, w.Code)

	// But cannot mutate
	memberReq := models.MemberRequest{
		Name:        "Test Member",
		Designation: models.DesignationMember,
		Phone:       "017000000",
	}
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/members",
		memberReq,
		testutils.AuthHeaders(resp.Token),
	)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthRequired(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// No token
	w := testutils.PerformRequest(testCtx.Router, http.MethodGet, "/api/members", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Garbage token
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/members",
		nil,
		testutils.AuthHeaders("not-a-token"),
	)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateUser(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	userReq := models.CreateUserRequest{
		Username: "secretary",
		Password: "Password123",
		Role:     models.RoleAdmin,
		Name:     "সম্পাদক",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/users",
		userReq,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)

	assert.Equal(t, http.StatusCreated, w.Code)

	var resp models.UserResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "secretary", resp.Username)

	// Duplicate username within the user list
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/users",
		userReq,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusConflict, w.Code)

	// The new user can log in
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/auth/login",
		models.LoginRequest{Username: "secretary", Password: "Password123"},
		nil,
	)
	assert.Equal(t, http.StatusOK, w.Code)
}
