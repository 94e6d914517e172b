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

type membersEnvelope struct {
	Status  string          `json:"status"`
	Members []models.Member `json:"members"`
}

type memberEnvelope struct {
	Status string        `json:"status"`
	Member models.Member `json:"member"`
}

func listMembers(t *testing.T, testCtx *testutils.TestContext, query string) []models.Member {
	t.Helper()

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodGet,
		"/api/members"+query,
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	var env membersEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Members
}

func TestMemberLifecycle(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	require.Empty(t, listMembers(t, testCtx, ""))

	// Create
	memberReq := models.MemberRequest{
		Name:        "Example Name",
		Designation: models.DesignationMember,
		Phone:       "01712345678",
		Address:     "ঢাকা",
	}

	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/members",
		memberReq,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	require.Equal(t, http.StatusCreated, w.Code)

	var created memberEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.NotEmpty(t, created.Member.ID)
	assert.False(t, created.Member.CreatedAt.IsZero())

	members := listMembers(t, testCtx, "")
	require.Len(t, members, 1)

	// Edit: only the phone changes, list length stays the same
	memberReq.Phone = "01898765432"
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/members/"+created.Member.ID,
		memberReq,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	// The edit response carries the stored record, creation timestamp intact
	var updated memberEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.False(t, updated.Member.CreatedAt.IsZero())
	assert.True(t, updated.Member.CreatedAt.Equal(created.Member.CreatedAt))
	assert.Equal(t, "01898765432", updated.Member.Phone)

	members = listMembers(t, testCtx, "")
	require.Len(t, members, 1)
	assert.Equal(t, "01898765432", members[0].Phone)
	assert.Equal(t, "Example Name", members[0].Name)
	assert.Equal(t, models.DesignationMember, members[0].Designation)
	assert.Equal(t, created.Member.ID, members[0].ID)

	// Delete
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/members/"+created.Member.ID,
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	require.Equal(t, http.StatusOK, w.Code)

	assert.Empty(t, listMembers(t, testCtx, ""))

	// Deleting again reports not found
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodDelete,
		"/api/members/"+created.Member.ID,
		nil,
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMemberFilter(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	names := []string{"Anil Das", "Sunil Das", "Ratan Saha"}
	for _, name := range names {
		w := testutils.PerformRequest(
			testCtx.Router,
			http.MethodPost,
			"/api/members",
			models.MemberRequest{Name: name, Designation: models.DesignationMember, Phone: "017"},
			testutils.AuthHeaders(testCtx.AdminJWT),
		)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	// Case-insensitive substring match over name-like fields
	members := listMembers(t, testCtx, "?q=das")
	require.Len(t, members, 2)
	assert.Equal(t, "Anil Das", members[0].Name)
	assert.Equal(t, "Sunil Das", members[1].Name)

	members = listMembers(t, testCtx, "?q=ratan")
	require.Len(t, members, 1)

	// Designation matches too
	members = listMembers(t, testCtx, "?q="+"সদস্য")
	assert.Len(t, members, 3)
}

func TestMemberValidation(t *testing.T) {
	testCtx := testutils.SetupTestContext(t)

	// Missing required fields
	w := testutils.PerformRequest(
		testCtx.Router,
		http.MethodPost,
		"/api/members",
		models.MemberRequest{Name: "No Phone"},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Updating a missing record reports not found
	w = testutils.PerformRequest(
		testCtx.Router,
		http.MethodPut,
		"/api/members/does-not-exist",
		models.MemberRequest{Name: "X", Designation: models.DesignationMember, Phone: "017"},
		testutils.AuthHeaders(testCtx.AdminJWT),
	)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
