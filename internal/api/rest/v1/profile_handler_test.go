//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProfileHandler_UpdateMe(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	actor := mocks.SignInAs("student-token", profiles.RoleStudent)

	updated := testSession(profiles.RoleStudent).Profile
	updated.Bio = "I like maths"
	mocks.Profiles.On("UpdateMe", mock.Anything, actor, mock.MatchedBy(func(u *profiles.ProfileUpdate) bool {
		return u.Bio != nil && *u.Bio == "I like maths" && u.FullName == nil
	})).Return(updated, nil)

	w := PerformRequest(r, http.MethodPatch, BasePath+"/profiles/me",
		strings.NewReader(`{"bio":"I like maths"}`), "application/json", "student-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bio":"I like maths"`)
}

func TestProfileHandler_GetByID_PublicView(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	mocks.SignInAs("student-token", profiles.RoleStudent)

	public := testSession(profiles.RoleFaculty).Profile.Public()
	mocks.Profiles.On("GetPublicByID", mock.Anything, public.ID).Return(public, nil)

	w := PerformRequest(r, http.MethodGet, BasePath+"/profiles/"+public.ID, nil, "", "student-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "email")
}

func TestProfileHandler_AdminRoutes(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	mocks.SignInAs("faculty-token", profiles.RoleFaculty)
	admin := mocks.SignInAs("admin-token", profiles.RoleAdmin)

	w := PerformRequest(r, http.MethodGet, BasePath+"/admin/profiles", nil, "", "faculty-token")
	assert.Equal(t, http.StatusForbidden, w.Code)

	mocks.Profiles.On("List", mock.Anything, admin, mock.MatchedBy(func(q *profiles.ProfileQuery) bool {
		return q.Role == profiles.RoleFaculty && q.Limit == 20
	})).Return([]*profiles.Profile{testSession(profiles.RoleFaculty).Profile}, nil)

	w = PerformRequest(r, http.MethodGet, BasePath+"/admin/profiles?role=faculty", nil, "", "admin-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"faculty"`)

	mocks.Profiles.On("SetRole", mock.Anything, admin, admin.ProfileID, profiles.RoleStudent).
		Return(nil, fmt.Errorf("admins cannot change their own role: %w", apperr.ErrInvalidInput))

	w = PerformRequest(r, http.MethodPut, BasePath+"/admin/profiles/"+admin.ProfileID+"/role",
		strings.NewReader(`{"role":"student"}`), "application/json", "admin-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
