//go:build unit
// +build unit

package v1

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestVerificationHandler_RequestVerification(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	actor := mocks.SignInAs("student-token", profiles.RoleStudent)

	pending := testDocument()
	pending.Status = documents.StatusPending
	mocks.Verification.On("RequestVerification", mock.Anything, actor, testDocumentID).Return(pending, nil)

	w := PerformRequest(r, http.MethodPost, BasePath+"/documents/"+testDocumentID+"/verification-request", nil, "", "student-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestVerificationHandler_ReviewerRoutesRefuseStudents(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	mocks.SignInAs("student-token", profiles.RoleStudent)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/verifications/pending"},
		{http.MethodPost, "/verifications/" + testDocumentID + "/verify"},
		{http.MethodPost, "/verifications/" + testDocumentID + "/reject"},
	} {
		w := PerformRequest(r, route.method, BasePath+route.path, strings.NewReader(`{"reason":"x"}`), "application/json", "student-token")
		assert.Equal(t, http.StatusForbidden, w.Code, route.path)
	}

	mocks.Verification.AssertNotCalled(t, "ListPending", mock.Anything, mock.Anything, mock.Anything)
	mocks.Verification.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
}

func TestVerificationHandler_Verify(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	actor := mocks.SignInAs("faculty-token", profiles.RoleFaculty)

	verified := testDocument()
	now := time.Now().UTC()
	verified.Status = documents.StatusVerified
	verified.VerifiedBy = &actor.ProfileID
	verified.VerifiedAt = &now
	mocks.Verification.On("Verify", mock.Anything, actor, testDocumentID).Return(verified, nil)

	w := PerformRequest(r, http.MethodPost, BasePath+"/verifications/"+testDocumentID+"/verify", nil, "", "faculty-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"verified_by":"`+actor.ProfileID+`"`)
}

func TestVerificationHandler_Verify_Conflict(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	mocks.SignInAs("admin-token", profiles.RoleAdmin)

	mocks.Verification.On("Verify", mock.Anything, mock.Anything, testDocumentID).
		Return(nil, fmt.Errorf("document is verified: %w", apperr.ErrConflict))

	w := PerformRequest(r, http.MethodPost, BasePath+"/verifications/"+testDocumentID+"/verify", nil, "", "admin-token")

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestVerificationHandler_Reject(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	actor := mocks.SignInAs("faculty-token", profiles.RoleFaculty)

	rejected := testDocument()
	rejected.Status = documents.StatusRejected
	mocks.Verification.On("Reject", mock.Anything, actor, testDocumentID, "Blurry scan").Return(rejected, nil)

	w := PerformRequest(r, http.MethodPost, BasePath+"/verifications/"+testDocumentID+"/reject",
		strings.NewReader(`{"reason":"Blurry scan"}`), "application/json", "faculty-token")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"rejected"`)

	w = PerformRequest(r, http.MethodPost, BasePath+"/verifications/"+testDocumentID+"/reject",
		strings.NewReader(`{}`), "application/json", "faculty-token")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "rejection reason is required")
}

func TestVerificationHandler_ListRejections(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)
	mocks.SignInAs("student-token", profiles.RoleStudent)

	mocks.Verification.On("ListRejections", mock.Anything, mock.Anything, testDocumentID).Return([]*documents.Rejection{{
		ID:         "d3d94468-02a4-4b4f-9f3a-0c4a3e2b1a00",
		DocumentID: testDocumentID,
		ReviewerID: "a87ff679-a2f3-471d-8181-a67b7542122c",
		Reason:     "Blurry scan",
		CreatedAt:  time.Now().UTC(),
	}}, nil)

	w := PerformRequest(r, http.MethodGet, BasePath+"/documents/"+testDocumentID+"/rejections", nil, "", "student-token")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"reason":"Blurry scan"`)
}
