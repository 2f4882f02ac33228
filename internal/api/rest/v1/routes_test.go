//go:build unit
// +build unit

package v1

import (
	"net/http"
	"testing"

	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// denyEverything makes every service call fail so that only routing is exercised
func denyEverything(m *MockServices) {
	any2 := []interface{}{mock.Anything, mock.Anything}
	any3 := []interface{}{mock.Anything, mock.Anything, mock.Anything}
	any4 := []interface{}{mock.Anything, mock.Anything, mock.Anything, mock.Anything}
	denied := apperr.ErrForbidden

	m.Auth.On("SignUp", any2...).Return(nil, denied)
	m.Auth.On("SignIn", any3...).Return(nil, denied)
	m.Auth.On("SignOut", any2...).Return(denied)
	m.Auth.On("ChangePassword", any4...).Return(denied)
	m.Auth.On("ForgotPassword", any2...).Return(nil)
	m.Auth.On("ResetPassword", any3...).Return(denied)
	m.Auth.On("RequestMagicLink", any2...).Return(nil)
	m.Auth.On("ConsumeMagicLink", any2...).Return(nil, denied)

	m.Profiles.On("GetMe", any2...).Return(nil, denied)
	m.Profiles.On("UpdateMe", any3...).Return(nil, denied)
	m.Profiles.On("GetPublicByID", any2...).Return(nil, denied)
	m.Profiles.On("List", any3...).Return(nil, denied)
	m.Profiles.On("SetRole", any4...).Return(nil, denied)

	m.Documents.On("Upload", any3...).Return(nil, denied)
	m.Documents.On("List", any3...).Return(nil, denied)
	m.Documents.On("GetByID", any3...).Return(nil, denied)
	m.Documents.On("Update", any4...).Return(nil, denied)
	m.Documents.On("Download", any3...).Return(nil, nil, denied)
	m.Documents.On("DeleteByID", any3...).Return(denied)

	m.Verification.On("RequestVerification", any3...).Return(nil, denied)
	m.Verification.On("ListPending", any3...).Return(nil, denied)
	m.Verification.On("Verify", any3...).Return(nil, denied)
	m.Verification.On("Reject", any4...).Return(nil, denied)
	m.Verification.On("ListRejections", any3...).Return(nil, denied)

	m.Notifications.On("Create", any3...).Return(nil, denied)
	m.Notifications.On("List", any3...).Return(nil, denied)
	m.Notifications.On("UnreadCount", any2...).Return(int64(0), denied)
	m.Notifications.On("MarkRead", any3...).Return(denied)
	m.Notifications.On("MarkAllRead", any2...).Return(int64(0), denied)
	m.Notifications.On("DeleteByID", any3...).Return(denied)

	m.ShareLinks.On("Create", any4...).Return(nil, denied)
	m.ShareLinks.On("ListByDocument", any3...).Return(nil, denied)
	m.ShareLinks.On("Revoke", any3...).Return(nil, denied)
	m.ShareLinks.On("Access", any3...).Return(nil, denied)
	m.ShareLinks.On("Download", any3...).Return(nil, nil, denied)

	m.QRCodes.On("Create", any4...).Return(nil, denied)
	m.QRCodes.On("GetByID", any3...).Return(nil, denied)
	m.QRCodes.On("GetImage", any3...).Return(nil, denied)
	m.QRCodes.On("ListByDocument", any3...).Return(nil, denied)

	m.Portfolios.On("Save", any3...).Return(nil, denied)
	m.Portfolios.On("GetMine", any2...).Return(nil, denied)
	m.Portfolios.On("DeleteMine", any2...).Return(denied)
	m.Portfolios.On("GetPublic", any2...).Return(nil, denied)
}

// TestSetupRoutes_RoutesRegistered verifies that routes are properly registered
func TestSetupRoutes_RoutesRegistered(t *testing.T) {
	mocks := NewMockServices()
	denyEverything(mocks)
	mocks.SignInAs("admin-token", profiles.RoleAdmin)
	r := NewTestRouter(t, mocks)

	tests := []struct {
		method string
		url    string
	}{
		{http.MethodPost, "/auth/signup"},
		{http.MethodPost, "/auth/signin"},
		{http.MethodPost, "/auth/signout"},
		{http.MethodPut, "/auth/password"},
		{http.MethodPost, "/auth/password/forgot"},
		{http.MethodPost, "/auth/password/reset"},
		{http.MethodPost, "/auth/magic-link"},
		{http.MethodGet, "/auth/magic-link/callback?token=x"},
		{http.MethodGet, "/profiles/me"},
		{http.MethodPatch, "/profiles/me"},
		{http.MethodGet, "/profiles/p1"},
		{http.MethodGet, "/admin/profiles"},
		{http.MethodPut, "/admin/profiles/p1/role"},
		{http.MethodPost, "/documents"},
		{http.MethodGet, "/documents"},
		{http.MethodGet, "/documents/d1"},
		{http.MethodPatch, "/documents/d1"},
		{http.MethodDelete, "/documents/d1"},
		{http.MethodGet, "/documents/d1/file"},
		{http.MethodPost, "/documents/d1/verification-request"},
		{http.MethodGet, "/documents/d1/rejections"},
		{http.MethodGet, "/verifications/pending"},
		{http.MethodPost, "/verifications/d1/verify"},
		{http.MethodPost, "/verifications/d1/reject"},
		{http.MethodGet, "/notifications"},
		{http.MethodPost, "/notifications"},
		{http.MethodGet, "/notifications/unread-count"},
		{http.MethodPut, "/notifications/read-all"},
		{http.MethodPut, "/notifications/n1/read"},
		{http.MethodDelete, "/notifications/n1"},
		{http.MethodPost, "/documents/d1/share-links"},
		{http.MethodGet, "/documents/d1/share-links"},
		{http.MethodDelete, "/share-links/s1"},
		{http.MethodPost, "/documents/d1/qr-codes"},
		{http.MethodGet, "/documents/d1/qr-codes"},
		{http.MethodGet, "/qr-codes/q1"},
		{http.MethodGet, "/qr-codes/q1/image"},
		{http.MethodGet, "/share/tok"},
		{http.MethodGet, "/share/tok/file"},
		{http.MethodGet, "/portfolios/me"},
		{http.MethodPut, "/portfolios/me"},
		{http.MethodDelete, "/portfolios/me"},
		{http.MethodGet, "/portfolios/public/ada"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.url, func(t *testing.T) {
			w := PerformRequest(r, tt.method, BasePath+tt.url, nil, "", "admin-token")

			// Just verify route exists (status != 404)
			assert.NotEqual(t, http.StatusNotFound, w.Code, "Route should be registered")
		})
	}
}

func TestSetupRoutes_SecuredRoutesRequireAuth(t *testing.T) {
	mocks := NewMockServices()
	r := NewTestRouter(t, mocks)

	for _, path := range []string{"/profiles/me", "/documents", "/notifications", "/portfolios/me", "/qr-codes/q1"} {
		w := PerformRequest(r, http.MethodGet, BasePath+path, nil, "", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
