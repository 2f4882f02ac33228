//go:build unit
// +build unit

package v1

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

// MockAuthService is a mock implementation of AuthService
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) SignUp(ctx context.Context, request *auth.SignUpRequest) (*auth.Session, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, identity *auth.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*auth.Identity, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Identity), args.Error(1)
}

func (m *MockAuthService) ChangePassword(ctx context.Context, actor profiles.Actor, currentPassword, newPassword string) error {
	args := m.Called(ctx, actor, currentPassword, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) ForgotPassword(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	args := m.Called(ctx, token, newPassword)
	return args.Error(0)
}

func (m *MockAuthService) RequestMagicLink(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthService) ConsumeMagicLink(ctx context.Context, token string) (*auth.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

// MockProfileService is a mock implementation of ProfileService
type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetMe(ctx context.Context, actor profiles.Actor) (*profiles.Profile, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.Profile), args.Error(1)
}

func (m *MockProfileService) UpdateMe(ctx context.Context, actor profiles.Actor, update *profiles.ProfileUpdate) (*profiles.Profile, error) {
	args := m.Called(ctx, actor, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.Profile), args.Error(1)
}

func (m *MockProfileService) GetPublicByID(ctx context.Context, profileID string) (*profiles.PublicProfile, error) {
	args := m.Called(ctx, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.PublicProfile), args.Error(1)
}

func (m *MockProfileService) List(ctx context.Context, actor profiles.Actor, query *profiles.ProfileQuery) ([]*profiles.Profile, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*profiles.Profile), args.Error(1)
}

func (m *MockProfileService) SetRole(ctx context.Context, actor profiles.Actor, profileID, role string) (*profiles.Profile, error) {
	args := m.Called(ctx, actor, profileID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*profiles.Profile), args.Error(1)
}

// MockDocumentService is a mock implementation of DocumentService
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Upload(ctx context.Context, actor profiles.Actor, request *documents.UploadRequest) (*documents.Document, error) {
	args := m.Called(ctx, actor, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Document), args.Error(1)
}

func (m *MockDocumentService) List(ctx context.Context, actor profiles.Actor, query *documents.DocumentQuery) ([]*documents.Document, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documents.Document), args.Error(1)
}

func (m *MockDocumentService) GetByID(ctx context.Context, actor profiles.Actor, documentID string) (*documents.Document, error) {
	args := m.Called(ctx, actor, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Document), args.Error(1)
}

func (m *MockDocumentService) Update(ctx context.Context, actor profiles.Actor, documentID string, update *documents.DocumentUpdate) (*documents.Document, error) {
	args := m.Called(ctx, actor, documentID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Document), args.Error(1)
}

func (m *MockDocumentService) Download(ctx context.Context, actor profiles.Actor, documentID string) (*documents.Document, []byte, error) {
	args := m.Called(ctx, actor, documentID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*documents.Document), args.Get(1).([]byte), args.Error(2)
}

func (m *MockDocumentService) DeleteByID(ctx context.Context, actor profiles.Actor, documentID string) error {
	args := m.Called(ctx, actor, documentID)
	return args.Error(0)
}

// MockVerificationService is a mock implementation of VerificationService
type MockVerificationService struct {
	mock.Mock
}

func (m *MockVerificationService) RequestVerification(ctx context.Context, actor profiles.Actor, documentID string) (*documents.Document, error) {
	args := m.Called(ctx, actor, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Document), args.Error(1)
}

func (m *MockVerificationService) ListPending(ctx context.Context, actor profiles.Actor, query *documents.DocumentQuery) ([]*documents.Document, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documents.Document), args.Error(1)
}

func (m *MockVerificationService) Verify(ctx context.Context, actor profiles.Actor, documentID string) (*documents.Document, error) {
	args := m.Called(ctx, actor, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Document), args.Error(1)
}

func (m *MockVerificationService) Reject(ctx context.Context, actor profiles.Actor, documentID, reason string) (*documents.Document, error) {
	args := m.Called(ctx, actor, documentID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Document), args.Error(1)
}

func (m *MockVerificationService) ListRejections(ctx context.Context, actor profiles.Actor, documentID string) ([]*documents.Rejection, error) {
	args := m.Called(ctx, actor, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*documents.Rejection), args.Error(1)
}

// MockNotificationService is a mock implementation of NotificationService
type MockNotificationService struct {
	mock.Mock
}

func (m *MockNotificationService) Notify(ctx context.Context, userID, notificationType, title, message, link string) error {
	args := m.Called(ctx, userID, notificationType, title, message, link)
	return args.Error(0)
}

func (m *MockNotificationService) Create(ctx context.Context, actor profiles.Actor, request *notifications.CreateRequest) (*notifications.Notification, error) {
	args := m.Called(ctx, actor, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notifications.Notification), args.Error(1)
}

func (m *MockNotificationService) List(ctx context.Context, actor profiles.Actor, query *notifications.NotificationQuery) ([]*notifications.Notification, error) {
	args := m.Called(ctx, actor, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*notifications.Notification), args.Error(1)
}

func (m *MockNotificationService) UnreadCount(ctx context.Context, actor profiles.Actor) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) MarkRead(ctx context.Context, actor profiles.Actor, notificationID string) error {
	args := m.Called(ctx, actor, notificationID)
	return args.Error(0)
}

func (m *MockNotificationService) MarkAllRead(ctx context.Context, actor profiles.Actor) (int64, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationService) DeleteByID(ctx context.Context, actor profiles.Actor, notificationID string) error {
	args := m.Called(ctx, actor, notificationID)
	return args.Error(0)
}

// MockShareLinkService is a mock implementation of ShareLinkService
type MockShareLinkService struct {
	mock.Mock
}

func (m *MockShareLinkService) Create(ctx context.Context, actor profiles.Actor, documentID string, request *sharing.CreateShareLinkRequest) (*sharing.ShareLink, error) {
	args := m.Called(ctx, actor, documentID, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharing.ShareLink), args.Error(1)
}

func (m *MockShareLinkService) ListByDocument(ctx context.Context, actor profiles.Actor, documentID string) ([]*sharing.ShareLink, error) {
	args := m.Called(ctx, actor, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharing.ShareLink), args.Error(1)
}

func (m *MockShareLinkService) Revoke(ctx context.Context, actor profiles.Actor, shareLinkID string) (*sharing.ShareLink, error) {
	args := m.Called(ctx, actor, shareLinkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharing.ShareLink), args.Error(1)
}

func (m *MockShareLinkService) Access(ctx context.Context, token, source string) (*sharing.SharedDocument, error) {
	args := m.Called(ctx, token, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharing.SharedDocument), args.Error(1)
}

func (m *MockShareLinkService) Download(ctx context.Context, token, source string) (*documents.Document, []byte, error) {
	args := m.Called(ctx, token, source)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*documents.Document), args.Get(1).([]byte), args.Error(2)
}

// MockQRCodeService is a mock implementation of QRCodeService
type MockQRCodeService struct {
	mock.Mock
}

func (m *MockQRCodeService) Create(ctx context.Context, actor profiles.Actor, documentID string, shareLinkID *string) (*sharing.QRCode, error) {
	args := m.Called(ctx, actor, documentID, shareLinkID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharing.QRCode), args.Error(1)
}

func (m *MockQRCodeService) GetByID(ctx context.Context, actor profiles.Actor, qrCodeID string) (*sharing.QRCode, error) {
	args := m.Called(ctx, actor, qrCodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sharing.QRCode), args.Error(1)
}

func (m *MockQRCodeService) GetImage(ctx context.Context, actor profiles.Actor, qrCodeID string) ([]byte, error) {
	args := m.Called(ctx, actor, qrCodeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockQRCodeService) ListByDocument(ctx context.Context, actor profiles.Actor, documentID string) ([]*sharing.QRCode, error) {
	args := m.Called(ctx, actor, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*sharing.QRCode), args.Error(1)
}

// MockPortfolioService is a mock implementation of PortfolioService
type MockPortfolioService struct {
	mock.Mock
}

func (m *MockPortfolioService) Save(ctx context.Context, actor profiles.Actor, input *portfolios.PortfolioInput) (*portfolios.Portfolio, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolios.Portfolio), args.Error(1)
}

func (m *MockPortfolioService) GetMine(ctx context.Context, actor profiles.Actor) (*portfolios.Portfolio, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolios.Portfolio), args.Error(1)
}

func (m *MockPortfolioService) DeleteMine(ctx context.Context, actor profiles.Actor) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

func (m *MockPortfolioService) GetPublic(ctx context.Context, slug string) (*portfolios.PublicPortfolio, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*portfolios.PublicPortfolio), args.Error(1)
}

// MockServices holds one mock per application service
type MockServices struct {
	Auth          *MockAuthService
	Profiles      *MockProfileService
	Documents     *MockDocumentService
	Verification  *MockVerificationService
	Notifications *MockNotificationService
	ShareLinks    *MockShareLinkService
	QRCodes       *MockQRCodeService
	Portfolios    *MockPortfolioService
}

// NewMockServices creates a fresh set of service mocks
func NewMockServices() *MockServices {
	return &MockServices{
		Auth:          new(MockAuthService),
		Profiles:      new(MockProfileService),
		Documents:     new(MockDocumentService),
		Verification:  new(MockVerificationService),
		Notifications: new(MockNotificationService),
		ShareLinks:    new(MockShareLinkService),
		QRCodes:       new(MockQRCodeService),
		Portfolios:    new(MockPortfolioService),
	}
}

// Services adapts the mocks to the route wiring
func (m *MockServices) Services() Services {
	return Services{
		Auth:          m.Auth,
		Profiles:      m.Profiles,
		Documents:     m.Documents,
		Verification:  m.Verification,
		Notifications: m.Notifications,
		ShareLinks:    m.ShareLinks,
		QRCodes:       m.QRCodes,
		Portfolios:    m.Portfolios,
	}
}

// Test constants
const (
	TestAppURL      = "https://app.campus.test"
	TestAPIURL      = "https://api.campus.test" + BasePath
	TestCookieName  = "campuscred_session"
	TestMaxFileSize = 1024
)

// TestAuthSettings returns the auth settings the test router is built with
func TestAuthSettings() *config.AuthSettings {
	return &config.AuthSettings{
		JWTSecret:      "0123456789abcdef0123456789abcdef",
		Issuer:         "campuscred-test",
		AccessTokenTTL: time.Hour,
		ResetTokenTTL:  time.Hour,
		MagicLinkTTL:   15 * time.Minute,
		CookieName:     TestCookieName,
	}
}

// NewTestRouter wires every route against the mocks
func NewTestRouter(t *testing.T, mocks *MockServices) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	SetupRoutes(r, mocks.Services(), RouteOptions{
		Auth:        TestAuthSettings(),
		RateLimit:   config.RateLimitSettings{RequestsPerMinute: 1000, Burst: 1000},
		AppURL:      TestAppURL,
		APIURL:      TestAPIURL,
		MaxFileSize: TestMaxFileSize,
		Logger:      testutil.SetupTestLogger(t),
	})
	return r
}

// SignInAs makes token authenticate as a new actor with role
func (m *MockServices) SignInAs(token, role string) profiles.Actor {
	identity := &auth.Identity{
		ProfileID: "8f14e45f-ceea-4e67-a2b1-6f1c2d3e4a5b",
		Email:     role + "@campus.test",
		Role:      role,
		Purpose:   auth.PurposeAccess,
		TokenID:   "jti-" + token,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	m.Auth.On("Authenticate", mock.Anything, token).Return(identity, nil)
	return identity.Actor()
}

// PerformRecorded serves req through r and records the response
func PerformRecorded(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// PerformRequest sends a request through r, with a bearer token when token is set
func PerformRequest(r http.Handler, method, url string, body io.Reader, contentType, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, url, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return PerformRecorded(r, req)
}
