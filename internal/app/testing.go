//go:build integration
// +build integration

package app

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/domain/storage"
	"github.com/campuscred/campuscred/internal/infrastructure/connector"
	"github.com/campuscred/campuscred/internal/infrastructure/persistence"
	"github.com/campuscred/campuscred/internal/infrastructure/qrcode"
	"github.com/campuscred/campuscred/internal/infrastructure/tokens"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/testutil"

	"github.com/stretchr/testify/require"
)

// Test constants
const (
	TestAppURL      = "https://app.campus.test"
	TestAPIURL      = "https://api.campus.test/api/v1/campuscred"
	TestMaxFileSize = 1 << 20
	TestPassword    = "Str0ng!Passw0rd"
)

// RecordingMailer keeps every message it is asked to send
type RecordingMailer struct {
	mu       sync.Mutex
	Messages []*auth.Message
}

func (m *RecordingMailer) Send(_ context.Context, message *auth.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, message)
	return nil
}

// Last returns the most recent message or nil
func (m *RecordingMailer) Last() *auth.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Messages) == 0 {
		return nil
	}
	return m.Messages[len(m.Messages)-1]
}

// TokenFromLastMail extracts the token query parameter from the last message
func (m *RecordingMailer) TokenFromLastMail(t *testing.T) string {
	t.Helper()
	last := m.Last()
	require.NotNil(t, last, "no mail was sent")

	i := strings.Index(last.Body, "token=")
	require.GreaterOrEqual(t, i, 0, "mail has no token")
	token := last.Body[i+len("token="):]
	if end := strings.IndexAny(token, " \n"); end >= 0 {
		token = token[:end]
	}
	return token
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	AuthService         auth.AuthService
	ProfileService      profiles.ProfileService
	DocumentService     documents.DocumentService
	VerificationService documents.VerificationService
	NotificationService notifications.NotificationService
	ShareLinkService    sharing.ShareLinkService
	QRCodeService       sharing.QRCodeService
	PortfolioService    portfolios.PortfolioService

	Connector  storage.ObjectConnector
	TokenStore auth.TokenStore
	Mailer     *RecordingMailer
	DBContext  *persistence.TestContext
}

// SetupTestServices initializes all application services for integration tests
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	objectConnector, err := connector.NewLocalConnector(&config.StorageSettings{
		CloudProvider: config.LocalStorageProvider,
		RootDir:       t.TempDir(),
	}, logger)
	require.NoError(t, err, "Failed to create object connector")

	authSettings := &config.AuthSettings{
		JWTSecret:      strings.Repeat("k", 48),
		Issuer:         "campuscred-test",
		AccessTokenTTL: time.Hour,
		ResetTokenTTL:  time.Hour,
		MagicLinkTTL:   15 * time.Minute,
		CookieName:     "campuscred_session",
	}
	issuer, err := tokens.NewJWTIssuer(authSettings)
	require.NoError(t, err, "Failed to create token issuer")

	tokenStore := tokens.NewMemoryTokenStore()
	mailer := &RecordingMailer{}

	authService, err := NewAuthService(dbContext.ProfileRepo, issuer, tokenStore, mailer, authSettings,
		AuthLinks{AppURL: TestAppURL, APIURL: TestAPIURL}, logger)
	require.NoError(t, err, "Failed to create AuthService")

	profileService, err := NewProfileService(dbContext.ProfileRepo, logger)
	require.NoError(t, err, "Failed to create ProfileService")

	notificationService, err := NewNotificationService(dbContext.NotificationRepo, logger)
	require.NoError(t, err, "Failed to create NotificationService")

	documentService, err := NewDocumentService(dbContext.DocumentRepo, dbContext.RejectionRepo,
		dbContext.ShareLinkRepo, dbContext.QRCodeRepo, objectConnector, TestMaxFileSize, logger)
	require.NoError(t, err, "Failed to create DocumentService")

	verificationService, err := NewVerificationService(dbContext.DocumentRepo, dbContext.RejectionRepo,
		dbContext.ProfileRepo, notificationService, logger)
	require.NoError(t, err, "Failed to create VerificationService")

	shareLinkService, err := NewShareLinkService(dbContext.DocumentRepo, dbContext.ProfileRepo,
		dbContext.ShareLinkRepo, dbContext.QRCodeRepo, objectConnector, notificationService, logger)
	require.NoError(t, err, "Failed to create ShareLinkService")

	qrCodeService, err := NewQRCodeService(dbContext.DocumentRepo, dbContext.ShareLinkRepo, dbContext.QRCodeRepo,
		shareLinkService, qrcode.NewPNGRenderer(), objectConnector, TestAPIURL, logger)
	require.NoError(t, err, "Failed to create QRCodeService")

	portfolioService, err := NewPortfolioService(dbContext.PortfolioRepo, dbContext.DocumentRepo,
		dbContext.ProfileRepo, logger)
	require.NoError(t, err, "Failed to create PortfolioService")

	return &TestServices{
		AuthService:         authService,
		ProfileService:      profileService,
		DocumentService:     documentService,
		VerificationService: verificationService,
		NotificationService: notificationService,
		ShareLinkService:    shareLinkService,
		QRCodeService:       qrCodeService,
		PortfolioService:    portfolioService,
		Connector:           objectConnector,
		TokenStore:          tokenStore,
		Mailer:              mailer,
		DBContext:           dbContext,
	}
}

// CreateActor stores a profile with role and returns the matching actor
func (s *TestServices) CreateActor(t *testing.T, role string) profiles.Actor {
	t.Helper()

	profile := persistence.CreateTestProfile(t, role)
	hash, err := HashPassword(TestPassword)
	require.NoError(t, err)
	profile.PasswordHash = hash
	require.NoError(t, s.DBContext.ProfileRepo.Create(context.Background(), profile))

	return profiles.Actor{ProfileID: profile.ID, Role: profile.Role}
}

// UploadPDF uploads a small private PDF owned by actor
func (s *TestServices) UploadPDF(t *testing.T, actor profiles.Actor, title string) *documents.Document {
	t.Helper()

	document, err := s.DocumentService.Upload(context.Background(), actor, &documents.UploadRequest{
		Title:      title,
		Category:   documents.CategoryTranscript,
		Visibility: documents.VisibilityPrivate,
		FileName:   "transcript.pdf",
		Content:    testutil.PDFContent,
	})
	require.NoError(t, err)
	return document
}
