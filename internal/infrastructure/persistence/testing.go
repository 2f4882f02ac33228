//go:build integration
// +build integration

package persistence

import (
	"strings"
	"testing"
	"time"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestContext holds test database and repositories
type TestContext struct {
	DB               *gorm.DB
	ProfileRepo      profiles.ProfileRepository
	DocumentRepo     documents.DocumentRepository
	RejectionRepo    documents.RejectionRepository
	NotificationRepo notifications.NotificationRepository
	ShareLinkRepo    sharing.ShareLinkRepository
	QRCodeRepo       sharing.QRCodeRepository
	PortfolioRepo    portfolios.PortfolioRepository
}

// SetupTestDB initializes a migrated test database with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.DatabaseSettings
	cleanupFunc := func() {}

	switch dbType {
	case config.SqliteDbType:
		settings = config.DatabaseSettings{
			Type: config.SqliteDbType,
			DSN:  ":memory:",
		}

	case config.PostgresDbType:
		uniqueDBName := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16]
		settings = config.DatabaseSettings{
			Type:   config.PostgresDbType,
			DSN:    "user=postgres password=postgres host=localhost port=5432 sslmode=disable",
			DBName: uniqueDBName,
		}
		cleanupFunc = func() {
			adminDSN := "user=postgres password=postgres host=localhost port=5432 dbname=postgres sslmode=disable"
			_ = DropDatabase(adminDSN, uniqueDBName)
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
		cleanupFunc()
	})

	require.NoError(t, Migrate(db), "Failed to migrate schema")

	logger := testutil.SetupTestLogger(t)

	repos, err := NewRepositories(db, logger)
	require.NoError(t, err, "Failed to create repositories")

	return &TestContext{
		DB:               db,
		ProfileRepo:      repos.Profiles,
		DocumentRepo:     repos.Documents,
		RejectionRepo:    repos.Rejections,
		NotificationRepo: repos.Notifications,
		ShareLinkRepo:    repos.ShareLinks,
		QRCodeRepo:       repos.QRCodes,
		PortfolioRepo:    repos.Portfolios,
	}
}

// CreateTestProfile builds a valid profile with the given role
func CreateTestProfile(t *testing.T, role string) *profiles.Profile {
	t.Helper()

	now := time.Now().UTC()
	id := uuid.NewString()
	return &profiles.Profile{
		ID:           id,
		Email:        "user-" + id[:8] + "@campus.edu",
		FullName:     "Test " + role,
		Role:         role,
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// CreateTestDocument builds a valid unverified private document owned by ownerID
func CreateTestDocument(t *testing.T, ownerID, title string) *documents.Document {
	t.Helper()

	now := time.Now().UTC()
	id := uuid.NewString()
	return &documents.Document{
		ID:          id,
		OwnerID:     ownerID,
		Title:       title,
		Category:    documents.CategoryCertificate,
		Visibility:  documents.VisibilityPrivate,
		Status:      documents.StatusUnverified,
		FileName:    "certificate.pdf",
		ContentType: "application/pdf",
		Size:        1024,
		Checksum:    strings.Repeat("0f", 32),
		StoragePath: "documents/" + ownerID + "/" + id + "/certificate.pdf",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// CreateTestShareLink builds a valid open share link for document
func CreateTestShareLink(t *testing.T, document *documents.Document) *sharing.ShareLink {
	t.Helper()

	return &sharing.ShareLink{
		ID:         uuid.NewString(),
		DocumentID: document.ID,
		OwnerID:    document.OwnerID,
		Token:      strings.ReplaceAll(uuid.NewString()+uuid.NewString(), "-", ""),
		CreatedAt:  time.Now().UTC(),
	}
}
