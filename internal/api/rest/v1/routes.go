package v1

import (
	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Services bundles the application services behind the version 1 routes
type Services struct {
	Auth          auth.AuthService
	Profiles      profiles.ProfileService
	Documents     documents.DocumentService
	Verification  documents.VerificationService
	Notifications notifications.NotificationService
	ShareLinks    sharing.ShareLinkService
	QRCodes       sharing.QRCodeService
	Portfolios    portfolios.PortfolioService
}

// RouteOptions carries the settings the handlers and middleware need
type RouteOptions struct {
	Auth        *config.AuthSettings
	RateLimit   config.RateLimitSettings
	AppURL      string
	APIURL      string
	MaxFileSize int64
	Logger      logger.Logger
}

// SetupRoutes sets up all the API routes for version 1.
func SetupRoutes(r *gin.Engine, services Services, opts RouteOptions) {
	v1 := r.Group(BasePath) // lookup in version file

	limited := NewRateLimiter(opts.RateLimit, opts.Logger).Middleware()
	requireAuth := RequireAuth(services.Auth, opts.Auth.CookieName, opts.Logger)
	reviewersOnly := RequireRole(profiles.RoleFaculty, profiles.RoleAdmin)
	adminsOnly := RequireRole(profiles.RoleAdmin)

	// Auth Routes
	authHandler := NewAuthHandler(services.Auth, opts.Auth, opts.AppURL, opts.Logger)
	authRoutes := v1.Group("/auth")
	authRoutes.POST("/signup", limited, authHandler.SignUp)
	authRoutes.POST("/signin", limited, authHandler.SignIn)
	authRoutes.POST("/password/forgot", limited, authHandler.ForgotPassword)
	authRoutes.POST("/password/reset", limited, authHandler.ResetPassword)
	authRoutes.POST("/magic-link", limited, authHandler.RequestMagicLink)
	authRoutes.GET("/magic-link/callback", authHandler.MagicLinkCallback)
	authRoutes.POST("/signout", requireAuth, authHandler.SignOut)
	authRoutes.PUT("/password", requireAuth, authHandler.ChangePassword)

	// Public Routes
	sharingHandler := NewSharingHandler(services.ShareLinks, services.QRCodes, opts.APIURL, opts.Logger)
	v1.GET("/share/:token", limited, sharingHandler.AccessShared)
	v1.GET("/share/:token/file", limited, sharingHandler.DownloadShared)

	portfolioHandler := NewPortfolioHandler(services.Portfolios, opts.Logger)
	v1.GET("/portfolios/public/:slug", portfolioHandler.GetPublic)

	secured := v1.Group("", requireAuth)

	// Profiles Routes
	profileHandler := NewProfileHandler(services.Profiles, opts.Logger)
	secured.GET("/profiles/me", profileHandler.GetMe)
	secured.PATCH("/profiles/me", profileHandler.UpdateMe)
	secured.GET("/profiles/:id", profileHandler.GetByID)
	secured.GET("/admin/profiles", adminsOnly, profileHandler.List)
	secured.PUT("/admin/profiles/:id/role", adminsOnly, profileHandler.SetRole)

	// Documents Routes
	documentHandler := NewDocumentHandler(services.Documents, opts.MaxFileSize, opts.Logger)
	secured.POST("/documents", documentHandler.Upload)
	secured.GET("/documents", documentHandler.List)
	secured.GET("/documents/:id", documentHandler.GetByID)
	secured.PATCH("/documents/:id", documentHandler.Update)
	secured.DELETE("/documents/:id", documentHandler.DeleteByID)
	secured.GET("/documents/:id/file", documentHandler.DownloadByID)

	// Verification Routes
	verificationHandler := NewVerificationHandler(services.Verification, opts.Logger)
	secured.POST("/documents/:id/verification-request", verificationHandler.RequestVerification)
	secured.GET("/documents/:id/rejections", verificationHandler.ListRejections)
	secured.GET("/verifications/pending", reviewersOnly, verificationHandler.ListPending)
	secured.POST("/verifications/:id/verify", reviewersOnly, verificationHandler.Verify)
	secured.POST("/verifications/:id/reject", reviewersOnly, verificationHandler.Reject)

	// Notifications Routes
	notificationHandler := NewNotificationHandler(services.Notifications, opts.Logger)
	secured.GET("/notifications", notificationHandler.List)
	secured.POST("/notifications", adminsOnly, notificationHandler.Create)
	secured.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	secured.PUT("/notifications/read-all", notificationHandler.MarkAllRead)
	secured.PUT("/notifications/:id/read", notificationHandler.MarkRead)
	secured.DELETE("/notifications/:id", notificationHandler.DeleteByID)

	// Sharing Routes
	secured.POST("/documents/:id/share-links", sharingHandler.CreateShareLink)
	secured.GET("/documents/:id/share-links", sharingHandler.ListShareLinks)
	secured.DELETE("/share-links/:id", sharingHandler.RevokeShareLink)
	secured.POST("/documents/:id/qr-codes", sharingHandler.CreateQRCode)
	secured.GET("/documents/:id/qr-codes", sharingHandler.ListQRCodes)
	secured.GET("/qr-codes/:id", sharingHandler.GetQRCode)
	secured.GET("/qr-codes/:id/image", sharingHandler.GetQRCodeImage)

	// Portfolios Routes
	secured.GET("/portfolios/me", portfolioHandler.GetMine)
	secured.PUT("/portfolios/me", portfolioHandler.SaveMine)
	secured.DELETE("/portfolios/me", portfolioHandler.DeleteMine)
}
