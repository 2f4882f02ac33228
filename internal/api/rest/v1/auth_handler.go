package v1

import (
	"net/http"
	"time"

	"github.com/campuscred/campuscred/internal/domain/auth"
	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/config"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

const mailSentMessage = "if the email is registered, a message has been sent"

// AuthHandler defines the interface for account and session operations
type AuthHandler interface {
	SignUp(ctx *gin.Context)
	SignIn(ctx *gin.Context)
	SignOut(ctx *gin.Context)
	ForgotPassword(ctx *gin.Context)
	ResetPassword(ctx *gin.Context)
	ChangePassword(ctx *gin.Context)
	RequestMagicLink(ctx *gin.Context)
	MagicLinkCallback(ctx *gin.Context)
}

type authHandler struct {
	authService auth.AuthService
	settings    *config.AuthSettings
	appURL      string
	logger      logger.Logger
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService auth.AuthService, settings *config.AuthSettings, appURL string, logger logger.Logger) AuthHandler {
	return &authHandler{
		authService: authService,
		settings:    settings,
		appURL:      appURL,
		logger:      logger,
	}
}

// SignUp registers a student or faculty account
func (handler *authHandler) SignUp(ctx *gin.Context) {
	var request SignUpRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}
	if request.Role == "" {
		request.Role = profiles.RoleStudent
	}

	session, err := handler.authService.SignUp(ctx, &auth.SignUpRequest{
		Email:    request.Email,
		Password: request.Password,
		FullName: request.FullName,
		Role:     request.Role,
	})
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	handler.setSessionCookie(ctx, session.Token, session.ExpiresAt)
	ctx.JSON(http.StatusCreated, newSessionResponse(session))
}

func (handler *authHandler) SignIn(ctx *gin.Context) {
	var request SignInRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	session, err := handler.authService.SignIn(ctx, request.Email, request.Password)
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	handler.setSessionCookie(ctx, session.Token, session.ExpiresAt)
	ctx.JSON(http.StatusOK, newSessionResponse(session))
}

// SignOut revokes the current access token and clears the cookie
func (handler *authHandler) SignOut(ctx *gin.Context) {
	identity, ok := currentIdentity(ctx)
	if !ok {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: "authentication required"})
		return
	}

	if err := handler.authService.SignOut(ctx, identity); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	handler.clearSessionCookie(ctx)
	ctx.JSON(http.StatusOK, InfoResponse{Message: "signed out"})
}

// ForgotPassword answers the same way whether or not the email is known
func (handler *authHandler) ForgotPassword(ctx *gin.Context) {
	var request EmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	if err := handler.authService.ForgotPassword(ctx, request.Email); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: mailSentMessage})
}

func (handler *authHandler) ResetPassword(ctx *gin.Context) {
	var request ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	if err := handler.authService.ResetPassword(ctx, request.Token, request.NewPassword); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: "password updated"})
}

func (handler *authHandler) ChangePassword(ctx *gin.Context) {
	var request ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	if err := handler.authService.ChangePassword(ctx, currentActor(ctx), request.CurrentPassword, request.NewPassword); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: "password updated"})
}

func (handler *authHandler) RequestMagicLink(ctx *gin.Context) {
	var request EmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	if err := handler.authService.RequestMagicLink(ctx, request.Email); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: mailSentMessage})
}

// MagicLinkCallback is opened from the mailed link, so it answers with
// redirects into the web app instead of JSON
func (handler *authHandler) MagicLinkCallback(ctx *gin.Context) {
	session, err := handler.authService.ConsumeMagicLink(ctx, ctx.Query("token"))
	if err != nil {
		if StatusFor(err) == http.StatusInternalServerError {
			handler.logger.Error("Magic link sign-in failed: ", err)
		}
		ctx.Redirect(http.StatusFound, handler.appURL+"/login?error=invalid_link")
		return
	}

	handler.setSessionCookie(ctx, session.Token, session.ExpiresAt)
	ctx.Redirect(http.StatusFound, handler.appURL+"/dashboard")
}

func (handler *authHandler) setSessionCookie(ctx *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(handler.settings.CookieName, token, maxAge, "/", handler.settings.CookieDomain, handler.settings.CookieSecure, true)
}

func (handler *authHandler) clearSessionCookie(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(handler.settings.CookieName, "", -1, "/", handler.settings.CookieDomain, handler.settings.CookieSecure, true)
}
