package v1

import (
	"net/http"

	"github.com/campuscred/campuscred/internal/domain/profiles"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ProfileHandler defines the interface for profile operations
type ProfileHandler interface {
	GetMe(ctx *gin.Context)
	UpdateMe(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	List(ctx *gin.Context)
	SetRole(ctx *gin.Context)
}

type profileHandler struct {
	profileService profiles.ProfileService
	logger         logger.Logger
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileService profiles.ProfileService, logger logger.Logger) ProfileHandler {
	return &profileHandler{
		profileService: profileService,
		logger:         logger,
	}
}

func (handler *profileHandler) GetMe(ctx *gin.Context) {
	profile, err := handler.profileService.GetMe(ctx, currentActor(ctx))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newProfileResponse(profile))
}

func (handler *profileHandler) UpdateMe(ctx *gin.Context) {
	var request UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	profile, err := handler.profileService.UpdateMe(ctx, currentActor(ctx), request.toDomain())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newProfileResponse(profile))
}

// GetByID returns the public view of any profile
func (handler *profileHandler) GetByID(ctx *gin.Context) {
	profile, err := handler.profileService.GetPublicByID(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newPublicProfileResponse(profile))
}

func (handler *profileHandler) List(ctx *gin.Context) {
	var query ProfileListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBadRequest(ctx, "invalid query parameters")
		return
	}

	list, err := handler.profileService.List(ctx, currentActor(ctx), query.toDomain())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	responses := make([]ProfileResponse, 0, len(list))
	for _, p := range list {
		responses = append(responses, newProfileResponse(p))
	}
	ctx.JSON(http.StatusOK, responses)
}

func (handler *profileHandler) SetRole(ctx *gin.Context) {
	var request SetRoleRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	profile, err := handler.profileService.SetRole(ctx, currentActor(ctx), ctx.Param("id"), request.Role)
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newProfileResponse(profile))
}
