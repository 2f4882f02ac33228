package v1

import (
	"net/http"

	"github.com/campuscred/campuscred/internal/domain/notifications"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// NotificationHandler defines the interface for the caller's notification feed
type NotificationHandler interface {
	Create(ctx *gin.Context)
	List(ctx *gin.Context)
	UnreadCount(ctx *gin.Context)
	MarkRead(ctx *gin.Context)
	MarkAllRead(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type notificationHandler struct {
	notificationService notifications.NotificationService
	logger              logger.Logger
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService notifications.NotificationService, logger logger.Logger) NotificationHandler {
	return &notificationHandler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// Create lets an admin post a notification to any user
func (handler *notificationHandler) Create(ctx *gin.Context) {
	var request CreateNotificationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	notification, err := handler.notificationService.Create(ctx, currentActor(ctx), request.toDomain())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, newNotificationResponse(notification))
}

func (handler *notificationHandler) List(ctx *gin.Context) {
	var query NotificationListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBadRequest(ctx, "invalid query parameters")
		return
	}

	list, err := handler.notificationService.List(ctx, currentActor(ctx), query.toDomain())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	responses := make([]NotificationResponse, 0, len(list))
	for _, n := range list {
		responses = append(responses, newNotificationResponse(n))
	}
	ctx.JSON(http.StatusOK, responses)
}

func (handler *notificationHandler) UnreadCount(ctx *gin.Context) {
	count, err := handler.notificationService.UnreadCount(ctx, currentActor(ctx))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, CountResponse{Count: count})
}

func (handler *notificationHandler) MarkRead(ctx *gin.Context) {
	if err := handler.notificationService.MarkRead(ctx, currentActor(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, InfoResponse{Message: "notification marked as read"})
}

func (handler *notificationHandler) MarkAllRead(ctx *gin.Context) {
	count, err := handler.notificationService.MarkAllRead(ctx, currentActor(ctx))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, CountResponse{Count: count})
}

func (handler *notificationHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.notificationService.DeleteByID(ctx, currentActor(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
