package v1

import (
	"net/http"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// VerificationHandler defines the interface for the review workflow
type VerificationHandler interface {
	RequestVerification(ctx *gin.Context)
	ListPending(ctx *gin.Context)
	Verify(ctx *gin.Context)
	Reject(ctx *gin.Context)
	ListRejections(ctx *gin.Context)
}

type verificationHandler struct {
	verificationService documents.VerificationService
	logger              logger.Logger
}

// NewVerificationHandler creates a new VerificationHandler
func NewVerificationHandler(verificationService documents.VerificationService, logger logger.Logger) VerificationHandler {
	return &verificationHandler{
		verificationService: verificationService,
		logger:              logger,
	}
}

func (handler *verificationHandler) RequestVerification(ctx *gin.Context) {
	document, err := handler.verificationService.RequestVerification(ctx, currentActor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newDocumentResponse(document))
}

func (handler *verificationHandler) ListPending(ctx *gin.Context) {
	var query DocumentListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBadRequest(ctx, "invalid query parameters")
		return
	}

	list, err := handler.verificationService.ListPending(ctx, currentActor(ctx), query.toDomain())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newDocumentResponses(list))
}

func (handler *verificationHandler) Verify(ctx *gin.Context) {
	document, err := handler.verificationService.Verify(ctx, currentActor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newDocumentResponse(document))
}

func (handler *verificationHandler) Reject(ctx *gin.Context) {
	var request RejectRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "a rejection reason is required")
		return
	}

	document, err := handler.verificationService.Reject(ctx, currentActor(ctx), ctx.Param("id"), request.Reason)
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newDocumentResponse(document))
}

func (handler *verificationHandler) ListRejections(ctx *gin.Context) {
	list, err := handler.verificationService.ListRejections(ctx, currentActor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	responses := make([]RejectionResponse, 0, len(list))
	for _, r := range list {
		responses = append(responses, newRejectionResponse(r))
	}
	ctx.JSON(http.StatusOK, responses)
}
