package v1

import (
	"net/http"

	"github.com/campuscred/campuscred/internal/domain/portfolios"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// PortfolioHandler defines the interface for portfolio operations
type PortfolioHandler interface {
	GetMine(ctx *gin.Context)
	SaveMine(ctx *gin.Context)
	DeleteMine(ctx *gin.Context)
	GetPublic(ctx *gin.Context)
}

type portfolioHandler struct {
	portfolioService portfolios.PortfolioService
	logger           logger.Logger
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService portfolios.PortfolioService, logger logger.Logger) PortfolioHandler {
	return &portfolioHandler{
		portfolioService: portfolioService,
		logger:           logger,
	}
}

func (handler *portfolioHandler) GetMine(ctx *gin.Context) {
	portfolio, err := handler.portfolioService.GetMine(ctx, currentActor(ctx))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newPortfolioResponse(portfolio))
}

// SaveMine creates or replaces the caller's portfolio
func (handler *portfolioHandler) SaveMine(ctx *gin.Context) {
	var request PortfolioRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	portfolio, err := handler.portfolioService.Save(ctx, currentActor(ctx), request.toDomain())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newPortfolioResponse(portfolio))
}

func (handler *portfolioHandler) DeleteMine(ctx *gin.Context) {
	if err := handler.portfolioService.DeleteMine(ctx, currentActor(ctx)); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (handler *portfolioHandler) GetPublic(ctx *gin.Context) {
	portfolio, err := handler.portfolioService.GetPublic(ctx, ctx.Param("slug"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newPublicPortfolioResponse(portfolio))
}
