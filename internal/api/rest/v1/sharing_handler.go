package v1

import (
	"net/http"

	"github.com/campuscred/campuscred/internal/domain/sharing"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SharingHandler defines the interface for share links, QR codes and
// anonymous access through a share token
type SharingHandler interface {
	CreateShareLink(ctx *gin.Context)
	ListShareLinks(ctx *gin.Context)
	RevokeShareLink(ctx *gin.Context)
	CreateQRCode(ctx *gin.Context)
	ListQRCodes(ctx *gin.Context)
	GetQRCode(ctx *gin.Context)
	GetQRCodeImage(ctx *gin.Context)
	AccessShared(ctx *gin.Context)
	DownloadShared(ctx *gin.Context)
}

type sharingHandler struct {
	shareLinkService sharing.ShareLinkService
	qrCodeService    sharing.QRCodeService
	apiURL           string
	logger           logger.Logger
}

// NewSharingHandler creates a new SharingHandler. apiURL prefixes the share URLs it returns.
func NewSharingHandler(shareLinkService sharing.ShareLinkService, qrCodeService sharing.QRCodeService, apiURL string, logger logger.Logger) SharingHandler {
	return &sharingHandler{
		shareLinkService: shareLinkService,
		qrCodeService:    qrCodeService,
		apiURL:           apiURL,
		logger:           logger,
	}
}

func (handler *sharingHandler) CreateShareLink(ctx *gin.Context) {
	var request CreateShareLinkRequest
	// an empty body asks for a link without expiry or access cap
	if !bindOptionalJSON(ctx, &request) {
		return
	}

	link, err := handler.shareLinkService.Create(ctx, currentActor(ctx), ctx.Param("id"), &sharing.CreateShareLinkRequest{
		ExpiresInHours: request.ExpiresInHours,
		MaxAccesses:    request.MaxAccesses,
	})
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, newShareLinkResponse(link, handler.apiURL))
}

func (handler *sharingHandler) ListShareLinks(ctx *gin.Context) {
	links, err := handler.shareLinkService.ListByDocument(ctx, currentActor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	responses := make([]ShareLinkResponse, 0, len(links))
	for _, l := range links {
		responses = append(responses, newShareLinkResponse(l, handler.apiURL))
	}
	ctx.JSON(http.StatusOK, responses)
}

func (handler *sharingHandler) RevokeShareLink(ctx *gin.Context) {
	link, err := handler.shareLinkService.Revoke(ctx, currentActor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newShareLinkResponse(link, handler.apiURL))
}

func (handler *sharingHandler) CreateQRCode(ctx *gin.Context) {
	var request CreateQRCodeRequest
	if !bindOptionalJSON(ctx, &request) {
		return
	}

	qrCode, err := handler.qrCodeService.Create(ctx, currentActor(ctx), ctx.Param("id"), request.ShareLinkID)
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, newQRCodeResponse(qrCode))
}

func (handler *sharingHandler) ListQRCodes(ctx *gin.Context) {
	list, err := handler.qrCodeService.ListByDocument(ctx, currentActor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}

	responses := make([]QRCodeResponse, 0, len(list))
	for _, q := range list {
		responses = append(responses, newQRCodeResponse(q))
	}
	ctx.JSON(http.StatusOK, responses)
}

func (handler *sharingHandler) GetQRCode(ctx *gin.Context) {
	qrCode, err := handler.qrCodeService.GetByID(ctx, currentActor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newQRCodeResponse(qrCode))
}

func (handler *sharingHandler) GetQRCodeImage(ctx *gin.Context) {
	image, err := handler.qrCodeService.GetImage(ctx, currentActor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.Data(http.StatusOK, "image/png", image)
}

// AccessShared returns the metadata of a shared document; ?src=qr marks a QR scan
func (handler *sharingHandler) AccessShared(ctx *gin.Context) {
	shared, err := handler.shareLinkService.Access(ctx, ctx.Param("token"), ctx.Query("src"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, SharedDocumentResponse{
		Document: newDocumentResponse(shared.Document),
		Owner:    newPublicProfileResponse(shared.Owner),
	})
}

func (handler *sharingHandler) DownloadShared(ctx *gin.Context) {
	document, content, err := handler.shareLinkService.Download(ctx, ctx.Param("token"), ctx.Query("src"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	sendAttachment(ctx, document, content)
}
