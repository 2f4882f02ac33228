package v1

import (
	"mime"
	"mime/multipart"
	"net/http"

	"github.com/campuscred/campuscred/internal/domain/documents"
	"github.com/campuscred/campuscred/internal/pkg/httputil"
	"github.com/campuscred/campuscred/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// room for the multipart envelope and text fields around the file
const multipartOverhead = 1 << 20

// DocumentHandler defines the interface for handling document operations
type DocumentHandler interface {
	Upload(ctx *gin.Context)
	List(ctx *gin.Context)
	GetByID(ctx *gin.Context)
	Update(ctx *gin.Context)
	DownloadByID(ctx *gin.Context)
	DeleteByID(ctx *gin.Context)
}

type documentHandler struct {
	documentService documents.DocumentService
	maxFileSize     int64
	logger          logger.Logger
}

// NewDocumentHandler creates a new DocumentHandler
func NewDocumentHandler(documentService documents.DocumentService, maxFileSize int64, logger logger.Logger) DocumentHandler {
	return &documentHandler{
		documentService: documentService,
		maxFileSize:     maxFileSize,
		logger:          logger,
	}
}

// Upload stores a document sent as multipart form data: the file under "file"
// and title, description, category and visibility as text fields
func (handler *documentHandler) Upload(ctx *gin.Context) {
	ctx.Request.Body = http.MaxBytesReader(ctx.Writer, ctx.Request.Body, handler.maxFileSize+multipartOverhead)

	form, err := ctx.MultipartForm()
	if err != nil {
		respondBadRequest(ctx, "invalid form data")
		return
	}

	headers := form.File["file"]
	if len(headers) == 0 {
		respondBadRequest(ctx, "missing file")
		return
	}
	content, err := httputil.ReadFile(headers[0], handler.maxFileSize)
	if err != nil {
		respondBadRequest(ctx, err.Error())
		return
	}

	document, err := handler.documentService.Upload(ctx, currentActor(ctx), &documents.UploadRequest{
		Title:       formValue(form, "title"),
		Description: formValue(form, "description"),
		Category:    formValue(form, "category"),
		Visibility:  formValue(form, "visibility"),
		FileName:    headers[0].Filename,
		Content:     content,
	})
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusCreated, newDocumentResponse(document))
}

// List returns the caller's documents filtered by the query parameters
func (handler *documentHandler) List(ctx *gin.Context) {
	var query DocumentListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		respondBadRequest(ctx, "invalid query parameters")
		return
	}

	list, err := handler.documentService.List(ctx, currentActor(ctx), query.toDomain())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newDocumentResponses(list))
}

func (handler *documentHandler) GetByID(ctx *gin.Context) {
	document, err := handler.documentService.GetByID(ctx, currentActor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newDocumentResponse(document))
}

func (handler *documentHandler) Update(ctx *gin.Context) {
	var request UpdateDocumentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBadRequest(ctx, "invalid request body")
		return
	}

	document, err := handler.documentService.Update(ctx, currentActor(ctx), ctx.Param("id"), request.toDomain())
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.JSON(http.StatusOK, newDocumentResponse(document))
}

func (handler *documentHandler) DownloadByID(ctx *gin.Context) {
	document, content, err := handler.documentService.Download(ctx, currentActor(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	sendAttachment(ctx, document, content)
}

func (handler *documentHandler) DeleteByID(ctx *gin.Context) {
	if err := handler.documentService.DeleteByID(ctx, currentActor(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, handler.logger, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

// sendAttachment writes the file so browsers save it instead of rendering it
func sendAttachment(ctx *gin.Context, document *documents.Document, content []byte) {
	ctx.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": document.FileName}))
	ctx.Header("X-Content-Type-Options", "nosniff")
	ctx.Data(http.StatusOK, document.ContentType, content)
}
