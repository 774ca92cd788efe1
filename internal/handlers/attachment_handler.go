package handlers

import (
	"io"
	"net/http"
	"strconv"

	"askpro_backend/internal/logger"
	"askpro_backend/internal/middleware"
	"askpro_backend/internal/services"
	"askpro_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AttachmentHandler struct {
	*BaseHandler
	attachmentService *services.AttachmentService
}

func NewAttachmentHandler(base *BaseHandler, attachmentService *services.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{BaseHandler: base, attachmentService: attachmentService}
}

func (h *AttachmentHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/attachments")
	{
		public.GET("/:attachmentId", h.Download)
	}

	protected := r.Group("")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.GET("/questions/:questionId/attachments", h.ListByQuestion)
		protected.POST("/questions/:questionId/attachments", h.Upload)
		protected.DELETE("/attachments/:attachmentId", h.Delete)
	}
}

func (h *AttachmentHandler) ListByQuestion(c *gin.Context) {
	attachments, err := h.attachmentService.ListByQuestion(h.GetDB(c), c.Param("questionId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, attachments)
}

// Upload godoc
// @Summary Вложение к вопросу (multipart/form-data, поле file)
// @Description Не более двух файлов на вопрос, только PDF и PNG
// @Tags attachments
// @Accept mpfd
// @Produce json
// @Param questionId path string true "ID вопроса"
// @Success 201 {object} models.Attachment
// @Failure 400 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /questions/{questionId}/attachments [post]
func (h *AttachmentHandler) Upload(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("File is required (multipart field 'file')"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	attachment, err := h.attachmentService.Upload(
		c.Request.Context(), h.GetDB(c),
		c.Param("questionId"), userID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attachment)
}

func (h *AttachmentHandler) Download(c *gin.Context) {
	attachment, reader, err := h.attachmentService.Download(c.Request.Context(), h.GetDB(c), c.Param("attachmentId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="`+attachment.Filename+`"`)
	c.Header("Content-Type", attachment.MimeType)
	c.Header("Content-Length", strconv.FormatInt(attachment.Size, 10))
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to stream attachment", err, "attachment_id", attachment.ID)
	}
}

func (h *AttachmentHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.attachmentService.Delete(c.Request.Context(), h.GetDB(c), c.Param("attachmentId"), userID, h.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Attachment deleted"})
}
