package handlers

import (
	"io"
	"net/http"

	"askpro_backend/internal/logger"
	"askpro_backend/internal/middleware"
	"askpro_backend/internal/models"
	"askpro_backend/internal/services"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	*BaseHandler
	applicationService *services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applicationService *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, applicationService: applicationService}
}

func (h *ApplicationHandler) RegisterRoutes(r *gin.RouterGroup) {
	applications := r.Group("/applications")
	applications.Use(middleware.AuthMiddleware())
	{
		applications.POST("", h.Submit)
		applications.GET("", h.ListMine)
		applications.GET("/:applicationId/document", h.DownloadDocument)
	}

	admin := r.Group("/admin/applications")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("", h.ListAll)
		admin.PUT("/:applicationId/review", h.Review)
	}
}

// Submit godoc
// @Summary Заявка на сертификацию в теге
// @Description multipart/form-data: tag_id + document (PDF)
// @Tags applications
// @Accept mpfd
// @Produce json
// @Success 201 {object} models.TagApplication
// @Failure 409 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /applications [post]
func (h *ApplicationHandler) Submit(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	tagID := c.PostForm("tag_id")
	if tagID == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("tag_id form field is required"))
		return
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Document is required (multipart field 'document')"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleServiceError(c, apperrors.InternalError(err))
		return
	}
	defer file.Close()

	application, err := h.applicationService.Submit(
		c.Request.Context(), h.GetDB(c),
		userID, h.GetUserRole(c), tagID,
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), fileHeader.Size, file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListMine(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *ApplicationHandler) ListAll(c *gin.Context) {
	status := models.ApplicationStatus(c.Query("status"))

	applications, err := h.applicationService.ListAll(h.GetDB(c), status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// Review godoc
// @Summary Вердикт по заявке (одноразовый)
// @Tags applications
// @Accept json
// @Produce json
// @Param applicationId path string true "ID заявки"
// @Param request body dto.ReviewApplicationRequest true "Вердикт"
// @Success 200 {object} models.TagApplication
// @Failure 400 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /admin/applications/{applicationId}/review [put]
func (h *ApplicationHandler) Review(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewApplicationRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	application, err := h.applicationService.Review(h.GetDB(c), c.Param("applicationId"), adminID, h.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *ApplicationHandler) DownloadDocument(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	application, reader, err := h.applicationService.DownloadDocument(
		c.Request.Context(), h.GetDB(c),
		c.Param("applicationId"), userID, h.GetUserRole(c),
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", `attachment; filename="document.pdf"`)
	c.Header("Content-Type", models.MimePDF)
	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(c.Request.Context(), "failed to stream application document", err, "application_id", application.ID)
	}
}
