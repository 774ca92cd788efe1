package handlers

import (
	"net/http"

	"askpro_backend/internal/middleware"
	"askpro_backend/internal/models"
	"askpro_backend/internal/services"
	"askpro_backend/internal/services/dto"
	"askpro_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService *services.UserService
}

func NewUserHandler(base *BaseHandler, userService *services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, userService: userService}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/users")
	{
		public.GET("/:userId", h.GetUser)
	}

	// Собственный профиль живет под /me: сегмент "me" внутри /users
	// конфликтовал бы с параметром :userId в дереве роутера gin
	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.PUT("", h.UpdateProfile)
		me.PUT("/password", h.ChangePassword)
		me.POST("/avatar", h.UploadAvatar)
	}

	reports := r.Group("/reports")
	reports.Use(middleware.AuthMiddleware())
	{
		reports.POST("", h.Report)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.POST("/:userId/ban", h.BanUser)
		admin.POST("/:userId/unban", h.UnbanUser)
		admin.DELETE("/:userId", h.DeleteUser)
	}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ChangePasswordRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.ChangePassword(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

// UploadAvatar godoc
// @Summary Загрузка аватара (multipart/form-data, поле file)
// @Tags users
// @Accept mpfd
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Security BearerAuth
// @Router /me/avatar [post]
func (h *UserHandler) UploadAvatar(c *gin.Context) {
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

	contentType := fileHeader.Header.Get("Content-Type")
	user, err := h.userService.UploadAvatar(
		c.Request.Context(), h.GetDB(c),
		userID, fileHeader.Filename, contentType, fileHeader.Size, file,
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Report(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.Report(h.GetDB(c), userID, req.TargetType, req.TargetID, req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"message": "Report submitted"})
}

// --- Admin ---

func (h *UserHandler) BanUser(c *gin.Context) {
	var req dto.BanUserRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	if err := h.userService.BanUser(h.GetDB(c), h.GetUserRole(c), c.Param("userId"), req.Reason); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User banned"})
}

func (h *UserHandler) UnbanUser(c *gin.Context) {
	if err := h.userService.UnbanUser(h.GetDB(c), h.GetUserRole(c), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User unbanned"})
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if err := h.userService.DeleteUser(h.GetDB(c), h.GetUserRole(c), c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
