package handlers

import (
	"net/http"

	"askpro_backend/internal/middleware"
	"askpro_backend/internal/models"
	"askpro_backend/internal/services"
	"askpro_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	*BaseHandler
	tagService *services.TagService
}

func NewTagHandler(base *BaseHandler, tagService *services.TagService) *TagHandler {
	return &TagHandler{BaseHandler: base, tagService: tagService}
}

func (h *TagHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/tags")
	{
		public.GET("", h.ListTags)
		public.GET("/:tagId", h.GetTag)
	}

	admin := r.Group("/admin/tags")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.POST("", h.CreateTag)
		admin.PUT("/:tagId", h.UpdateTag)
		admin.DELETE("/:tagId", h.DeleteTag)
	}
}

func (h *TagHandler) ListTags(c *gin.Context) {
	tags, err := h.tagService.ListTags(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

func (h *TagHandler) GetTag(c *gin.Context) {
	tag, err := h.tagService.GetTag(h.GetDB(c), c.Param("tagId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) CreateTag(c *gin.Context) {
	var req dto.CreateTagRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	tag, err := h.tagService.CreateTag(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tag)
}

func (h *TagHandler) UpdateTag(c *gin.Context) {
	var req dto.UpdateTagRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	tag, err := h.tagService.UpdateTag(h.GetDB(c), c.Param("tagId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}

func (h *TagHandler) DeleteTag(c *gin.Context) {
	if err := h.tagService.DeleteTag(h.GetDB(c), c.Param("tagId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted"})
}
