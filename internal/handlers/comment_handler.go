package handlers

import (
	"net/http"

	"askpro_backend/internal/middleware"
	"askpro_backend/internal/services"
	"askpro_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	*BaseHandler
	commentService *services.CommentService
}

func NewCommentHandler(base *BaseHandler, commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{BaseHandler: base, commentService: commentService}
}

func (h *CommentHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/answers/:answerId/comments")
	{
		public.GET("", h.ListByAnswer)
	}

	protected := r.Group("/comments")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreateComment)
		protected.PUT("/:commentId", h.UpdateComment)
		protected.DELETE("/:commentId", h.DeleteComment)
	}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	comment, err := h.commentService.CreateComment(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *CommentHandler) ListByAnswer(c *gin.Context) {
	comments, err := h.commentService.ListByAnswer(h.GetDB(c), c.Param("answerId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	comment, err := h.commentService.UpdateComment(h.GetDB(c), c.Param("commentId"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(h.GetDB(c), c.Param("commentId"), userID, h.GetUserRole(c)); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
