package handlers

import (
	"net/http"

	"askpro_backend/internal/middleware"
	"askpro_backend/internal/services"
	"askpro_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService *services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{BaseHandler: base, reviewService: reviewService}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/users/:userId/reviews")
	{
		public.GET("", h.GetUserReviews)
	}

	protected := r.Group("/users/:userId/reviews")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.SubmitReview)
	}
}

// SubmitReview godoc
// @Summary Отзыв о профессионале
// @Description Пара (автор, получатель) уникальна: повторная отправка обновляет прежний отзыв
// @Tags reviews
// @Accept json
// @Produce json
// @Param userId path string true "ID профессионала"
// @Param request body dto.SubmitReviewRequest true "Отзыв"
// @Success 200 {object} models.Review
// @Failure 400 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /users/{userId}/reviews [post]
func (h *ReviewHandler) SubmitReview(c *gin.Context) {
	reviewerID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.SubmitReview(h.GetDB(c), reviewerID, c.Param("userId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	resp, err := h.reviewService.GetUserReviews(h.GetDB(c), c.Param("userId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
