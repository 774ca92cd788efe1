package handlers

import (
	"net/http"

	"askpro_backend/internal/middleware"
	"askpro_backend/internal/services"
	"askpro_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	*BaseHandler
	answerService *services.AnswerService
}

func NewAnswerHandler(base *BaseHandler, answerService *services.AnswerService) *AnswerHandler {
	return &AnswerHandler{BaseHandler: base, answerService: answerService}
}

func (h *AnswerHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/questions/:questionId/answers")
	{
		public.GET("", h.ListByQuestion)
	}

	protected := r.Group("/answers")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreateAnswer)
		protected.GET("/:answerId", h.GetAnswer)
		protected.POST("/:answerId/accept", h.AcceptAnswer)
	}
}

// CreateAnswer godoc
// @Summary Ответ профессионала на вопрос
// @Description Доступно ролям power и admin с сертификацией в одном из тегов вопроса
// @Tags answers
// @Accept json
// @Produce json
// @Param request body dto.CreateAnswerRequest true "Ответ"
// @Success 201 {object} models.Answer
// @Failure 403 {object} apperrors.ErrorResponse
// @Security BearerAuth
// @Router /answers [post]
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAnswerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	answer, err := h.answerService.CreateAnswer(h.GetDB(c), userID, h.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

func (h *AnswerHandler) GetAnswer(c *gin.Context) {
	answer, err := h.answerService.GetAnswer(h.GetDB(c), c.Param("answerId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (h *AnswerHandler) ListByQuestion(c *gin.Context) {
	answers, err := h.answerService.ListByQuestion(h.GetDB(c), c.Param("questionId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"answers": answers})
}

func (h *AnswerHandler) AcceptAnswer(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.answerService.AcceptAnswer(h.GetDB(c), c.Param("answerId"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Answer accepted"})
}
