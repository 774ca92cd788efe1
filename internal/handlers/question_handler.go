package handlers

import (
	"net/http"
	"strings"

	"askpro_backend/internal/middleware"
	"askpro_backend/internal/models"
	"askpro_backend/internal/repositories"
	"askpro_backend/internal/services"
	"askpro_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	*BaseHandler
	questionService *services.QuestionService
}

func NewQuestionHandler(base *BaseHandler, questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{BaseHandler: base, questionService: questionService}
}

func (h *QuestionHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/questions")
	{
		public.GET("", h.ListQuestions)
		public.GET("/:questionId", h.GetQuestion)
	}

	protected := r.Group("/questions")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("", h.CreateQuestion)
		protected.PUT("/:questionId", h.UpdateQuestion)
		protected.DELETE("/:questionId", h.DeleteQuestion)
	}
}

// ListQuestions godoc
// @Summary Лента вопросов с фильтрами
// @Tags questions
// @Produce json
// @Param search query string false "Поиск по заголовку и тексту"
// @Param tags query string false "ID тегов через запятую"
// @Param status query string false "open | answered | closed"
// @Param user_id query string false "Вопросы конкретного автора"
// @Param page query int false "Страница"
// @Param page_size query int false "Размер страницы"
// @Success 200 {object} dto.QuestionListResponse
// @Router /questions [get]
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	criteria := repositories.QuestionCriteria{
		Search:   c.Query("search"),
		Status:   models.QuestionStatus(c.Query("status")),
		UserID:   c.Query("user_id"),
		Page:     page,
		PageSize: pageSize,
	}
	if tags := c.Query("tags"); tags != "" {
		criteria.TagIDs = strings.Split(tags, ",")
	}

	resp, err := h.questionService.ListQuestions(h.GetDB(c), criteria)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	question, err := h.questionService.GetQuestion(h.GetDB(c), c.Param("questionId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateQuestionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	question, err := h.questionService.CreateQuestion(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateQuestionRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	question, err := h.questionService.UpdateQuestion(h.GetDB(c), c.Param("questionId"), userID, h.GetUserRole(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	err := h.questionService.DeleteQuestion(
		c.Request.Context(), h.GetDB(c),
		c.Param("questionId"), userID, h.GetUserRole(c), c.Query("reason"),
	)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}
