package handlers

// AppHandlers содержит все хэндлеры приложения.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	TagHandler          *TagHandler
	QuestionHandler     *QuestionHandler
	AnswerHandler       *AnswerHandler
	CommentHandler      *CommentHandler
	AttachmentHandler   *AttachmentHandler
	ApplicationHandler  *ApplicationHandler
	ReviewHandler       *ReviewHandler
	NotificationHandler *NotificationHandler
}
