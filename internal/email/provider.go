package email

// Provider - отправка писем. Всегда best-effort: письма не участвуют
// в транзакциях и их сбой не откатывает бизнес-операцию.
type Provider interface {
	Send(to, subject, body string) error
}

// Готовые письма платформы

func WelcomeSubject() string { return "Welcome to AskPro" }

func WelcomeBody(username string) string {
	return "<p>Hi " + username + ",</p><p>Your AskPro account is ready. Ask away!</p>"
}

func ApplicationOutcomeSubject() string { return "Your certification application was reviewed" }

func ApplicationOutcomeBody(tagName, status string) string {
	return "<p>Your application for the tag <b>" + tagName + "</b> was <b>" + status + "</b>.</p>"
}

func BanSubject() string { return "Your AskPro account has been suspended" }

func BanBody(reason string) string {
	return "<p>Your account was banned. Reason: " + reason + "</p>"
}
