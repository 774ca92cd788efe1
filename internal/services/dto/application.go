package dto

// ReviewApplicationRequest - вердикт админа по заявке на тег
type ReviewApplicationRequest struct {
	Status string `json:"status" validate:"required,is-application-status"`
	Notes  string `json:"notes,omitempty"`
}
