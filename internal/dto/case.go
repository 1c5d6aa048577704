package dto

type AddCaseRequest struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Summary     string `json:"summary"`
}

type AddCaseResponse struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
}

type WebhookResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	JobID   string `json:"job_id,omitempty"`
}
