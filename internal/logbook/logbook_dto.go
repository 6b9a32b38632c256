package logbook

type CreateLogbookRequest struct {
	Activity    string `json:"activity" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

type UpdateLogbookRequest struct {
	Activity    string `json:"activity" binding:"required,max=255"`
	Description string `json:"description" binding:"required"`
}

type ReviewLogbookRequest struct {
	Notes string `json:"notes"`
}

type LogbookResponse struct {
	ID          string  `json:"id"`
	UserID      string  `json:"user_id"`
	UserName    string  `json:"user_name,omitempty"`
	LogDate     string  `json:"log_date"`
	Activity    string  `json:"activity"`
	Description string  `json:"description"`
	Status      string  `json:"status"`
	ReviewNotes *string `json:"review_notes,omitempty"`
	ReviewedBy  *string `json:"reviewed_by,omitempty"`
	ReviewedAt  *string `json:"reviewed_at,omitempty"`
	CreatedAt   string  `json:"created_at"`
}
