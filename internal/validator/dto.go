package validator

// SendMessageRequest carries one outbound message. Exactly one of the three
// addressing fields must be set; that invariant is checked by the dispatcher
// (models.ParseAddress), not by struct tags.
type SendMessageRequest struct {
	CohortID string `json:"cohort_id"`
	TeamID   string `json:"team_id"`
	ToUserID string `json:"to_user_id"`
	Body     string `json:"body" validate:"required,min=1,max=4000"`
}

// AnnouncementRequest creates a broadcast notification. CohortID applies
// only to educational cohort announcements; workspace-wide announcements
// leave it empty.
type AnnouncementRequest struct {
	Title    string  `json:"title" validate:"required,min=1,max=255"`
	Body     string  `json:"body" validate:"required,min=1,max=4000"`
	Link     *string `json:"link" validate:"omitempty,max=500"`
	CohortID string  `json:"cohort_id"`
}

type RegisterRequest struct {
	FullName  string `json:"full_name" validate:"required,min=1,max=100"`
	Email     string `json:"email" validate:"required,email,max=255"`
	Password  string `json:"password" validate:"required,min=8,max=128"`
	Workspace string `json:"workspace" validate:"required,workspace"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type PostGradeRequest struct {
	StudentID string  `json:"student_id" validate:"required"`
	Subject   string  `json:"subject" validate:"required,min=1,max=255"`
	Score     float64 `json:"score" validate:"min=0"`
	MaxScore  float64 `json:"max_score" validate:"required,gt=0,gtefield=Score"`
}
