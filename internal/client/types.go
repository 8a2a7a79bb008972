// ABOUTME: Data types exchanged with the prompt library API
// ABOUTME: JSON field names mirror the backend serializers exactly

package client

// TokenPair is the response from the token endpoint
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// User is the authenticated identity from /auth/user/
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsStaff  bool   `json:"is_staff"`
}

// Prompt statuses as returned by the backend
const (
	StatusPending         = "pending"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
	StatusPendingDeletion = "pending_deletion"
)

// Prompt is a shared prompt record
type Prompt struct {
	ID           int    `json:"id"`
	UserID       int    `json:"user"`
	UserUsername string `json:"user_username"`
	Title        string `json:"title"`
	Description  string `json:"prompt_description"`
	Text         string `json:"prompt_text"`
	Guidance     string `json:"guidance"`
	TaskType     string `json:"task_type"`
	OutputFormat string `json:"output_format"`
	Category     string `json:"category"`
	Status       string `json:"status"`
	VoteCount    int    `json:"vote_count"`
	LikeCount    int    `json:"like_count"`
	DislikeCount int    `json:"dislike_count"`
	UserVote     int    `json:"user_vote"`
	IsBookmarked bool   `json:"is_bookmarked"`
	CreatedAt    string `json:"created_at"`
	UpdatedAt    string `json:"updated_at"`
}

// PromptVersion is a historical snapshot of a prompt, newest first
type PromptVersion struct {
	ID                int    `json:"id"`
	PromptID          int    `json:"prompt"`
	Title             string `json:"title"`
	Description       string `json:"prompt_description"`
	Text              string `json:"prompt_text"`
	Guidance          string `json:"guidance"`
	TaskType          string `json:"task_type"`
	TaskTypeLabel     string `json:"task_type_label"`
	OutputFormat      string `json:"output_format"`
	OutputFormatLabel string `json:"output_format_label"`
	Category          string `json:"category"`
	EditedByUsername  string `json:"edited_by_username"`
	CreatedAt         string `json:"version_created_at"`
}

// PromptInput is the payload for creating or editing a prompt.
// Validated locally before any request is issued.
type PromptInput struct {
	Title        string `json:"title" validate:"required,max=255"`
	Description  string `json:"prompt_description"`
	Text         string `json:"prompt_text" validate:"required"`
	Guidance     string `json:"guidance"`
	TaskType     string `json:"task_type" validate:"required"`
	OutputFormat string `json:"output_format" validate:"required"`
	Category     string `json:"category" validate:"required"`
}

// RegisterInput is the payload for account creation
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=150"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"omitempty,email"`
}
