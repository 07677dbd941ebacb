package models

import "time"

// ReviewStatus is the human-review state of a brief section. Sections are
// created pending_review; transitions to approved or flagged are driven by
// external review, never by the pipeline itself.
type ReviewStatus string

const (
	ReviewPending  ReviewStatus = "pending_review"
	ReviewApproved ReviewStatus = "approved"
	ReviewFlagged  ReviewStatus = "flagged"
)

// EnhancedBriefSection is one rendered section of a draft brief with the
// source references backing its content.
type EnhancedBriefSection struct {
	ID                string            `json:"id" db:"id"`
	Title             string            `json:"title" db:"title"`
	Content           string            `json:"content" db:"content"`
	Sources           []SourceReference `json:"sources" db:"sources"`
	ReviewStatus      ReviewStatus      `json:"review_status" db:"review_status"`
	FlagNote          string            `json:"flag_note,omitempty" db:"flag_note"`
	RegenerationCount int               `json:"regeneration_count" db:"regeneration_count"`
}

// Brief is a stored draft brief: the rendered sections for one analysis run.
type Brief struct {
	ID        string                  `json:"id" db:"id"`
	Sections  []*EnhancedBriefSection `json:"sections" db:"sections"`
	CreatedAt time.Time               `json:"created_at" db:"created_at"`
}
