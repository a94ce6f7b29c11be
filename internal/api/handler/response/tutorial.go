package response

type Tutorial struct {
	ID              uint   `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Thumbnail       string `json:"thumbnail"`
	Difficulty      string `json:"difficulty"`
	Category        string `json:"category"`
	DurationMinutes int    `json:"duration_minutes"`
}

// TutorialDetail adds the lesson body to the listing fields
type TutorialDetail struct {
	Tutorial
	Content string `json:"content"`
}

type TutorialCompletion struct {
	Status   string `json:"status"`
	XPEarned int    `json:"xp_earned"`
}

type LearningProgress struct {
	CompletedCount       int     `json:"completed_count"`
	TotalCount           int64   `json:"total_count"`
	ProgressPercentage   float64 `json:"progress_percentage"`
	TotalXP              int     `json:"total_xp"`
	CompletedTutorialIDs []uint  `json:"completed_tutorial_ids"`
}
