package course

import "time"

// Course is the catalog/my-courses row plus the overview detail.
type Course struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedByID int       `json:"created_by_id"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`

	Modules []Module `json:"modules"`

	// enrollment / progress
	IsEnrolled         bool `json:"is_enrolled"`
	ProgressPercentage int  `json:"progress_percentage"`
	CompletedLessons   int  `json:"completed_lessons"`
	TotalLessons       int  `json:"total_lessons"`

	// display fields the backend fills for the catalog cards
	Instructor string   `json:"instructor"`
	Duration   string   `json:"duration"`
	Level      string   `json:"level"`
	Category   string   `json:"category"`
	Image      string   `json:"image"`
	Rating     float64  `json:"rating"`
	Students   int      `json:"students"`
	AIFeatures []string `json:"aiFeatures"`
}

type Module struct {
	ID         int      `json:"id"`
	CourseID   int      `json:"course_id"`
	Title      string   `json:"title"`
	OrderIndex int      `json:"order_index"`
	Lessons    []Lesson `json:"lessons"`
}

type Lesson struct {
	ID          int    `json:"id"`
	ModuleID    int    `json:"module_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index"`

	VideoURL string `json:"video_url"`
	AudioURL string `json:"audio_url"`
	PDFURL   string `json:"pdf_url"`

	Transcript   string `json:"transcript"`
	Summary      string `json:"summary"`
	KeyTakeaways string `json:"key_takeaways"`
	Processed    bool   `json:"processed"`

	CompletionPercentage int  `json:"completion_percentage"`
	IsCompleted          bool `json:"is_completed"`
	LastPositionSeconds  int  `json:"last_position_seconds"`
}

// LessonProgress is POSTed to /lessons/{id}/progress as the learner watches.
type LessonProgress struct {
	LessonID             int    `json:"lesson_id"`
	CompletionPercentage int    `json:"completion_percentage"`
	LastPositionSeconds  int    `json:"last_position_seconds"`
	IsCompleted          bool   `json:"is_completed"`
	WeakTopics           string `json:"weak_topics,omitempty"`
}
