package admin

// Stats is the /admin/stats response feeding the dashboard's stat cards.
type Stats struct {
	TotalUsers         int         `json:"total_users"`
	TotalCourses       int         `json:"total_courses"`
	TotalModules       int         `json:"total_modules"`
	TotalLessons       int         `json:"total_lessons"`
	AvgCompletionRate  float64     `json:"avg_completion_rate"`
	ActiveUsers        int         `json:"active_users"`
	ProcessedLessons   int         `json:"processed_lessons"`
	UnprocessedLessons int         `json:"unprocessed_lessons"`
	RoleDistribution   []RoleCount `json:"role_distribution"`
	RecentUsers        []UserRow   `json:"recent_users"`
	TopCourses         []TopCourse `json:"top_courses"`
}

type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

type TopCourse struct {
	ID            int     `json:"id"`
	Title         string  `json:"title"`
	EnrolledCount int     `json:"enrolled_count"`
	AvgCompletion float64 `json:"avg_completion"`
}

// UserRow is one row of the user management table.
type UserRow struct {
	ID            int    `json:"id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Status        string `json:"status"` // pending | approved | revoked
	IsActive      bool   `json:"is_active"`
	LoginAttempts int    `json:"login_attempts"`
	LastLogin     string `json:"last_login"`
	CreatedAt     string `json:"created_at"`
}

// UserPage is the paginated /admin/users envelope. Decoding validates the
// shape; a body without the users key is a data error at the gateway, not a
// crash in the table renderer.
type UserPage struct {
	Users    []UserRow `json:"users"`
	Total    int       `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

// Activity is one event on the platform activity feed.
type Activity struct {
	ID              int    `json:"id"`
	Action          string `json:"action"`
	Detail          string `json:"detail"`
	RelatedCourseID int    `json:"related_course_id"`
	IPAddress       string `json:"ip_address"`
	CreatedAt       string `json:"created_at"`
	UserName        string `json:"user_name"`
	UserRole        string `json:"user_role"`
}

// Analytics shapes, one per /admin/analytics/* endpoint.
type CompletionRate struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	Completion float64 `json:"completion"`
	Students   int     `json:"students"`
}

type DifficultTopic struct {
	Topic      string  `json:"topic"`
	Difficulty float64 `json:"difficulty"`
	Attempts   int     `json:"attempts"`
}

type EnrollmentPoint struct {
	Month string `json:"month"`
	Users int    `json:"users"`
}

type Registration struct {
	ID        int    `json:"id"`
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

// Certificate is one row of the certificates table.
type Certificate struct {
	ID         int    `json:"id"`
	UserName   string `json:"user_name"`
	CourseName string `json:"course_title"`
	IssuedAt   string `json:"issued_at"`
	Revoked    bool   `json:"revoked"`
}

// CertificatePage is the paginated /admin/certificates envelope.
type CertificatePage struct {
	Certificates []Certificate `json:"certificates"`
	Total        int           `json:"total"`
	Page         int           `json:"page"`
	PageSize     int           `json:"page_size"`
}
