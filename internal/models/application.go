package models

// Employment types accepted for an application.
const (
	EmploymentFullTime = "full-time"
	EmploymentPartTime = "part-time"
	EmploymentIntern   = "intern"
)

// Pipeline statuses. An application moves applied -> interview -> offer/rejected.
const (
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusRejected  = "rejected"
)

// Application is a single job-application record owned by one user.
// Date is a YYYY-MM-DD string; it means "application deadline" while the
// status is applied and "interview deadline" while the status is interview.
type Application struct {
	ID         int64  `json:"id"`
	UserID     int64  `json:"userId"`
	Position   string `json:"position"`
	Employment string `json:"employment"`
	Company    string `json:"company"`
	Salary     int64  `json:"salary"`
	Location   string `json:"location"`
	Status     string `json:"status"`
	Date       string `json:"date"`
	Notes      string `json:"notes"`
}

// ValidEmployment reports whether v is one of the accepted employment types.
func ValidEmployment(v string) bool {
	switch v {
	case EmploymentFullTime, EmploymentPartTime, EmploymentIntern:
		return true
	}
	return false
}

// ValidStatus reports whether v is one of the pipeline statuses.
func ValidStatus(v string) bool {
	switch v {
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return true
	}
	return false
}
