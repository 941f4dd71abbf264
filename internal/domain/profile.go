package domain

import (
	"math"
	"strings"
	"time"
)

// JobSeekerProfile holds descriptive attributes of a job seeker.
type JobSeekerProfile struct {
	ID         string
	UserID     string
	FullName   string
	Phone      string
	Location   string
	Skills     []string
	Experience string
	Education  string
	ResumePath string
	Bio        string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EmployerProfile holds company information of an employer.
type EmployerProfile struct {
	ID             string
	UserID         string
	CompanyName    string
	CompanyWebsite string
	CompanySize    string
	Industry       string
	Location       string
	Phone          string
	Description    string
	LogoPath       string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Completion returns the percentage of filled completion fields.
func (p *JobSeekerProfile) Completion() int {
	if p == nil {
		return 0
	}
	filled := []bool{
		notBlank(p.FullName),
		notBlank(p.Phone),
		notBlank(p.Location),
		len(p.Skills) > 0,
		notBlank(p.Experience),
		notBlank(p.Education),
		notBlank(p.ResumePath),
		notBlank(p.Bio),
	}
	return percentage(filled)
}

// Completion returns the percentage of filled completion fields.
func (p *EmployerProfile) Completion() int {
	if p == nil {
		return 0
	}
	filled := []bool{
		notBlank(p.CompanyName),
		notBlank(p.CompanyWebsite),
		notBlank(p.CompanySize),
		notBlank(p.Industry),
		notBlank(p.Location),
		notBlank(p.Phone),
		notBlank(p.Description),
	}
	return percentage(filled)
}

// DefaultDisplayName derives a name from the local part of an e-mail address.
func DefaultDisplayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

func notBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

func percentage(filled []bool) int {
	if len(filled) == 0 {
		return 0
	}
	count := 0
	for _, ok := range filled {
		if ok {
			count++
		}
	}
	return int(math.Round(float64(count) / float64(len(filled)) * 100))
}
