package model

import "time"

// User is the single active session's profile, persisted separately from the
// account directory.
type User struct {
	Email            string             `json:"email"`
	FullName         string             `json:"fullName"`
	Interests        []string           `json:"interests"`
	AccountType      AccountType        `json:"accountType"`
	OrganizationName string             `json:"organizationName,omitempty"`
	ProfileImage     string             `json:"profileImage,omitempty"`
	Bio              string             `json:"bio,omitempty"`
	Postings         []VolunteerPosting `json:"postings,omitempty"`
}

// VolunteerPosting is a posting created directly by a volunteer account. It
// lives on the session user and has no organization linkage.
type VolunteerPosting struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Location     string               `json:"location"`
	Type         VolunteerPostingType `json:"type"`
	Category     string               `json:"category"`
	Requirements []string             `json:"requirements"`
	Duration     string               `json:"duration"`
	PostedDate   time.Time            `json:"postedDate"`
}

type CreateVolunteerPostingParams struct {
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Location     string               `json:"location"`
	Type         VolunteerPostingType `json:"type"`
	Category     string               `json:"category"`
	Requirements []string             `json:"requirements"`
	Duration     string               `json:"duration"`
}
