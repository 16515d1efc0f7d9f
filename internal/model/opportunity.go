package model

import "time"

// OrganizationRef is the denormalized organization sub-object carried by an
// opportunity view-model.
type OrganizationRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	Verified bool   `json:"verified"`
}

// Opportunity is the normalized listing shape merged at read time from
// organization postings and the built-in sample list. It is never persisted.
type Opportunity struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Organization  OrganizationRef `json:"organization"`
	Location      string          `json:"location"`
	Type          string          `json:"type"`
	Duration      string          `json:"duration"`
	Category      string          `json:"category"`
	Description   string          `json:"description"`
	Requirements  []string        `json:"requirements"`
	PostedDate    time.Time       `json:"postedDate"`
	Image         string          `json:"image,omitempty"`
	Applicants    int             `json:"applicants"`
	Dates         string          `json:"dates,omitempty"`
	StartTime     string          `json:"startTime,omitempty"`
	Website       string          `json:"website,omitempty"`
	OrganizerName string          `json:"organizerName,omitempty"`
	CompanyName   string          `json:"companyName,omitempty"`

	// OwnerID is carried through from the parent organization so the feed
	// can mark the session user's own postings. Empty for sample entries.
	OwnerID string `json:"-"`
}

// Categories lists every posting category, headed by the "All" pseudo-category
// that bypasses filtering.
var Categories = []string{
	"All",
	"Healthcare",
	"Education",
	"Technology",
	"Environment",
	"Community Service",
	"Animal Welfare",
	"Arts & Culture",
	"Youth Programs",
	"Senior Care",
	"Disaster Relief",
	"Sports & Fitness",
}
