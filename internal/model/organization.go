package model

import "time"

type Organization struct {
	ID          string                `json:"id"`
	Name        string                `json:"name"`
	Logo        string                `json:"logo,omitempty"`
	Description string                `json:"description"`
	OwnerID     string                `json:"ownerId"`
	CreatedDate time.Time             `json:"createdDate"`
	Postings    []OrganizationPosting `json:"postings"`
}

// OrganizationPosting is owned by its parent organization for its whole
// lifecycle; it is created, updated and deleted only through
// organization-scoped operations.
type OrganizationPosting struct {
	ID             string      `json:"id"`
	OrganizationID string      `json:"organizationId"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	Location       string      `json:"location"`
	Type           PostingType `json:"type"`
	Category       string      `json:"category"`
	Duration       string      `json:"duration"`
	Dates          string      `json:"dates,omitempty"`
	StartTime      string      `json:"startTime,omitempty"`
	Website        string      `json:"website,omitempty"`
	Images         []string    `json:"images,omitempty"`
	OrganizerName  string      `json:"organizerName"`
	CompanyName    string      `json:"companyName"`
	PostedDate     time.Time   `json:"postedDate"`
}

type CreateOrganizationParams struct {
	Name        string `json:"name"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description"`
	OwnerID     string `json:"ownerId"`
}

type UpdateOrganizationParams struct {
	Name        *string `json:"name,omitempty"`
	Logo        *string `json:"logo,omitempty"`
	Description *string `json:"description,omitempty"`
}

type CreatePostingParams struct {
	Title         string      `json:"title"`
	Description   string      `json:"description"`
	Location      string      `json:"location"`
	Type          PostingType `json:"type"`
	Category      string      `json:"category"`
	Duration      string      `json:"duration"`
	Dates         string      `json:"dates,omitempty"`
	StartTime     string      `json:"startTime,omitempty"`
	Website       string      `json:"website,omitempty"`
	Images        []string    `json:"images,omitempty"`
	OrganizerName string      `json:"organizerName"`
	CompanyName   string      `json:"companyName"`
}

type UpdatePostingParams struct {
	Title         *string      `json:"title,omitempty"`
	Description   *string      `json:"description,omitempty"`
	Location      *string      `json:"location,omitempty"`
	Type          *PostingType `json:"type,omitempty"`
	Category      *string      `json:"category,omitempty"`
	Duration      *string      `json:"duration,omitempty"`
	Dates         *string      `json:"dates,omitempty"`
	StartTime     *string      `json:"startTime,omitempty"`
	Website       *string      `json:"website,omitempty"`
	Images        *[]string    `json:"images,omitempty"`
	OrganizerName *string      `json:"organizerName,omitempty"`
	CompanyName   *string      `json:"companyName,omitempty"`
}

// PostingWithOrganization annotates a posting with a snapshot of its parent,
// as returned by the flattened all-postings view.
type PostingWithOrganization struct {
	OrganizationPosting
	Organization Organization `json:"organization"`
}
