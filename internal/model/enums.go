package model

type AccountType string

const (
	AccountTypeVolunteer    AccountType = "volunteer"
	AccountTypeOrganization AccountType = "organization"
)

func (t AccountType) Valid() bool {
	return t == AccountTypeVolunteer || t == AccountTypeOrganization
}

// PostingType is the delivery mode of an organization posting.
type PostingType string

const (
	PostingTypeOnline   PostingType = "online"
	PostingTypeInPerson PostingType = "in-person"
)

func (t PostingType) Valid() bool {
	return t == PostingTypeOnline || t == PostingTypeInPerson
}

// VolunteerPostingType is the delivery mode of a volunteer-authored posting,
// which allows a wider set of values than organization postings.
type VolunteerPostingType string

const (
	VolunteerPostingRemote   VolunteerPostingType = "remote"
	VolunteerPostingInPerson VolunteerPostingType = "in-person"
	VolunteerPostingHybrid   VolunteerPostingType = "hybrid"
)

func (t VolunteerPostingType) Valid() bool {
	switch t {
	case VolunteerPostingRemote, VolunteerPostingInPerson, VolunteerPostingHybrid:
		return true
	}
	return false
}
