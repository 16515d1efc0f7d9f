package model

// Account is one entry in the account directory. The email is the directory
// key and is compared case-insensitively; PasswordHash never leaves the
// directory blob.
type Account struct {
	Email            string      `json:"email"`
	PasswordHash     string      `json:"passwordHash"`
	FullName         string      `json:"fullName"`
	Interests        []string    `json:"interests"`
	AccountType      AccountType `json:"accountType"`
	OrganizationName string      `json:"organizationName,omitempty"`
	ProfileImage     string      `json:"profileImage,omitempty"`
	Bio              string      `json:"bio,omitempty"`
}

type CreateAccountParams struct {
	Email            string
	Password         string
	FullName         string
	Interests        []string
	AccountType      AccountType
	OrganizationName string
}

// UpdateAccountParams carries a partial profile update. Email and password are
// deliberately absent: the directory preserves both no matter what a caller
// asks for.
type UpdateAccountParams struct {
	FullName         *string   `json:"fullName,omitempty"`
	Interests        *[]string `json:"interests,omitempty"`
	OrganizationName *string   `json:"organizationName,omitempty"`
	ProfileImage     *string   `json:"profileImage,omitempty"`
	Bio              *string   `json:"bio,omitempty"`
}

// User projects an Account into the session view. It never carries the
// password hash. Postings is the session-local list of volunteer-authored
// postings, unrelated to organization postings.
func (a *Account) User() *User {
	return &User{
		Email:            a.Email,
		FullName:         a.FullName,
		Interests:        a.Interests,
		AccountType:      a.AccountType,
		OrganizationName: a.OrganizationName,
		ProfileImage:     a.ProfileImage,
		Bio:              a.Bio,
	}
}
