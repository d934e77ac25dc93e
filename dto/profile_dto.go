package dto

// UpdateProfileDTO — all fields are optional pointers
type UpdateProfileDTO struct {
	FullName *string   `json:"fullName,omitempty"`
	Phone    *string   `json:"phone,omitempty"`
	Location *string   `json:"location,omitempty"`
	Skills   *[]string `json:"skills,omitempty"`
}

// UpdateCompanyDTO — all fields are optional pointers
type UpdateCompanyDTO struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Website     *string `json:"website,omitempty"`
}

type UpdateUserStatusDTO struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
