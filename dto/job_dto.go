package dto

type CreateJobDTO struct {
	Title        string   `json:"title" binding:"required,min=3"`
	Description  string   `json:"description" binding:"required,min=10"`
	Requirements []string `json:"requirements"`
	Location     string   `json:"location" binding:"required"`
	Type         string   `json:"type" binding:"required"`
	Category     string   `json:"category"`
	Experience   string   `json:"experience"`
	IsRemote     bool     `json:"isRemote"`
	SalaryMin    float64  `json:"salaryMin" binding:"omitempty,gte=0"`
	SalaryMax    float64  `json:"salaryMax" binding:"omitempty,gte=0"`
	Status       string   `json:"status"` // ACTIVE unless DRAFT/INACTIVE requested
}

// UpdateJobDTO — all fields are optional pointers
type UpdateJobDTO struct {
	Title        *string   `json:"title,omitempty"`
	Description  *string   `json:"description,omitempty"`
	Requirements *[]string `json:"requirements,omitempty"`
	Location     *string   `json:"location,omitempty"`
	Type         *string   `json:"type,omitempty"`
	Category     *string   `json:"category,omitempty"`
	Experience   *string   `json:"experience,omitempty"`
	IsRemote     *bool     `json:"isRemote,omitempty"`
	SalaryMin    *float64  `json:"salaryMin,omitempty"`
	SalaryMax    *float64  `json:"salaryMax,omitempty"`
	Status       *string   `json:"status,omitempty"`
}
