package dto

type CreateBoostDTO struct {
	JobID         string `json:"jobId" binding:"required"`
	BoostPlanID   string `json:"boostPlanId" binding:"required"`
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type BoostReasonDTO struct {
	Reason string `json:"reason" binding:"required,min=3,max=2000"`
}

type CreateBoostPlanDTO struct {
	Name         string  `json:"name" binding:"required,min=2"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	DurationDays int     `json:"durationDays" binding:"required,min=1"`
	Type         string  `json:"type" binding:"required"`
	IsActive     bool    `json:"isActive"`
}

// UpdateBoostPlanDTO — all fields are optional pointers
type UpdateBoostPlanDTO struct {
	Name         *string  `json:"name,omitempty"`
	Price        *float64 `json:"price,omitempty"`
	DurationDays *int     `json:"durationDays,omitempty"`
	Type         *string  `json:"type,omitempty"`
	IsActive     *bool    `json:"isActive,omitempty"`
}
