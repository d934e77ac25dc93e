package dto

type ApplyDTO struct {
	JobID       string `json:"jobId" binding:"required"`
	CoverLetter string `json:"coverLetter" binding:"omitempty,max=8000"`
}

type UpdateApplicationStatusDTO struct {
	Status string `json:"status" binding:"required"`
}
