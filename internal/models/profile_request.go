package models

// ProfileRequest represents the request body for creating or updating a
// profile. Status and skills are mandatory; every other field is optional
// and an absent or empty value leaves the stored field untouched.
type ProfileRequest struct {
	Status         string  `json:"status" binding:"required"`
	Skills         string  `json:"skills" binding:"required"` // comma-separated
	Company        *string `json:"company,omitempty"`
	Website        *string `json:"website,omitempty"`
	Location       *string `json:"location,omitempty"`
	Bio            *string `json:"bio,omitempty"`
	GithubUsername *string `json:"githubusername,omitempty"`
	Youtube        *string `json:"youtube,omitempty"`
	Twitter        *string `json:"twitter,omitempty"`
	Facebook       *string `json:"facebook,omitempty"`
	Linkedin       *string `json:"linkedin,omitempty"`
	Instagram      *string `json:"instagram,omitempty"`
}

// ExperienceRequest represents the request body for adding an experience
// entry. Dates use the YYYY-MM-DD format.
type ExperienceRequest struct {
	Title       string  `json:"title" binding:"required"`
	Company     string  `json:"company" binding:"required"`
	From        string  `json:"from" binding:"required"`
	Location    *string `json:"location,omitempty"`
	To          *string `json:"to,omitempty"`
	Current     bool    `json:"current"`
	Description *string `json:"description,omitempty"`
}

// EducationRequest represents the request body for adding an education entry
type EducationRequest struct {
	School       string  `json:"school" binding:"required"`
	Degree       string  `json:"degree" binding:"required"`
	FieldOfStudy string  `json:"fieldofstudy" binding:"required"`
	From         string  `json:"from" binding:"required"`
	Location     *string `json:"location,omitempty"`
	To           *string `json:"to,omitempty"`
	Current      bool    `json:"current"`
	Description  *string `json:"description,omitempty"`
}
