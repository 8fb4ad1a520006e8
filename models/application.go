package models

import "time"

// Application represents a candidate's enrollment application for the
// masterclass programme.
type Application struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Age        int       `json:"age"`
	Occupation string    `json:"occupation"`
	Location   string    `json:"location"`
	Motivation string    `json:"motivation"`
	Experience string    `json:"experience"`
	Goals      string    `json:"goals"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ApplicationResponse is the structured response for API responses
type ApplicationResponse struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Age        int    `json:"age"`
	Occupation string `json:"occupation"`
	Location   string `json:"location"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

// ToResponse converts Application to ApplicationResponse with formatted timestamps
func (a *Application) ToResponse() ApplicationResponse {
	return ApplicationResponse{
		ID:         a.ID,
		FirstName:  a.FirstName,
		LastName:   a.LastName,
		Email:      a.Email,
		Phone:      a.Phone,
		Age:        a.Age,
		Occupation: a.Occupation,
		Location:   a.Location,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
}
