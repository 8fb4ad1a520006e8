package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"akademyx-backend/db"
	"akademyx-backend/http/response"
	"akademyx-backend/logger"
	"akademyx-backend/models"
	"akademyx-backend/services"
	"akademyx-backend/utils"
)

// ApplicationService handles enrollment application intake and the admin
// listing/export surface.
type ApplicationService struct {
	store  db.Store
	events *services.Publisher
	mail   *services.EmailService
}

func NewApplicationService(store db.Store, events *services.Publisher, mail *services.EmailService) *ApplicationService {
	return &ApplicationService{store: store, events: events, mail: mail}
}

type applicationRequest struct {
	FirstName  string       `json:"firstName"`
	LastName   string       `json:"lastName"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	Age        numericField `json:"age"`
	Occupation string       `json:"occupation"`
	Location   string       `json:"location"`
	Motivation string       `json:"motivation"`
	Experience string       `json:"experience"`
	Goals      string       `json:"goals"`
}

// Handle multiplexes /api/applications by method.
func (s *ApplicationService) Handle(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.SubmitApplication(w, r)
	case http.MethodGet:
		s.GetApplications(w, r)
	default:
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// SubmitApplication accepts a candidate's application, creates the record in
// "submitted" status and queues the confirmation email.
func (s *ApplicationService) SubmitApplication(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req applicationRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		logger.Error("Application submission error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to submit application")
		return
	}

	// Required-field check, in schema order. A missing field names itself in
	// the 400 response.
	fields := []struct{ name, value string }{
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"email", req.Email},
		{"phone", req.Phone},
		{"age", req.Age.String()},
		{"occupation", req.Occupation},
		{"location", req.Location},
		{"motivation", req.Motivation},
		{"experience", req.Experience},
		{"goals", req.Goals},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			response.Error(w, http.StatusBadRequest, fmt.Sprintf("%s is required", f.name))
			return
		}
	}

	age, err := req.Age.Int()
	if err != nil {
		response.Error(w, http.StatusBadRequest, "age must be a number")
		return
	}
	// Zero is treated as missing, matching the intake form's falsy check.
	if age == 0 {
		response.Error(w, http.StatusBadRequest, "age is required")
		return
	}

	app := &models.Application{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Age:        age,
		Occupation: req.Occupation,
		Location:   req.Location,
		Motivation: req.Motivation,
		Experience: req.Experience,
		Goals:      req.Goals,
		Status:     utils.ApplicationSubmitted,
	}

	applicationID, err := s.store.CreateApplication(ctx, app)
	if err != nil {
		logger.Error("Application submission error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to submit application")
		return
	}

	logger.Info("Application created: ID=%s, Email=%s", applicationID, app.Email)

	// Publish event and queue the confirmation email (best-effort)
	go func() {
		evt := map[string]interface{}{
			"event":          "application.submitted",
			"application_id": applicationID,
			"email":          app.Email,
			"status":         app.Status,
			"ts":             time.Now().UTC().Format(time.RFC3339),
		}
		if err := s.events.Publish(services.TopicApplications, "application-"+applicationID, evt); err != nil {
			logger.Warn("Failed to publish application.submitted event: %v", err)
		}
		if err := s.mail.QueueApplicationConfirmation(app); err != nil {
			logger.Warn("Failed to queue application confirmation email: %v", err)
		}
	}()

	response.SendJSON(w, http.StatusCreated, map[string]interface{}{
		"success":       true,
		"applicationId": applicationID,
		"message":       "Application submitted successfully",
	})
}

// GetApplications lists all applications for the admissions team.
func (s *ApplicationService) GetApplications(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	apps, err := s.store.ListApplications(ctx)
	if err != nil {
		logger.Error("Error fetching applications: %v", err)
		response.Error(w, http.StatusInternalServerError, "Error fetching applications")
		return
	}

	data := make([]models.ApplicationResponse, len(apps))
	for i := range apps {
		data[i] = apps[i].ToResponse()
	}

	response.SendJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"count":  len(data),
		"data":   data,
	})
}

// ExportApplications streams the applications list as an Excel workbook.
func (s *ApplicationService) ExportApplications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()

	apps, err := s.store.ListApplications(ctx)
	if err != nil {
		logger.Error("Error fetching applications for export: %v", err)
		response.Error(w, http.StatusInternalServerError, "Error exporting applications")
		return
	}

	f, err := services.BuildApplicationsWorkbook(apps)
	if err != nil {
		logger.Error("Error building applications workbook: %v", err)
		response.Error(w, http.StatusInternalServerError, "Error exporting applications")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="applications.xlsx"`)
	if err := f.Write(w); err != nil {
		logger.Error("Error writing applications workbook: %v", err)
	}
}
