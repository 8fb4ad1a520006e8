package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"akademyx-backend/db"
	"akademyx-backend/http/response"
	"akademyx-backend/logger"
	"akademyx-backend/models"
	"akademyx-backend/services"
	"akademyx-backend/utils"
)

// ReferralService registers referral partners: institutions (through their
// president) and individuals.
type ReferralService struct {
	store  db.Store
	events *services.Publisher
}

func NewReferralService(store db.Store, events *services.Publisher) *ReferralService {
	return &ReferralService{store: store, events: events}
}

func (s *ReferralService) notifyRegistered(ref *models.Referral) {
	evt := map[string]interface{}{
		"event":        "referral.registered",
		"referral_id":  ref.ID,
		"partner_type": ref.PartnerType,
		"email":        ref.Email,
	}
	if err := s.events.Publish(services.TopicApplications, "referral-"+ref.ID, evt); err != nil {
		logger.Warn("Failed to publish referral.registered event: %v", err)
	}
}

type referralRequest struct {
	Type string `json:"type"`

	// Institution fields
	InstitutionName    string `json:"institutionName"`
	PresidentName      string `json:"presidentName"`
	PresidentEmail     string `json:"presidentEmail"`
	PresidentPhone     string `json:"presidentPhone"`
	InstitutionAddress string `json:"institutionAddress"`

	// Individual fields
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`

	// Common fields
	NINNumber       string `json:"ninNumber"`
	StateOfResident string `json:"stateOfResident"`
	StateOfOrigin   string `json:"stateOfOrigin"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	BankName        string `json:"bankName"`
	AccountNumber   string `json:"accountNumber"`
	AccountName     string `json:"accountName"`
}

// RegisterReferral validates a partner registration and stores it. The
// password is checked against the registration rules and then discarded.
func (s *ReferralService) RegisterReferral(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		response.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	ctx := r.Context()

	var req referralRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		logger.Error("Referral registration error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to register referral")
		return
	}

	ref, err := buildReferral(&req)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	referralID, err := s.store.CreateReferral(ctx, ref)
	if err != nil {
		logger.Error("Referral registration error: %v", err)
		response.Error(w, http.StatusInternalServerError, "Failed to register referral")
		return
	}

	logger.Info("Referral partner registered: ID=%s, Type=%s", referralID, ref.PartnerType)

	go s.notifyRegistered(ref)

	response.SendJSON(w, http.StatusCreated, map[string]interface{}{
		"success":    true,
		"referralId": referralID,
		"message":    "Referral registration submitted successfully",
	})
}

func buildReferral(req *referralRequest) (*models.Referral, error) {
	ref := &models.Referral{
		PartnerType:     req.Type,
		NIN:             strings.TrimSpace(req.NINNumber),
		StateOfResident: strings.TrimSpace(req.StateOfResident),
		StateOfOrigin:   strings.TrimSpace(req.StateOfOrigin),
		BankName:        strings.TrimSpace(req.BankName),
		AccountNumber:   strings.TrimSpace(req.AccountNumber),
		AccountName:     strings.TrimSpace(req.AccountName),
	}

	switch req.Type {
	case models.PartnerInstitution:
		ref.Name = strings.TrimSpace(req.InstitutionName)
		ref.ContactName = strings.TrimSpace(req.PresidentName)
		ref.Email = strings.TrimSpace(req.PresidentEmail)
		ref.Phone = strings.TrimSpace(req.PresidentPhone)
		ref.Address = strings.TrimSpace(req.InstitutionAddress)
		if ref.Name == "" {
			return nil, fmt.Errorf("institutionName is required")
		}
		if ref.ContactName == "" {
			return nil, fmt.Errorf("presidentName is required")
		}
	case models.PartnerIndividual:
		ref.Name = strings.TrimSpace(req.FullName)
		ref.Email = strings.TrimSpace(req.Email)
		ref.Phone = strings.TrimSpace(req.Phone)
		ref.Address = strings.TrimSpace(req.Address)
		if ref.Name == "" {
			return nil, fmt.Errorf("fullName is required")
		}
	default:
		return nil, fmt.Errorf("type must be %q or %q", models.PartnerInstitution, models.PartnerIndividual)
	}

	if err := utils.ValidateEmail(ref.Email); err != nil {
		return nil, err
	}
	if err := utils.ValidatePhone(ref.Phone); err != nil {
		return nil, err
	}
	if err := utils.ValidateNIN(ref.NIN); err != nil {
		return nil, err
	}
	if ref.StateOfResident == "" {
		return nil, fmt.Errorf("stateOfResident is required")
	}
	if ref.StateOfOrigin == "" {
		return nil, fmt.Errorf("stateOfOrigin is required")
	}
	if err := utils.ValidatePassword(req.Password, req.ConfirmPassword); err != nil {
		return nil, err
	}
	if ref.BankName == "" || ref.AccountNumber == "" || ref.AccountName == "" {
		return nil, fmt.Errorf("bank payout details are required")
	}

	return ref, nil
}
