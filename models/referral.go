package models

import "time"

// Referral partner types
const (
	PartnerInstitution = "institution"
	PartnerIndividual  = "individual"
)

// Referral represents a registered referral partner. Institutions register
// through their president; individuals register directly. Passwords are
// validated at intake and never stored.
type Referral struct {
	ID              string    `json:"id"`
	PartnerType     string    `json:"partner_type"`
	Name            string    `json:"name"`
	ContactName     string    `json:"contact_name,omitempty"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	NIN             string    `json:"nin"`
	StateOfResident string    `json:"state_of_resident"`
	StateOfOrigin   string    `json:"state_of_origin"`
	BankName        string    `json:"bank_name"`
	AccountNumber   string    `json:"account_number"`
	AccountName     string    `json:"account_name"`
	CreatedAt       time.Time `json:"created_at"`
}
