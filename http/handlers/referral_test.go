package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestReferralService(store *fakeStore) *ReferralService {
	return NewReferralService(store, testEvents())
}

func institutionPayload() map[string]interface{} {
	return map[string]interface{}{
		"type":               "institution",
		"institutionName":    "Unity College",
		"presidentName":      "Chidi Okafor",
		"presidentEmail":     "chidi.okafor@example.com",
		"presidentPhone":     "+2348098765432",
		"institutionAddress": "12 Broad Street, Lagos",
		"ninNumber":          "12345678901",
		"stateOfResident":    "Lagos",
		"stateOfOrigin":      "Anambra",
		"password":           "s3cret-pass",
		"confirmPassword":    "s3cret-pass",
		"bankName":           "First Bank",
		"accountNumber":      "0123456789",
		"accountName":        "Unity College",
	}
}

func individualPayload() map[string]interface{} {
	return map[string]interface{}{
		"type":            "individual",
		"fullName":        "Ngozi Eze",
		"email":           "ngozi.eze@example.com",
		"phone":           "+2348011112222",
		"address":         "4 Ring Road, Ibadan",
		"ninNumber":       "98765432109",
		"stateOfResident": "Oyo",
		"stateOfOrigin":   "Enugu",
		"password":        "longenough",
		"confirmPassword": "longenough",
		"bankName":        "GTBank",
		"accountNumber":   "9876543210",
		"accountName":     "Ngozi Eze",
	}
}

func TestRegisterInstitutionReferral(t *testing.T) {
	store := newFakeStore()
	svc := newTestReferralService(store)

	rec := postJSON(t, svc.RegisterReferral, "/api/referrals", institutionPayload())

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])

	referralID := body["referralId"].(string)
	ref := store.referrals[referralID]
	require.NotNil(t, ref)
	assert.Equal(t, "institution", ref.PartnerType)
	assert.Equal(t, "Unity College", ref.Name)
	assert.Equal(t, "Chidi Okafor", ref.ContactName)
}

func TestRegisterIndividualReferral(t *testing.T) {
	store := newFakeStore()
	svc := newTestReferralService(store)

	rec := postJSON(t, svc.RegisterReferral, "/api/referrals", individualPayload())

	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)

	ref := store.referrals[body["referralId"].(string)]
	require.NotNil(t, ref)
	assert.Equal(t, "individual", ref.PartnerType)
	assert.Equal(t, "Ngozi Eze", ref.Name)
}

func TestRegisterReferralValidation(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(map[string]interface{})
		wantErr string
	}{
		{
			name:    "unknown type",
			mutate:  func(p map[string]interface{}) { p["type"] = "agency" },
			wantErr: `type must be "institution" or "individual"`,
		},
		{
			name:    "short NIN",
			mutate:  func(p map[string]interface{}) { p["ninNumber"] = "12345" },
			wantErr: "NIN number must be exactly 11 digits",
		},
		{
			name:    "short password",
			mutate:  func(p map[string]interface{}) { p["password"] = "short"; p["confirmPassword"] = "short" },
			wantErr: "password must be at least 8 characters long",
		},
		{
			name:    "password mismatch",
			mutate:  func(p map[string]interface{}) { p["confirmPassword"] = "different-pass" },
			wantErr: "passwords do not match",
		},
		{
			name:    "missing institution name",
			mutate:  func(p map[string]interface{}) { delete(p, "institutionName") },
			wantErr: "institutionName is required",
		},
		{
			name:    "missing bank details",
			mutate:  func(p map[string]interface{}) { delete(p, "accountNumber") },
			wantErr: "bank payout details are required",
		},
		{
			name:    "invalid email",
			mutate:  func(p map[string]interface{}) { p["presidentEmail"] = "not-an-email" },
			wantErr: "invalid email format",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := newTestReferralService(newFakeStore())

			payload := institutionPayload()
			tc.mutate(payload)

			rec := postJSON(t, svc.RegisterReferral, "/api/referrals", payload)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeBody(t, rec)
			assert.Equal(t, tc.wantErr, body["error"])
		})
	}
}

func TestRegisterReferralStoreFailure(t *testing.T) {
	store := newFakeStore()
	store.failCreateReferral = true
	svc := newTestReferralService(store)

	rec := postJSON(t, svc.RegisterReferral, "/api/referrals", individualPayload())

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Failed to register referral", body["error"])
}
