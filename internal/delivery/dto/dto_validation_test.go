package dto

import (
	"testing"

	"medfi-backend/pkg/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPersonalStepRequestValidation(t *testing.T) {
	v := validator.NewValidator()

	valid := PersonalStepRequest{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		Phone:        "+123456",
		Country:      "Canada",
		ProfileImage: "https://cdn.example/p.jpg",
	}
	assert.NoError(t, v.Validate(&valid))

	missingPhone := valid
	missingPhone.Phone = ""
	err := v.Validate(&missingPhone)
	require.Error(t, err)
	assert.Contains(t, v.FormatValidationErrors(err), "Phone")

	badEmail := valid
	badEmail.Email = "not-an-email"
	err = v.Validate(&badEmail)
	require.Error(t, err)
	assert.Contains(t, v.FormatValidationErrors(err), "Email")
}

func TestVerificationStepRequestValidation(t *testing.T) {
	v := validator.NewValidator()

	assert.NoError(t, v.Validate(&VerificationStepRequest{
		IDDocument:  "https://cdn.example/id.jpg",
		SelfieImage: "data:image/jpeg;base64,abcd",
	}))

	err := v.Validate(&VerificationStepRequest{IDDocument: "https://cdn.example/id.jpg"})
	require.Error(t, err)
	assert.Contains(t, v.FormatValidationErrors(err), "SelfieImage")
}

func TestDecisionRequestValidation(t *testing.T) {
	v := validator.NewValidator()

	assert.NoError(t, v.Validate(&DecisionRequest{Decision: "approved"}))
	assert.NoError(t, v.Validate(&DecisionRequest{Decision: "rejected"}))

	err := v.Validate(&DecisionRequest{Decision: "pending"})
	require.Error(t, err)
	assert.Contains(t, v.FormatValidationErrors(err)["Decision"], "one of")

	assert.Error(t, v.Validate(&DecisionRequest{}))
}

func TestLoginRequestValidation(t *testing.T) {
	v := validator.NewValidator()

	assert.NoError(t, v.Validate(&LoginRequest{Email: "admin@example.com", Password: "secret1"}))
	assert.Error(t, v.Validate(&LoginRequest{Email: "admin@example.com", Password: "short"}))
	assert.Error(t, v.Validate(&LoginRequest{Email: "", Password: "secret1"}))
}
