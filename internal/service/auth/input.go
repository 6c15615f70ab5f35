package auth

import "github.com/openmargin/annotations-backend/internal/domain"

// IssueInput holds parameters for the token exchange operation.
type IssueInput struct {
	ClientID  string
	Assertion string
}

// Validate validates the issue input.
func (i IssueInput) Validate() error {
	var errs []domain.FieldError

	if i.ClientID == "" {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "required"})
	} else if len(i.ClientID) > 128 {
		errs = append(errs, domain.FieldError{Field: "client_id", Message: "too long"})
	}

	if i.Assertion == "" {
		errs = append(errs, domain.FieldError{Field: "assertion", Message: "required"})
	} else if len(i.Assertion) > 4096 {
		errs = append(errs, domain.FieldError{Field: "assertion", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// RefreshInput holds parameters for the token refresh operation.
type RefreshInput struct {
	RefreshToken string
}

// Validate validates the refresh input.
func (i RefreshInput) Validate() error {
	var errs []domain.FieldError

	if i.RefreshToken == "" {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "required"})
	} else if len(i.RefreshToken) > 512 {
		errs = append(errs, domain.FieldError{Field: "refresh_token", Message: "too long"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
