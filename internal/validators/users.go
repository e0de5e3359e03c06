package validators

import (
	"net/mail"

	"github.com/MKhiriev/go-event-organizer/models"
)

func (v *RequestValidator) validateSignUp(req models.SignUpRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldName, FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if blank(req.Username) {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if blank(req.Password) {
				return ErrEmptyPassword
			}
		case FieldName:
			if blank(req.Name) {
				return ErrEmptyName
			}
		case FieldEmail:
			if !validEmail(req.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateSignIn(req models.SignInRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if blank(req.Username) {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if req.Password == "" {
				return ErrEmptyPassword
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

func (v *RequestValidator) validateUpdateCredentials(req models.UpdateCredentialsRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldOldPassword, FieldNewPassword, FieldName, FieldEmail}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if blank(req.Username) {
				return ErrEmptyUsername
			}
		case FieldOldPassword:
			if req.OldPassword == "" {
				return ErrEmptyPassword
			}
		case FieldNewPassword:
			if blank(req.NewPassword) {
				return ErrEmptyPassword
			}
		case FieldName:
			if blank(req.Name) {
				return ErrEmptyName
			}
		case FieldEmail:
			if !validEmail(req.Email) {
				return ErrInvalidEmail
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateUserRequest checks an administrator's user body. Updates leave
// FieldPassword out so that an empty password keeps the stored one.
func (v *RequestValidator) validateUserRequest(req models.UserRequest, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldUsername, FieldPassword, FieldName, FieldEmail, FieldUserType}
	}

	for _, f := range fields {
		switch f {
		case FieldUsername:
			if blank(req.Username) {
				return ErrEmptyUsername
			}
		case FieldPassword:
			if blank(req.Password) {
				return ErrEmptyPassword
			}
		case FieldName:
			if blank(req.Name) {
				return ErrEmptyName
			}
		case FieldEmail:
			if !validEmail(req.Email) {
				return ErrInvalidEmail
			}
		case FieldUserType:
			if _, ok := models.ParseRole(req.UserType); !ok {
				return ErrInvalidRole
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validEmail accepts a bare address such as "user@example.com".
func validEmail(email string) bool {
	if blank(email) {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
