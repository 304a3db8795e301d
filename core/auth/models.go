package auth

import (
	"github.com/elimulabs/elimu/core"
)

// LoginForm carries the login screen's inputs.
type LoginForm struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Remember bool   `json:"rememberMe"`
}

func (f *LoginForm) Validate() error {
	f.Email = core.CleanEmail(f.Email)
	return core.TranslateError(core.Validate.Struct(f))
}

// SignupForm carries the registration screen's inputs. The password policy
// and confirmation match are enforced client-side before any request goes
// out.
type SignupForm struct {
	FullName        string `json:"full_name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,password"`
	PasswordConfirm string `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,oneof=learner trainer"`
	AgreeToTerms    bool   `json:"agree_to_terms" validate:"required,eq=true"`
}

func (f *SignupForm) Validate() error {
	f.FullName = core.CleanString(f.FullName)
	f.Email = core.CleanEmail(f.Email)
	return core.TranslateError(core.Validate.Struct(f))
}

// registerPayload is the JSON body POSTed to /auth/register.
type registerPayload struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Profile is the /auth/me response.
type Profile struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ChangePasswordForm carries the settings screen's password change inputs.
type ChangePasswordForm struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,password"`
}

func (f *ChangePasswordForm) Validate() error {
	return core.TranslateError(core.Validate.Struct(f))
}
