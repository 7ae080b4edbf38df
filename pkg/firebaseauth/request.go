package firebaseauth

type (
	SignUpRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	SignInRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	SendPasswordResetEmailRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	VerifyPasswordResetCodeRequest struct {
		OOBCode string `json:"oobCode" validate:"required"`
	}

	ConfirmPasswordResetRequest struct {
		OOBCode     string `json:"oobCode" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required"`
	}
)

// Wire payloads. The tags are the provider's key names; fixed fields are set
// by the client, never by the caller.
type (
	signUpPayload struct {
		Email             string `json:"email"`
		Password          string `json:"password"`
		ReturnSecureToken bool   `json:"returnSecureToken"`
	}

	signInPayload struct {
		Email             string `json:"email"`
		Password          string `json:"password"`
		ReturnSecureToken bool   `json:"returnSecureToken"`
	}

	sendOobCodePayload struct {
		Email       string `json:"email"`
		RequestType string `json:"requestType"`
	}

	verifyResetCodePayload struct {
		OOBCode string `json:"oobCode"`
	}

	confirmResetPayload struct {
		OOBCode     string `json:"oobCode"`
		NewPassword string `json:"newPassword"`
	}
)
