package firebaseauth

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Success records keep the provider's JSON names.
type (
	SignUpResponse struct {
		IDToken      string `json:"idToken"`
		Email        string `json:"email"`
		RefreshToken string `json:"refreshToken"`
		ExpiresIn    string `json:"expiresIn"`
		LocalID      string `json:"localId"`
	}

	SignInResponse struct {
		DisplayName  string `json:"displayName"`
		Email        string `json:"email"`
		ExpiresIn    string `json:"expiresIn"`
		IDToken      string `json:"idToken"`
		Kind         string `json:"kind"`
		LocalID      string `json:"localId"`
		RefreshToken string `json:"refreshToken"`
		Registered   bool   `json:"registered"`
	}

	SendPasswordResetEmailResponse struct {
		Kind  string `json:"kind,omitempty"`
		Email string `json:"email"`
	}

	VerifyPasswordResetCodeResponse struct {
		Kind        string `json:"kind,omitempty"`
		Email       string `json:"email"`
		RequestType string `json:"requestType,omitempty"`
	}

	ConfirmPasswordResetResponse struct {
		Kind        string `json:"kind,omitempty"`
		Email       string `json:"email"`
		RequestType string `json:"requestType,omitempty"`
	}
)

// TTL is the lifetime of the ID token in ExpiresIn.
func (r SignUpResponse) TTL() (time.Duration, error) {
	return parseExpiresIn(r.ExpiresIn)
}

// TTL is the lifetime of the ID token in ExpiresIn.
func (r SignInResponse) TTL() (time.Duration, error) {
	return parseExpiresIn(r.ExpiresIn)
}

func parseExpiresIn(s string) (time.Duration, error) {
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "expiresIn %q", s)
	}
	return time.Duration(sec) * time.Second, nil
}

func decodeSignUp(raw map[string]json.RawMessage) (SignUpResponse, error) {
	d := decoder{raw: raw}
	resp := SignUpResponse{
		IDToken:      d.str("idToken"),
		Email:        d.str("email"),
		RefreshToken: d.str("refreshToken"),
		ExpiresIn:    d.str("expiresIn"),
		LocalID:      d.str("localId"),
	}
	if d.err != nil {
		return SignUpResponse{}, d.err
	}
	return resp, nil
}

func decodeSignIn(raw map[string]json.RawMessage) (SignInResponse, error) {
	d := decoder{raw: raw}
	resp := SignInResponse{
		DisplayName:  d.str("displayName"),
		Email:        d.str("email"),
		ExpiresIn:    d.str("expiresIn"),
		IDToken:      d.str("idToken"),
		Kind:         d.str("kind"),
		LocalID:      d.str("localId"),
		RefreshToken: d.str("refreshToken"),
		Registered:   d.boolean("registered"),
	}
	if d.err != nil {
		return SignInResponse{}, d.err
	}
	return resp, nil
}

func decodeSendPasswordResetEmail(raw map[string]json.RawMessage) (SendPasswordResetEmailResponse, error) {
	d := decoder{raw: raw}
	resp := SendPasswordResetEmailResponse{
		Kind:  d.optStr("kind"),
		Email: d.str("email"),
	}
	if d.err != nil {
		return SendPasswordResetEmailResponse{}, d.err
	}
	return resp, nil
}

func decodeVerifyPasswordResetCode(raw map[string]json.RawMessage) (VerifyPasswordResetCodeResponse, error) {
	d := decoder{raw: raw}
	resp := VerifyPasswordResetCodeResponse{
		Kind:        d.optStr("kind"),
		Email:       d.str("email"),
		RequestType: d.optStr("requestType"),
	}
	if d.err != nil {
		return VerifyPasswordResetCodeResponse{}, d.err
	}
	return resp, nil
}

func decodeConfirmPasswordReset(raw map[string]json.RawMessage) (ConfirmPasswordResetResponse, error) {
	d := decoder{raw: raw}
	resp := ConfirmPasswordResetResponse{
		Kind:        d.optStr("kind"),
		Email:       d.str("email"),
		RequestType: d.optStr("requestType"),
	}
	if d.err != nil {
		return ConfirmPasswordResetResponse{}, d.err
	}
	return resp, nil
}
