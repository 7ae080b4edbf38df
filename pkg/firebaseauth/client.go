package firebaseauth

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const DefaultBaseURL = "https://identitytoolkit.googleapis.com/v1/"

const (
	signUpPath        = "accounts:signUp"
	signInPath        = "accounts:signInWithPassword"
	sendOobCodePath   = "accounts:sendOobCode"
	resetPasswordPath = "accounts:resetPassword"

	requestTypePasswordReset = "PASSWORD_RESET"
)

// Client calls the Identity Toolkit REST API with a fixed API key.
// It keeps no state between calls and is safe for concurrent use.
type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *zap.Logger
}

type Option func(c *Client)

// WithBaseURL points the client at another host, e.g. the auth emulator
// at http://localhost:9099/identitytoolkit.googleapis.com/v1.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		c.baseURL = baseURL
	}
}

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
		log:     zap.NewNop(),
	}
	for _, op := range opts {
		op(c)
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if c.client == nil {
		c.client = &http.Client{}
	}
	c.log = c.log.Named("firebaseauth")
	return c
}

// SignUp creates a new email and password user.
// https://firebase.google.com/docs/reference/rest/auth/#section-create-email-password
func (c *Client) SignUp(ctx context.Context, req SignUpRequest) (SignUpResponse, error) {
	raw, err := c.call(ctx, signUpPath, signUpPayload{
		Email:             req.Email,
		Password:          req.Password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return SignUpResponse{}, err
	}
	return decodeSignUp(raw)
}

// SignIn signs a user in with an email and password.
// https://firebase.google.com/docs/reference/rest/auth/#section-sign-in-email-password
func (c *Client) SignIn(ctx context.Context, req SignInRequest) (SignInResponse, error) {
	raw, err := c.call(ctx, signInPath, signInPayload{
		Email:             req.Email,
		Password:          req.Password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return SignInResponse{}, err
	}
	return decodeSignIn(raw)
}

// SendPasswordResetEmail asks the provider to email a password reset code.
// https://firebase.google.com/docs/reference/rest/auth/#section-send-password-reset-email
func (c *Client) SendPasswordResetEmail(ctx context.Context, req SendPasswordResetEmailRequest) (SendPasswordResetEmailResponse, error) {
	raw, err := c.call(ctx, sendOobCodePath, sendOobCodePayload{
		Email:       req.Email,
		RequestType: requestTypePasswordReset,
	})
	if err != nil {
		return SendPasswordResetEmailResponse{}, err
	}
	return decodeSendPasswordResetEmail(raw)
}

// VerifyPasswordResetCode checks an out-of-band code without changing the password.
// https://firebase.google.com/docs/reference/rest/auth/#section-verify-password-reset-code
func (c *Client) VerifyPasswordResetCode(ctx context.Context, req VerifyPasswordResetCodeRequest) (VerifyPasswordResetCodeResponse, error) {
	raw, err := c.call(ctx, resetPasswordPath, verifyResetCodePayload{
		OOBCode: req.OOBCode,
	})
	if err != nil {
		return VerifyPasswordResetCodeResponse{}, err
	}
	return decodeVerifyPasswordResetCode(raw)
}

// ConfirmPasswordReset applies a new password using an out-of-band code.
// https://firebase.google.com/docs/reference/rest/auth/#section-confirm-reset-password
func (c *Client) ConfirmPasswordReset(ctx context.Context, req ConfirmPasswordResetRequest) (ConfirmPasswordResetResponse, error) {
	raw, err := c.call(ctx, resetPasswordPath, confirmResetPayload{
		OOBCode:     req.OOBCode,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return ConfirmPasswordResetResponse{}, err
	}
	return decodeConfirmPasswordReset(raw)
}

// call posts the payload and returns the parsed body of a non-error response.
func (c *Client) call(ctx context.Context, path string, payload any) (map[string]json.RawMessage, error) {
	raw, err := c.postJSON(ctx, c.endpoint(path), payload)
	if err != nil {
		return nil, err
	}
	respErr, err := classifyResponse(raw)
	if err != nil {
		return nil, err
	}
	if respErr != nil {
		c.log.Debug("provider error",
			zap.String("op", path),
			zap.Int("code", respErr.Err.Code),
			zap.String("message", respErr.Err.Message))
		return nil, respErr
	}
	return raw, nil
}

func (c *Client) endpoint(path string) string {
	q := url.Values{}
	q.Set("key", c.apiKey)
	return c.baseURL + path + "?" + q.Encode()
}

func (c *Client) postJSON(ctx context.Context, rawURL string, body any) (map[string]json.RawMessage, error) {
	b := bytes.NewBuffer(nil)
	if err := json.NewEncoder(b).Encode(body); err != nil {
		return nil, errors.Wrap(err, "encode request")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, b)
	if err != nil {
		return nil, errors.Wrap(err, "new request")
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "post")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	c.log.Debug("response",
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)))

	var parsed map[string]json.RawMessage
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, errors.Wrapf(err, "decode response (status %d)", resp.StatusCode)
	}
	if parsed == nil {
		return nil, errors.Errorf("decode response (status %d): body is not a JSON object", resp.StatusCode)
	}
	return parsed, nil
}
