package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Astemirdum/firebase-auth/identity-provider/internal/handler"
	"github.com/Astemirdum/firebase-auth/pkg/circuit_breaker"
	"github.com/Astemirdum/firebase-auth/pkg/firebaseauth"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	service_mocks "github.com/Astemirdum/firebase-auth/identity-provider/internal/handler/mocks"
)

func TestHandler_SignUp(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		expectedBody string
	}
	type mockBehavior func(r *service_mocks.MockAuthService)

	var tests = []struct {
		name         string
		body         string
		mockBehavior mockBehavior
		response     response
	}{
		{
			name: "ok",
			body: `{"email":"a@b.com","password":"pw123456"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					SignUp(gomock.Any(), firebaseauth.SignUpRequest{Email: "a@b.com", Password: "pw123456"}).
					Return(firebaseauth.SignUpResponse{
						IDToken:      "t",
						Email:        "a@b.com",
						RefreshToken: "r",
						ExpiresIn:    "3600",
						LocalID:      "uid1",
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				expectedBody: `{"idToken":"t","email":"a@b.com","refreshToken":"r","expiresIn":"3600","localId":"uid1"}`,
			},
		},
		{
			name:         "err. invalid email",
			body:         `{"email":"not-an-email","password":"pw123456"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"message":"Key: 'SignUpRequest.Email' Error:Field validation for 'Email' failed on the 'email' tag"}`,
			},
		},
		{
			name: "err. provider",
			body: `{"email":"a@b.com","password":"pw123456"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					SignUp(gomock.Any(), gomock.Any()).
					Return(firebaseauth.SignUpResponse{}, &firebaseauth.ResponseError{Err: firebaseauth.ErrorMetadata{
						Code:    400,
						Message: "EMAIL_EXISTS",
						Errors:  []firebaseauth.ErrorItem{{Domain: "global", Reason: "invalid", Message: "EMAIL_EXISTS"}},
					}})
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"error":{"code":400,"message":"EMAIL_EXISTS","errors":[{"domain":"global","reason":"invalid","message":"EMAIL_EXISTS"}]}}`,
			},
		},
		{
			name: "err. weak password from provider",
			body: `{"email":"a@b.com","password":"123"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					SignUp(gomock.Any(), firebaseauth.SignUpRequest{Email: "a@b.com", Password: "123"}).
					Return(firebaseauth.SignUpResponse{}, &firebaseauth.ResponseError{Err: firebaseauth.ErrorMetadata{
						Code:    400,
						Message: "WEAK_PASSWORD : Password should be at least 6 characters",
						Errors:  []firebaseauth.ErrorItem{},
					}})
			},
			response: response{
				expectedCode: http.StatusBadRequest,
				expectedBody: `{"error":{"code":400,"message":"WEAK_PASSWORD : Password should be at least 6 characters","errors":[]}}`,
			},
		},
		{
			name: "err. malformed",
			body: `{"email":"a@b.com","password":"pw123456"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					SignUp(gomock.Any(), gomock.Any()).
					Return(firebaseauth.SignUpResponse{}, &firebaseauth.MalformedResponseError{Field: "idToken", Reason: "is missing"})
			},
			response: response{
				expectedCode: http.StatusBadGateway,
				expectedBody: `{"message":"identity provider returned an unexpected response"}`,
			},
		},
		{
			name: "err. transport",
			body: `{"email":"a@b.com","password":"pw123456"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					SignUp(gomock.Any(), gomock.Any()).
					Return(firebaseauth.SignUpResponse{}, errors.New("dial tcp: connection refused"))
			},
			response: response{
				expectedCode: http.StatusServiceUnavailable,
				expectedBody: `{"message":"identity provider unavailable"}`,
			},
		},
		{
			name: "err. breaker open",
			body: `{"email":"a@b.com","password":"pw123456"}`,
			mockBehavior: func(r *service_mocks.MockAuthService) {
				r.EXPECT().
					SignUp(gomock.Any(), gomock.Any()).
					Return(firebaseauth.SignUpResponse{}, circuit_breaker.ErrOpenCB)
			},
			response: response{
				expectedCode: http.StatusServiceUnavailable,
				expectedBody: `{"message":"identity provider unavailable"}`,
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			svc := service_mocks.NewMockAuthService(c)
			h := handler.New(svc, zap.NewExample().Named("test"))
			e := h.NewRouter()

			r := httptest.NewRequest(http.MethodPost, "/api/v1/signup", strings.NewReader(tt.body))
			r.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			tt.mockBehavior(svc)
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Equal(t, tt.response.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_PasswordReset(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	svc := service_mocks.NewMockAuthService(c)
	e := handler.New(svc, zap.NewNop()).NewRouter()

	gomock.InOrder(
		svc.EXPECT().
			SendPasswordResetEmail(gomock.Any(), firebaseauth.SendPasswordResetEmailRequest{Email: "a@b.com"}).
			Return(firebaseauth.SendPasswordResetEmailResponse{Email: "a@b.com"}, nil),
		svc.EXPECT().
			VerifyPasswordResetCode(gomock.Any(), firebaseauth.VerifyPasswordResetCodeRequest{OOBCode: "abc"}).
			Return(firebaseauth.VerifyPasswordResetCodeResponse{Email: "a@b.com", RequestType: "PASSWORD_RESET"}, nil),
		svc.EXPECT().
			ConfirmPasswordReset(gomock.Any(), firebaseauth.ConfirmPasswordResetRequest{OOBCode: "abc", NewPassword: "newpass1"}).
			Return(firebaseauth.ConfirmPasswordResetResponse{}, &firebaseauth.ResponseError{Err: firebaseauth.ErrorMetadata{
				Code: 400, Message: "EXPIRED_OOB_CODE", Errors: []firebaseauth.ErrorItem{},
			}}),
	)

	steps := []struct {
		path, body, want string
		code             int
	}{
		{"/api/v1/password-reset", `{"email":"a@b.com"}`, `{"email":"a@b.com"}`, http.StatusOK},
		{"/api/v1/password-reset/verify", `{"oobCode":"abc"}`, `{"email":"a@b.com","requestType":"PASSWORD_RESET"}`, http.StatusOK},
		{"/api/v1/password-reset/confirm", `{"oobCode":"abc","newPassword":"newpass1"}`, `{"error":{"code":400,"message":"EXPIRED_OOB_CODE","errors":[]}}`, http.StatusBadRequest},
	}
	for _, st := range steps {
		r := httptest.NewRequest(http.MethodPost, st.path, strings.NewReader(st.body))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		e.ServeHTTP(w, r)
		require.Equal(t, st.code, w.Code, st.path)
		require.Equal(t, st.want, strings.Trim(w.Body.String(), "\n"), st.path)
	}
}

func TestHandler_Health(t *testing.T) {
	t.Parallel()
	e := handler.New(nil, zap.NewNop()).NewRouter()
	w := httptest.NewRecorder()
	e.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/manage/health", http.NoBody))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "OK", w.Body.String())
}
