package firebaseauth

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func Test_classifyResponse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		body      string
		want      *ResponseError
		wantField string
	}{
		{
			name: "success payload",
			body: `{"idToken":"t","email":"a@b.com"}`,
			want: nil,
		},
		{
			name: "error with items",
			body: `{"error":{"code":400,"message":"EMAIL_EXISTS","errors":[{"domain":"global","reason":"invalid","message":"EMAIL_EXISTS"}]}}`,
			want: &ResponseError{Err: ErrorMetadata{
				Code:    400,
				Message: "EMAIL_EXISTS",
				Errors:  []ErrorItem{{Domain: "global", Reason: "invalid", Message: "EMAIL_EXISTS"}},
			}},
		},
		{
			name: "error without items",
			body: `{"error":{"code":403,"message":"PERMISSION_DENIED"}}`,
			want: &ResponseError{Err: ErrorMetadata{Code: 403, Message: "PERMISSION_DENIED", Errors: []ErrorItem{}}},
		},
		{
			name: "error with null items",
			body: `{"error":{"code":429,"message":"TOO_MANY_ATTEMPTS_TRY_LATER","errors":null}}`,
			want: &ResponseError{Err: ErrorMetadata{Code: 429, Message: "TOO_MANY_ATTEMPTS_TRY_LATER", Errors: []ErrorItem{}}},
		},
		{
			name:      "error is a string",
			body:      `{"error":"boom"}`,
			wantField: "error",
		},
		{
			name:      "error without code",
			body:      `{"error":{"message":"INVALID_API_KEY"}}`,
			wantField: "error.code",
		},
		{
			name:      "error with bad items",
			body:      `{"error":{"code":400,"message":"X","errors":{"domain":"global"}}}`,
			wantField: "error.errors",
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var raw map[string]json.RawMessage
			require.NoError(t, json.Unmarshal([]byte(tt.body), &raw))

			got, err := classifyResponse(raw)
			if tt.wantField != "" {
				require.True(t, errors.Is(err, ErrMalformedResponse))
				var malformed *MalformedResponseError
				require.True(t, errors.As(err, &malformed))
				require.Equal(t, tt.wantField, malformed.Field)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func Test_decodeSignUp_missingField(t *testing.T) {
	t.Parallel()
	raw := map[string]json.RawMessage{
		"idToken":      json.RawMessage(`"t"`),
		"email":        json.RawMessage(`"a@b.com"`),
		"refreshToken": json.RawMessage(`"r"`),
		"localId":      json.RawMessage(`"uid1"`),
	}
	_, err := decodeSignUp(raw)
	require.EqualError(t, err, `malformed response: field "expiresIn" is missing`)
}

func Test_decodePasswordReset_optionalFields(t *testing.T) {
	t.Parallel()
	raw := map[string]json.RawMessage{"email": json.RawMessage(`"a@b.com"`)}

	verify, err := decodeVerifyPasswordResetCode(raw)
	require.NoError(t, err)
	require.Equal(t, VerifyPasswordResetCodeResponse{Email: "a@b.com"}, verify)

	_, err = decodeConfirmPasswordReset(map[string]json.RawMessage{"kind": json.RawMessage(`"k"`)})
	require.ErrorIs(t, err, ErrMalformedResponse)
}

func Test_parseExpiresIn(t *testing.T) {
	t.Parallel()
	_, err := SignInResponse{ExpiresIn: "soon"}.TTL()
	require.Error(t, err)
}
