package handler

import (
	"context"

	"github.com/Astemirdum/firebase-auth/identity-provider/internal/service"
	"github.com/Astemirdum/firebase-auth/pkg/firebaseauth"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type AuthService interface {
	SignUp(ctx context.Context, req firebaseauth.SignUpRequest) (firebaseauth.SignUpResponse, error)
	SignIn(ctx context.Context, req firebaseauth.SignInRequest) (firebaseauth.SignInResponse, error)
	SendPasswordResetEmail(ctx context.Context, req firebaseauth.SendPasswordResetEmailRequest) (firebaseauth.SendPasswordResetEmailResponse, error)
	VerifyPasswordResetCode(ctx context.Context, req firebaseauth.VerifyPasswordResetCodeRequest) (firebaseauth.VerifyPasswordResetCodeResponse, error)
	ConfirmPasswordReset(ctx context.Context, req firebaseauth.ConfirmPasswordResetRequest) (firebaseauth.ConfirmPasswordResetResponse, error)
}

var _ AuthService = (*service.Service)(nil)
