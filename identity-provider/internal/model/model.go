package model

type Operation string

const (
	OpSignUp                  Operation = "signUp"
	OpSignIn                  Operation = "signIn"
	OpSendPasswordResetEmail  Operation = "sendPasswordResetEmail"
	OpVerifyPasswordResetCode Operation = "verifyPasswordResetCode"
	OpConfirmPasswordReset    Operation = "confirmPasswordReset"
)
