package transfer

import "github.com/golang-jwt/jwt/v5"

type CustomClaims struct {
	UserID  string `json:"user_id"`
	IsStaff bool   `json:"is_staff"`
	jwt.RegisteredClaims
}

type OTPRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type Registration struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PasswordTwo string `json:"password_two"`
	OTP         string `json:"otp"`
}

type Login struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
