package auth

import "context"

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req *LoginRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req *RefreshTokenRequest) (AccessTokenResponse, error)
	Logout(ctx context.Context, req *RefreshTokenRequest) error
}
