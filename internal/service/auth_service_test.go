package service

import (
	"context"
	"testing"
	"time"

	"quizdeck/internal/config"
	"quizdeck/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func authTestConfig() *config.Config {
	return &config.Config{
		JWT: config.JWTConfig{
			SecretKey:       "0123456789abcdef0123456789abcdef",
			AccessTokenTTL:  15 * time.Minute,
			RefreshTokenTTL: 7 * 24 * time.Hour,
		},
	}
}

func newTestAuthService(t *testing.T, userRepo domain.UserRepository) AuthService {
	svc, err := NewAuthService(userRepo, authTestConfig())
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_ShortSecret(t *testing.T) {
	cfg := authTestConfig()
	cfg.JWT.SecretKey = "too-short"

	_, err := NewAuthService(new(MockUserRepository), cfg)

	assert.Error(t, err)
}

func TestAuthService_CreateAndValidateJWT(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))
	user := &domain.User{ID: "user1"}

	token, err := svc.CreateJWT(context.Background(), user, 15*time.Minute, tokenTypeAccess)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateJWT(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user1", claims.UserID)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
	assert.Equal(t, "user1", claims.Subject)
}

func TestAuthService_ValidateJWT_Expired(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	token, err := svc.CreateJWT(context.Background(), &domain.User{ID: "user1"}, -time.Minute, tokenTypeAccess)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_ValidateJWT_WrongSecret(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	otherCfg := authTestConfig()
	otherCfg.JWT.SecretKey = "ffffffffffffffffffffffffffffffff"
	otherSvc, err := NewAuthService(new(MockUserRepository), otherCfg)
	require.NoError(t, err)

	token, err := otherSvc.CreateJWT(context.Background(), &domain.User{ID: "user1"}, time.Minute, tokenTypeAccess)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestAuthService_RefreshToken_Success(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(t, userRepo)

	user := &domain.User{ID: "user1", Email: "test@example.com"}
	userRepo.On("GetUserByID", mock.Anything, "user1").Return(user, nil)

	refreshToken, err := svc.CreateJWT(context.Background(), user, time.Hour, tokenTypeRefresh)
	require.NoError(t, err)

	newAccess, newRefresh, err := svc.RefreshToken(context.Background(), refreshToken)

	require.NoError(t, err)
	assert.NotEmpty(t, newAccess)
	assert.NotEmpty(t, newRefresh)

	claims, err := svc.ValidateJWT(context.Background(), newAccess)
	require.NoError(t, err)
	assert.Equal(t, tokenTypeAccess, claims.TokenType)
}

func TestAuthService_RefreshToken_RejectsAccessToken(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	accessToken, err := svc.CreateJWT(context.Background(), &domain.User{ID: "user1"}, time.Hour, tokenTypeAccess)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), accessToken)
	assert.Error(t, err)
}

func TestAuthService_RefreshToken_UserGone(t *testing.T) {
	userRepo := new(MockUserRepository)
	svc := newTestAuthService(t, userRepo)

	userRepo.On("GetUserByID", mock.Anything, "user1").Return(nil, nil)

	refreshToken, err := svc.CreateJWT(context.Background(), &domain.User{ID: "user1"}, time.Hour, tokenTypeRefresh)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), refreshToken)

	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeNotFound, domainErr.Code)
}

func TestAuthService_EncryptDecryptToken_RoundTrip(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	plaintext := "ya29.some-provider-token"
	encrypted, err := svc.EncryptToken(plaintext)
	require.NoError(t, err)
	require.NotEmpty(t, encrypted)
	assert.NotEqual(t, plaintext, encrypted)

	decrypted, err := svc.DecryptToken(encrypted)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestAuthService_EncryptToken_EmptyPassesThrough(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	encrypted, err := svc.EncryptToken("")
	require.NoError(t, err)
	assert.Empty(t, encrypted)

	decrypted, err := svc.DecryptToken("")
	require.NoError(t, err)
	assert.Empty(t, decrypted)
}

func TestAuthService_DecryptToken_Garbage(t *testing.T) {
	svc := newTestAuthService(t, new(MockUserRepository))

	_, err := svc.DecryptToken("not-base64!!!")
	assert.ErrorIs(t, err, ErrDecryptionFailed)

	_, err = svc.DecryptToken("QQ==") // valid base64, shorter than a nonce
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}

func TestAuthService_GetGoogleLoginURL(t *testing.T) {
	cfg := authTestConfig()
	cfg.GoogleOAuth = config.GoogleOAuthConfig{
		ClientID:    "client-id",
		RedirectURL: "http://localhost:8090/api/auth/google/callback",
	}
	svc, err := NewAuthService(new(MockUserRepository), cfg)
	require.NoError(t, err)

	url := svc.GetGoogleLoginURL("state-token")

	assert.Contains(t, url, "state=state-token")
	assert.Contains(t, url, "client_id=client-id")
	assert.Contains(t, url, "access_type=offline")
}
