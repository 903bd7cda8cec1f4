package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hairstudio/salon/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const sessionCookieName = "admin_session"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidSession     = errors.New("invalid session")
)

// AdminVerifier checks the shared admin credential.
type AdminVerifier interface {
	Verify(ctx context.Context, username, password string) (*model.AdminIdentity, error)
}

// StaticVerifier compares against a plaintext credential from the environment.
type StaticVerifier struct {
	username string
	password string
}

func NewStaticVerifier(username, password string) *StaticVerifier {
	return &StaticVerifier{username: username, password: password}
}

func (v *StaticVerifier) Verify(ctx context.Context, username, password string) (*model.AdminIdentity, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.password)) == 1
	if !userOK || !passOK {
		return nil, ErrInvalidCredentials
	}
	return &model.AdminIdentity{Username: v.username, IssuedAt: time.Now().UTC()}, nil
}

// BcryptVerifier compares the password against a bcrypt hash.
type BcryptVerifier struct {
	username string
	hash     []byte
}

func NewBcryptVerifier(username, hash string) *BcryptVerifier {
	return &BcryptVerifier{username: username, hash: []byte(hash)}
}

func (v *BcryptVerifier) Verify(ctx context.Context, username, password string) (*model.AdminIdentity, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1
	err := bcrypt.CompareHashAndPassword(v.hash, []byte(password))
	if !userOK || err != nil {
		return nil, ErrInvalidCredentials
	}
	return &model.AdminIdentity{Username: v.username, IssuedAt: time.Now().UTC()}, nil
}

// NewAdminVerifier prefers the bcrypt hash when one is configured.
func NewAdminVerifier(username, password, passwordHash string) AdminVerifier {
	if passwordHash != "" {
		return NewBcryptVerifier(username, passwordHash)
	}
	return NewStaticVerifier(username, password)
}

func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

type AuthService struct {
	verifier     AdminVerifier
	jwtSecret    string
	jwtExpiry    time.Duration
	isProduction bool
}

func NewAuthService(verifier AdminVerifier, jwtSecret string, jwtExpiry time.Duration, isProduction bool) *AuthService {
	return &AuthService{
		verifier:     verifier,
		jwtSecret:    jwtSecret,
		jwtExpiry:    jwtExpiry,
		isProduction: isProduction,
	}
}

// Login verifies the credential and returns a signed session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *model.AdminIdentity, error) {
	identity, err := s.verifier.Verify(ctx, username, password)
	if err != nil {
		slog.Warn("admin login failed", "username", username)
		return "", nil, err
	}

	token, err := s.GenerateJWT(identity)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session: %w", err)
	}

	slog.Info("admin logged in", "username", identity.Username)
	return token, identity, nil
}

func (s *AuthService) GenerateJWT(identity *model.AdminIdentity) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   identity.Username,
		"admin": true,
		"exp":   now.Add(s.jwtExpiry).Unix(),
		"iat":   now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyJWT returns the admin identity carried by a valid session token.
func (s *AuthService) VerifyJWT(tokenString string) (*model.AdminIdentity, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSession
	}

	isAdmin, _ := claims["admin"].(bool)
	username, _ := claims["sub"].(string)
	if !isAdmin || username == "" {
		return nil, ErrInvalidSession
	}

	identity := &model.AdminIdentity{Username: username}
	iat, err := claims.GetIssuedAt()
	if err == nil && iat != nil {
		identity.IssuedAt = iat.UTC()
	}
	return identity, nil
}

// SessionToken reads the session cookie, if any.
func (s *AuthService) SessionToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (s *AuthService) SetJWTCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Expires:  time.Now().Add(s.jwtExpiry),
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearJWTCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.isProduction,
		SameSite: http.SameSiteLaxMode,
	})
}
