package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hairstudio/salon/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifier(t *testing.T) {
	v := NewStaticVerifier("owner", "s3cret-s3cret")

	identity, err := v.Verify(ctx, "owner", "s3cret-s3cret")
	require.NoError(t, err)
	assert.Equal(t, "owner", identity.Username)

	_, err = v.Verify(ctx, "owner", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = v.Verify(ctx, "someone", "s3cret-s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestBcryptVerifier(t *testing.T) {
	hash, err := HashPassword("long enough pass")
	require.NoError(t, err)

	v := NewAdminVerifier("owner", "ignored", hash)
	require.IsType(t, &BcryptVerifier{}, v)

	_, err = v.Verify(ctx, "owner", "long enough pass")
	require.NoError(t, err)
	_, err = v.Verify(ctx, "owner", "ignored")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestNewAdminVerifierFallsBackToStatic(t *testing.T) {
	assert.IsType(t, &StaticVerifier{}, NewAdminVerifier("owner", "pw", ""))
}

func TestLoginIssuesVerifiableSession(t *testing.T) {
	svc := NewAuthService(NewStaticVerifier("owner", "pw"), "test-secret", time.Hour, false)

	token, identity, err := svc.Login(ctx, "owner", "pw")
	require.NoError(t, err)
	assert.Equal(t, "owner", identity.Username)

	got, err := svc.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "owner", got.Username)

	_, _, err = svc.Login(ctx, "owner", "nope")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyJWTRejectsBadTokens(t *testing.T) {
	svc := NewAuthService(NewStaticVerifier("owner", "pw"), "test-secret", time.Hour, false)

	other := NewAuthService(NewStaticVerifier("owner", "pw"), "other-secret", time.Hour, false)
	forged, err := other.GenerateJWT(&model.AdminIdentity{Username: "owner"})
	require.NoError(t, err)
	_, err = svc.VerifyJWT(forged)
	assert.ErrorIs(t, err, ErrInvalidSession)

	expired := NewAuthService(NewStaticVerifier("owner", "pw"), "test-secret", -time.Minute, false)
	old, err := expired.GenerateJWT(&model.AdminIdentity{Username: "owner"})
	require.NoError(t, err)
	_, err = svc.VerifyJWT(old)
	assert.ErrorIs(t, err, ErrInvalidSession)

	notAdmin := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "owner",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := notAdmin.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	_, err = svc.VerifyJWT(signed)
	assert.ErrorIs(t, err, ErrInvalidSession)

	_, err = svc.VerifyJWT("garbage")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestSessionCookie(t *testing.T) {
	svc := NewAuthService(NewStaticVerifier("owner", "pw"), "test-secret", time.Hour, true)

	rec := httptest.NewRecorder()
	svc.SetJWTCookie(rec, "tok")
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	token, ok := svc.SessionToken(req)
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	rec = httptest.NewRecorder()
	svc.ClearJWTCookie(rec)
	cleared := rec.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Empty(t, cleared[0].Value)
	assert.Less(t, cleared[0].MaxAge, 0)
}
