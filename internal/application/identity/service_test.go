package identity

import (
	"context"
	"testing"
	"time"

	couponapp "github.com/storefront/backend/internal/application/coupon"
	"github.com/storefront/backend/internal/domain/coupon"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"github.com/storefront/backend/internal/infrastructure/config"
	"github.com/storefront/backend/internal/infrastructure/kvstore"
	"github.com/storefront/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *Service
	coupons *couponapp.Service
	tokens  *auth.JWTService
	store   *kvstore.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := kvstore.NewMemoryStore(zap.NewNop())
	coupons := couponapp.NewService(persistence.NewCouponRepository(store), zap.NewNop())
	coupons.SetClock(func() time.Time { return fixedNow })
	tokens := auth.NewJWTService(config.JWTConfig{
		Secret:     "test-secret",
		Expiration: time.Hour,
		Issuer:     "storefront-test",
	})
	svc := NewService(
		persistence.NewUserRepository(store),
		persistence.NewSessionRepository(store),
		coupons,
		tokens,
		zap.NewNop(),
	)
	svc.SetClock(func() time.Time { return fixedNow })
	return &fixture{svc: svc, coupons: coupons, tokens: tokens, store: store}
}

func TestSignup_RegistersGrantsCouponAndLogsIn(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.Signup(ctx, SignupRequest{
		Email:    "kim@example.com",
		Password: "secret1",
		Name:     "김철수",
	})
	require.NoError(t, err)

	assert.True(t, resp.IsLogin)
	assert.Equal(t, "kim@example.com", resp.LoginInfo.UserID)
	assert.NotEmpty(t, resp.LoginInfo.Token)
	assert.Equal(t, identity.RoleUser, resp.LoginUser.Role)

	// The token is a real signed JWT
	claims, err := f.tokens.Validate(resp.LoginInfo.Token)
	require.NoError(t, err)
	assert.Equal(t, "kim@example.com", claims.UserID)

	// The welcome coupon landed in the ledger
	ledger := f.coupons.List(ctx)
	require.Len(t, ledger.Available, 1)
	assert.Equal(t, coupon.WelcomeCouponID, ledger.Available[0].ID)

	// All three session records exist
	assert.True(t, f.store.Has(ctx, persistence.KeyLoginUser))
	assert.True(t, f.store.Has(ctx, persistence.KeyLoginInfo))
	assert.True(t, f.store.Has(ctx, persistence.KeyIsLogin))
}

func TestSignup_RejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	req := SignupRequest{Email: "kim@example.com", Password: "secret1", Name: "김철수"}
	_, err := f.svc.Signup(ctx, req)
	require.NoError(t, err)

	_, err = f.svc.Signup(ctx, req)
	assert.Error(t, err)
}

func TestSignup_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Signup(ctx, SignupRequest{Email: "not-an-email", Password: "secret1", Name: "김철수"})
	assert.Error(t, err)

	_, err = f.svc.Signup(ctx, SignupRequest{Email: "kim@example.com", Password: "abc", Name: "김철수"})
	assert.Error(t, err)

	_, err = f.svc.Signup(ctx, SignupRequest{
		Email:           "kim@example.com",
		Password:        "secret1",
		PasswordConfirm: "secret2",
		Name:            "김철수",
	})
	assert.Error(t, err)
}

func TestLogin_WrongPassword(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Signup(ctx, SignupRequest{Email: "kim@example.com", Password: "secret1", Name: "김철수"})
	require.NoError(t, err)
	require.NoError(t, f.svc.Logout(ctx))

	_, err = f.svc.Login(ctx, LoginRequest{UserID: "kim@example.com", Password: "wrong"})
	assert.Error(t, err)

	resp, err := f.svc.Login(ctx, LoginRequest{UserID: "kim@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, resp.IsLogin)
}

func TestLogin_SeededAdminGetsAdminSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	require.NoError(t, f.svc.EnsureUser(ctx, "admin", "관리자", "1234"))
	// Seeding twice is harmless
	require.NoError(t, f.svc.EnsureUser(ctx, "admin", "관리자", "1234"))

	resp, err := f.svc.Login(ctx, LoginRequest{UserID: "admin", Password: "1234"})
	require.NoError(t, err)

	assert.Equal(t, "admin", resp.LoginInfo.UserID)
	assert.Equal(t, identity.RoleAdmin, resp.LoginUser.Role)

	session, ok := persistence.NewSessionRepository(f.store).Current(ctx)
	require.True(t, ok)
	assert.True(t, session.IsAdmin())
}

func TestLoginSNS_RegistersOnFirstLogin(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	resp, err := f.svc.LoginSNS(ctx, SNSLoginRequest{
		Provider: "kakao",
		ID:       "kakao-7291",
		Name:     "이영희",
	})
	require.NoError(t, err)
	assert.Equal(t, "kakao-7291", resp.LoginInfo.UserID)
	assert.Equal(t, identity.LoginTypeKakao, resp.LoginUser.LoginType)

	// Second login reuses the account
	again, err := f.svc.LoginSNS(ctx, SNSLoginRequest{Provider: "kakao", UserID: "kakao-7291"})
	require.NoError(t, err)
	assert.Equal(t, "이영희", again.LoginUser.Name)
}

func TestLoginSNS_RejectsUnknownProvider(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.LoginSNS(ctx, SNSLoginRequest{Provider: "myspace", ID: "x"})
	assert.Error(t, err)
}

func TestLogout_ClearsEverySessionKey(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Signup(ctx, SignupRequest{Email: "kim@example.com", Password: "secret1", Name: "김철수"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx))

	_, ok := f.svc.Current(ctx)
	assert.False(t, ok)
	assert.False(t, f.store.Has(ctx, persistence.KeyLoginUser))
	assert.False(t, f.store.Has(ctx, persistence.KeyLoginInfo))
	assert.False(t, f.store.Has(ctx, persistence.KeyIsLogin))

	// Logging out again stays quiet
	require.NoError(t, f.svc.Logout(ctx))
}

func TestCheckEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	assert.True(t, f.svc.CheckEmail(ctx, "kim@example.com").Available)

	_, err := f.svc.Signup(ctx, SignupRequest{Email: "kim@example.com", Password: "secret1", Name: "김철수"})
	require.NoError(t, err)

	assert.False(t, f.svc.CheckEmail(ctx, "kim@example.com").Available)
}
