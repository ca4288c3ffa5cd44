package identity

import (
	"context"
	"regexp"
	"strings"
	"time"

	couponapp "github.com/storefront/backend/internal/application/coupon"
	"github.com/storefront/backend/internal/domain/identity"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/auth"
	"go.uber.org/zap"
)

// MinPasswordLength is the minimum accepted password length
const MinPasswordLength = 4

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Service handles signup, login, and session state
type Service struct {
	users          identity.UserRepository
	sessions       identity.SessionRepository
	coupons        *couponapp.Service
	tokens         *auth.JWTService
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	now            func() time.Time
}

// NewService creates a new identity Service
func NewService(
	users identity.UserRepository,
	sessions identity.SessionRepository,
	coupons *couponapp.Service,
	tokens *auth.JWTService,
	logger *zap.Logger,
) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		coupons:  coupons,
		tokens:   tokens,
		logger:   logger,
		now:      time.Now,
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetClock overrides the time source, for tests
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Signup registers a local account, grants the welcome coupon, and logs
// the new member in
func (s *Service) Signup(ctx context.Context, req SignupRequest) (*SessionResponse, error) {
	email := strings.TrimSpace(req.Email)
	if !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Invalid email address: "+email)
	}
	if len(req.Password) < MinPasswordLength {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Password is too short")
	}
	if req.PasswordConfirm != "" && req.PasswordConfirm != req.Password {
		return nil, shared.NewDomainError("INVALID_PASSWORD", "Passwords do not match")
	}
	if _, exists := s.users.FindByID(ctx, email); exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Email is already registered: "+email)
	}

	user, err := identity.NewLocalUser(email, req.Name, req.Password, s.now())
	if err != nil {
		return nil, err
	}
	users := append(s.users.List(ctx), *user)
	if err := s.users.Save(ctx, users); err != nil {
		return nil, err
	}

	if _, err := s.coupons.IssueWelcome(ctx); err != nil {
		s.logger.Warn("failed to grant welcome coupon", zap.Error(err))
	}

	return s.establishSession(ctx, user)
}

// Login authenticates a local account and opens a session
func (s *Service) Login(ctx context.Context, req LoginRequest) (*SessionResponse, error) {
	user, ok := s.users.FindByID(ctx, strings.TrimSpace(req.UserID))
	if !ok || !user.CheckPassword(req.Password) {
		return nil, shared.NewDomainError("UNAUTHORIZED", "Invalid credentials")
	}
	return s.establishSession(ctx, user)
}

// LoginSNS opens a session for an SNS-authenticated member, registering
// the account on first login. The identifier arrives as userId or id.
func (s *Service) LoginSNS(ctx context.Context, req SNSLoginRequest) (*SessionResponse, error) {
	id := req.UserID
	if id == "" {
		id = req.ID
	}
	if id == "" {
		return nil, shared.NewDomainError("INVALID_ID", "SNS login carries no user identifier")
	}

	loginType := identity.LoginType(strings.ToLower(req.Provider))
	switch loginType {
	case identity.LoginTypeNaver, identity.LoginTypeKakao:
	default:
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown SNS provider: "+req.Provider)
	}

	user, ok := s.users.FindByID(ctx, id)
	if !ok {
		created, err := identity.NewSNSUser(id, req.Name, req.Email, loginType, s.now())
		if err != nil {
			return nil, err
		}
		if err := s.users.Save(ctx, append(s.users.List(ctx), *created)); err != nil {
			return nil, err
		}
		user = created
	}

	return s.establishSession(ctx, user)
}

// Logout closes the session. Logout always succeeds locally; upstream
// SNS logout failures are never surfaced.
func (s *Service) Logout(ctx context.Context) error {
	userID := ""
	if session, ok := s.sessions.Current(ctx); ok {
		userID = session.Info.UserID
	}
	if err := s.sessions.Clear(ctx); err != nil {
		return err
	}
	if userID != "" {
		s.publish(ctx, identity.NewLoggedOutEvent(userID))
	}
	return nil
}

// Current returns the active session, if any
func (s *Service) Current(ctx context.Context) (*SessionResponse, bool) {
	session, ok := s.sessions.Current(ctx)
	if !ok {
		return nil, false
	}
	resp := toSessionResponse(*session)
	return &resp, true
}

// CheckEmail reports whether an email is free to register
func (s *Service) CheckEmail(ctx context.Context, email string) CheckEmailResponse {
	_, exists := s.users.FindByID(ctx, strings.TrimSpace(email))
	return CheckEmailResponse{Available: !exists}
}

// EnsureUser creates a local account with a fixed ID when it does not
// exist yet. Startup seeds the demo admin through this.
func (s *Service) EnsureUser(ctx context.Context, id, name, password string) error {
	if _, ok := s.users.FindByID(ctx, id); ok {
		return nil
	}
	user, err := identity.NewSeedUser(id, name, password, s.now())
	if err != nil {
		return err
	}
	return s.users.Save(ctx, append(s.users.List(ctx), *user))
}

// establishSession issues a token and writes the three session records
func (s *Service) establishSession(ctx context.Context, user *identity.User) (*SessionResponse, error) {
	token, err := s.tokens.Issue(user.ID, user.Name, string(user.Role()))
	if err != nil {
		return nil, err
	}

	session := identity.NewSession(identity.Profile{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role(),
		LoginType: user.LoginType,
	}, token.Token)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.publish(ctx, identity.NewLoggedInEvent(user.ID, user.LoginType))

	resp := toSessionResponse(session)
	return &resp, nil
}

func (s *Service) publish(ctx context.Context, e shared.DomainEvent) {
	if s.eventPublisher == nil {
		return
	}
	if err := s.eventPublisher.Publish(ctx, e); err != nil {
		s.logger.Warn("failed to publish session event", zap.Error(err))
	}
}
