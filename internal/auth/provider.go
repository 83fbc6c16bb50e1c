// Package auth is the identity provider: accounts, password sign-in and
// signed session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rentledger/internal/billing"
	"rentledger/internal/models"
)

// TokenIssuer identifies rentledger as the issuer of session tokens.
const TokenIssuer = "rentledger"

const (
	defaultCurrencyCode   = "PHP"
	defaultCurrencySymbol = "₱"
	defaultFullName       = "N/A"

	// bcrypt refuses longer input.
	maxPasswordBytes = 72
)

type SignUpInput struct {
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8,max=72"`
	Country       string `json:"country" validate:"required"`
	AcceptTerms   bool   `json:"accept_terms" validate:"required"`
	AcceptPrivacy bool   `json:"accept_privacy" validate:"required"`
}

type Provider struct {
	db       *gorm.DB
	sessions SessionStore
	secret   []byte
	ttl      time.Duration
	cost     int
	now      func() time.Time
	log      logrus.FieldLogger
	validate *validator.Validate
}

type Option func(*Provider)

func WithTTL(ttl time.Duration) Option {
	return func(p *Provider) { p.ttl = ttl }
}

// WithBcryptCost lowers or raises the hashing cost. Tests use bcrypt.MinCost.
func WithBcryptCost(cost int) Option {
	return func(p *Provider) { p.cost = cost }
}

func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(p *Provider) { p.log = log }
}

func NewProvider(db *gorm.DB, sessions SessionStore, secret []byte, opts ...Option) *Provider {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)

	p := &Provider{
		db:       db,
		sessions: sessions,
		secret:   secret,
		ttl:      24 * time.Hour,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		log:      quiet,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SignUp creates the account with its profile and legal acceptance record.
// It does not start a session.
func (p *Provider) SignUp(ctx context.Context, in SignUpInput) (*models.User, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := p.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, signUpValidationError(verrs[0])
		}
		return nil, err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, &billing.ValidationError{Field: "password", Message: "must be at most 72 bytes"}
	}

	hash, err := HashPassword(in.Password, p.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := p.now()
	user := &models.User{Email: in.Email, PasswordHash: hash}
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", in.Email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrEmailExists
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.UserProfile{
			UserID:         user.ID,
			Email:          in.Email,
			FullName:       defaultFullName,
			Country:        in.Country,
			CurrencyCode:   defaultCurrencyCode,
			CurrencySymbol: defaultCurrencySymbol,
			CreatedAt:      now,
		}
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		return tx.Create(&models.LegalAcceptance{
			UserID:          user.ID,
			TermsAccepted:   in.AcceptTerms,
			PrivacyAccepted: in.AcceptPrivacy,
			AcceptedAt:      now,
		}).Error
	})
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	p.log.WithField("user_id", user.ID).Info("account created")
	return user, nil
}

func signUpValidationError(fe validator.FieldError) error {
	field := map[string]string{
		"Email":         "email",
		"Password":      "password",
		"Country":       "country",
		"AcceptTerms":   "accept_terms",
		"AcceptPrivacy": "accept_privacy",
	}[fe.Field()]

	msg := "is required"
	switch {
	case fe.Tag() == "email":
		msg = "must be a valid email address"
	case fe.Tag() == "min":
		msg = "must be at least 8 characters"
	case fe.Tag() == "max":
		msg = "must be at most 72 bytes"
	case field == "accept_terms" || field == "accept_privacy":
		msg = "must be accepted"
	}
	return &billing.ValidationError{Field: field, Message: msg}
}

// Authenticate checks the credentials without starting a session.
func (p *Provider) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var users []models.User
	if err := p.db.WithContext(ctx).Where("email = ?", email).Limit(1).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if len(users) == 0 || !CheckPasswordHash(password, users[0].PasswordHash) {
		p.log.WithField("email", email).Warn("sign-in rejected")
		return nil, ErrInvalidCredentials
	}
	return &users[0], nil
}

// SignIn checks the credentials, issues a session token and saves it.
func (p *Provider) SignIn(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := p.Authenticate(ctx, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := p.IssueToken(user)
	if err != nil {
		return "", nil, err
	}
	if err := p.sessions.Save(token); err != nil {
		return "", nil, err
	}

	p.log.WithField("user_id", user.ID).Info("signed in")
	return token, user, nil
}

func (p *Provider) SignOut(ctx context.Context) error {
	return p.sessions.Clear()
}

// IssueToken signs an HS256 token for user that expires after the TTL.
func (p *Provider) IssueToken(user *models.User) (string, error) {
	now := p.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		Issuer:    TokenIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// ParseToken validates a token and loads its user. Any problem with the
// token itself is ErrInvalidToken.
func (p *Provider) ParseToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(TokenIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, ErrInvalidToken
	}

	var users []models.User
	if err := p.db.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrInvalidToken
	}
	return &users[0], nil
}

// CurrentUser returns the user of the saved session, or nil when there is no
// valid session.
func (p *Provider) CurrentUser(ctx context.Context) (*models.User, error) {
	token, err := p.sessions.Load()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}
	user, err := p.ParseToken(ctx, token)
	if errors.Is(err, ErrInvalidToken) {
		p.log.WithError(err).Debug("ignoring saved session")
		return nil, nil
	}
	return user, err
}

func (p *Provider) Profile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profiles []models.UserProfile
	if err := p.db.WithContext(ctx).Where("user_id = ?", userID).Limit(1).Find(&profiles).Error; err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if len(profiles) == 0 {
		return nil, nil
	}
	return &profiles[0], nil
}
