package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/persx/persx-sub000/internal/data/repos"
	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/pkg/ctxutil"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

const minPasswordLen = 8

type JWTClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

type LoginResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	User      *types.AdminUser `json:"user"`
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	CreateUser(ctx context.Context, email, name, password string) (*types.AdminUser, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	TokenTTL() time.Duration
}

type authService struct {
	log          *logger.Logger
	userRepo     repos.AdminUserRepo
	jwtSecretKey string
	tokenTTL     time.Duration
	now          func() time.Time
}

func NewAuthService(log *logger.Logger, userRepo repos.AdminUserRepo, jwtSecretKey string, tokenTTL time.Duration) AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 12 * time.Hour
	}
	return &authService{
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		tokenTTL:     tokenTTL,
		now:          time.Now,
	}
}

func (as *authService) TokenTTL() time.Duration { return as.tokenTTL }

func (as *authService) CreateUser(ctx context.Context, email, name, password string) (*types.AdminUser, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid email", perrors.ErrInvalidArgument)
	}
	if len(password) < minPasswordLen {
		return nil, fmt.Errorf("%w: password must be at least %d characters", perrors.ErrInvalidArgument, minPasswordLen)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &types.AdminUser{
		Email:    addr.Address,
		Name:     strings.TrimSpace(name),
		Password: string(hash),
	}
	if err := as.userRepo.Create(dbctx.Of(ctx), user); err != nil {
		return nil, err
	}
	as.log.Info("admin user created", "user_id", user.ID.String())
	return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := as.userRepo.GetByEmail(dbctx.Of(ctx), email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: invalid email or password", perrors.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		as.log.Info("login rejected", "user_id", user.ID.String())
		return nil, fmt.Errorf("%w: invalid email or password", perrors.ErrUnauthorized)
	}
	token, exp, err := as.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (as *authService) generateAccessToken(user *types.AdminUser) (string, time.Time, error) {
	now := as.now()
	exp := now.Add(as.tokenTTL)
	claims := JWTClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, fmt.Errorf("%w: missing token", perrors.ErrUnauthorized)
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(as.now))
	if err != nil {
		return ctx, fmt.Errorf("%w: %v", perrors.ErrUnauthorized, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, fmt.Errorf("%w: invalid or expired token", perrors.ErrUnauthorized)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("%w: invalid subject", perrors.ErrUnauthorized)
	}
	return ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: userID, Email: claims.Email}), nil
}
