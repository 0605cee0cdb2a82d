package auth

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	autherrors "go-hrm/internal/auth/errors"
	"go-hrm/internal/employee"
	employeeerrors "go-hrm/internal/employee/errors"
	"go-hrm/internal/events"
	kafka "go-hrm/internal/messaging/kafka"
	"go-hrm/internal/rbac"
	"go-hrm/internal/shared/contextutil"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const resetTokenTTL = 24 * time.Hour

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error)
	GetMe(ctx context.Context, userID string) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (AuthResponse, error)

	RequestPasswordReset(ctx context.Context, email string) error
	ValidateResetToken(ctx context.Context, token string) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
}

type service struct {
	db           *sql.DB
	repo         Repository
	employeeRepo employee.Repository
	outboxRepo   kafka.OutboxRepository
	logger       *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employeeRepo employee.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{
		db:           db,
		repo:         repo,
		employeeRepo: employeeRepo,
		outboxRepo:   outboxRepo,
		logger:       l,
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (TokenPairResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidCredentials
	}

	return s.issueTokenPair(user)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (TokenPairResponse, error) {
	token, err := jwt.Parse(refreshToken, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, autherrors.ErrInvalidToken
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return TokenPairResponse{}, autherrors.ErrInvalidRefreshToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return TokenPairResponse{}, autherrors.ErrInvalidToken
	}
	if _, err := uuid.Parse(userID); err != nil {
		return TokenPairResponse{}, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrUserNotFound
	}

	return s.issueTokenPair(user)
}

func (s *service) GetMe(ctx context.Context, userID string) (*AuthResponse, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, autherrors.ErrInvalidUserID
	}

	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, autherrors.ErrUserNotFound
	}

	resp := mapToAuthResponse(*user)
	return &resp, nil
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (AuthResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return AuthResponse{}, err
	}

	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return AuthResponse{}, employeeerrors.ErrInvalidEmployeeID
	}
	if _, err := s.employeeRepo.FindByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return AuthResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return AuthResponse{}, err
	}

	role := req.Role
	if role == "" {
		role = rbac.RoleEmployee
	}

	user := &User{
		ID:         uuid.New(),
		EmployeeID: &employeeUUID,
		Email:      req.Email,
		Name:       req.Name,
		Password:   string(hashed),
		Role:       role,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return AuthResponse{}, autherrors.ErrEmailAlreadyUsed
	}

	return mapToAuthResponse(*user), nil
}

// RequestPasswordReset selalu sukses dari sisi caller, ada atau tidak
// akunnya (anti user enumeration). Token lama yang belum dipakai
// diinvalidasi dulu, lalu token baru + email masuk satu transaksi.
func (s *service) RequestPasswordReset(ctx context.Context, email string) error {
	if _, err := s.repo.GetByEmail(ctx, email); err != nil {
		s.logger.Info("password reset requested for unknown email", zap.String("email", email))
		return nil
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return err
	}

	now := time.Now().UTC()
	token := &PasswordResetToken{
		ID:        uuid.New(),
		Token:     hex.EncodeToString(raw),
		Email:     email,
		Used:      false,
		CreatedAt: now,
		ExpiresAt: now.Add(resetTokenTTL),
	}

	htmlBody := fmt.Sprintf(
		`<p>Gunakan token berikut untuk mereset password Anda (berlaku 24 jam):</p><p><code>%s</code></p>`,
		token.Token,
	)
	event, err := kafka.NewEmailOutboxEvent(
		contextutil.GetRequestID(ctx),
		"password_reset",
		token.ID.String(),
		events.EmailRequestedEvent{
			EventType:  events.EmailRequestedTopic,
			Kind:       events.EmailKindPasswordReset,
			To:         email,
			Subject:    "Reset Password",
			HTMLBody:   htmlBody,
			OccurredAt: now,
		},
	)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.InvalidateResetTokens(ctx, email); err != nil {
		return err
	}
	if err := qtx.CreateResetToken(ctx, token); err != nil {
		return err
	}
	if err := s.outboxRepo.WithTx(tx).Create(ctx, event); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *service) ValidateResetToken(ctx context.Context, token string) error {
	_, err := s.lookupUsableToken(ctx, token)
	return err
}

// ResetPassword atomik: password baru dan penandaan token used commit
// bersama. Kalau update password gagal, token tetap bisa dipakai ulang.
func (s *service) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	token, err := s.lookupUsableToken(ctx, req.Token)
	if err != nil {
		return err
	}

	user, err := s.repo.GetByEmail(ctx, token.Email)
	if err != nil {
		return autherrors.ErrUserNotFound
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if err := qtx.UpdatePassword(ctx, user.ID.String(), string(hashed)); err != nil {
		return err
	}
	if err := qtx.MarkResetTokenUsed(ctx, token.ID.String()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("password reset completed", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *service) lookupUsableToken(ctx context.Context, token string) (*PasswordResetToken, error) {
	row, err := s.repo.FindResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, autherrors.ErrResetTokenNotFound
		}
		return nil, err
	}

	if row.Used {
		return nil, autherrors.ErrResetTokenUsed
	}
	if time.Now().UTC().After(row.ExpiresAt) {
		return nil, autherrors.ErrResetTokenExpired
	}

	return row, nil
}

func (s *service) issueTokenPair(user *User) (TokenPairResponse, error) {
	accessToken, err := s.generateToken(user, 15*time.Minute)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}
	refreshToken, err := s.generateToken(user, 7*24*time.Hour)
	if err != nil {
		return TokenPairResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return TokenPairResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         mapToAuthResponse(*user),
	}, nil
}

func (s *service) generateToken(user *User, expiry time.Duration) (string, error) {
	employeeID := ""
	if user.EmployeeID != nil {
		employeeID = user.EmployeeID.String()
	}

	claims := jwt.MapClaims{
		"user_id":     user.ID.String(),
		"employee_id": employeeID,
		"email":       user.Email,
		"role":        user.Role,
		"exp":         time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}

func mapToAuthResponse(u User) AuthResponse {
	resp := AuthResponse{
		ID:    u.ID.String(),
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
	if u.EmployeeID != nil {
		resp.EmployeeID = u.EmployeeID.String()
	}
	return resp
}
