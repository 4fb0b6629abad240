package service

import (
	"context"
	"fmt"

	"github.com/edunexus/backend/internal/model"
	"github.com/edunexus/backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// IdentityClaims — полезная нагрузка токена внешнего identity-провайдера.
// Сама проверка личности (пароли, OAuth) живёт снаружи; бэкенд только
// валидирует подпись и сопоставляет токен с профилем в users.
type IdentityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

type AuthService struct {
	userRepo *repository.UserRepository
	secret   []byte
	logger   *zap.Logger
}

func NewAuthService(userRepo *repository.UserRepository, secret []byte, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   secret,
		logger:   logger,
	}
}

// VerifyIdentityToken проверяет подпись токена и возвращает claims
func (s *AuthService) VerifyIdentityToken(tokenString string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("token has no email claim")
	}

	return claims, nil
}

// CurrentUser сопоставляет проверенный токен с профилем пользователя
func (s *AuthService) CurrentUser(ctx context.Context, tokenString string) (*model.User, error) {
	claims, err := s.VerifyIdentityToken(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user profile not found")
	}

	return user, nil
}

// Register создаёт профиль для проверенной личности. Роль фиксируется
// при регистрации и дальше не меняется.
func (s *AuthService) Register(ctx context.Context, tokenString, role string) (*model.User, error) {
	claims, err := s.VerifyIdentityToken(tokenString)
	if err != nil {
		return nil, err
	}

	if role != model.RoleStudent && role != model.RoleTeacher {
		return nil, fmt.Errorf("invalid role: %s", role)
	}

	existing, err := s.userRepo.GetByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("user already registered")
	}

	user := &model.User{
		Email: claims.Email,
		Name:  claims.Name,
		Role:  role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("role", user.Role))

	return user, nil
}
