package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"notion-blocks/blockmirror/database"
	"notion-blocks/blockmirror/models"
	"notion-blocks/blockmirror/utils/logger"
	"notion-blocks/blockmirror/utils/token"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

type AuthServiceInterface interface {
	RegisterIntegration(db *database.Database, name, secret string) (models.Integration, error)
	EnsureIntegration(db *database.Database, name, secret string) (models.Integration, error)
	Login(db *database.Database, integrationID, secret string) (string, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	HashSecret(secret string) (string, error)
	CompareSecrets(hashedSecret, secret string) error
}

type AuthService struct {
	jwtSecret     []byte
	jwtExpiration time.Duration
}

func NewAuthService(jwtSecret string, jwtExpirationHours int) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: time.Duration(jwtExpirationHours) * time.Hour,
	}
}

func (s *AuthService) RegisterIntegration(db *database.Database, name, secret string) (models.Integration, error) {
	name = strings.TrimSpace(name)
	if name == "" || secret == "" {
		return models.Integration{}, fmt.Errorf("%w: name and secret are required", ErrInvalidInput)
	}

	var count int64
	if err := db.DB.Model(&models.Integration{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return models.Integration{}, err
	}
	if count > 0 {
		return models.Integration{}, fmt.Errorf("%w: integration %q", ErrResourceExists, name)
	}

	hash, err := s.HashSecret(secret)
	if err != nil {
		return models.Integration{}, err
	}

	integration := models.Integration{
		ID:         uuid.New(),
		Name:       name,
		SecretHash: hash,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.DB.Create(&integration).Error; err != nil {
		return models.Integration{}, err
	}

	logger.Log.Info().Str("integration_id", integration.ID.String()).Str("name", name).Msg("Integration registered")
	return integration, nil
}

// EnsureIntegration returns the integration called name, registering it
// first if it does not exist. An existing integration keeps its secret.
func (s *AuthService) EnsureIntegration(db *database.Database, name, secret string) (models.Integration, error) {
	var integration models.Integration
	err := db.DB.Where("name = ?", name).First(&integration).Error
	if err == nil {
		return integration, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Integration{}, err
	}
	return s.RegisterIntegration(db, name, secret)
}

func (s *AuthService) Login(db *database.Database, integrationID, secret string) (string, error) {
	id, err := uuid.Parse(integrationID)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	var integration models.Integration
	if err := db.DB.Where("id = ?", id).First(&integration).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := s.CompareSecrets(integration.SecretHash, secret); err != nil {
		return "", ErrInvalidCredentials
	}

	return token.GenerateToken(integration.ID, integration.Name, s.jwtSecret, s.jwtExpiration)
}

// ValidateToken uses the token utility to validate tokens
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	claims, err := token.ValidateToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

func (s *AuthService) HashSecret(secret string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) CompareSecrets(hashedSecret, secret string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(secret))
}

var AuthServiceInstance AuthServiceInterface
