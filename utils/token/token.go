package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Issuer is stamped on every token and required on validation.
const Issuer = "blockmirror"

var (
	ErrAuthHeaderMissing = errors.New("Authentication required")
	ErrInvalidAuthFormat = errors.New("Authorization header format must be Bearer {token}")
	ErrInvalidToken      = errors.New("Invalid or expired token")
)

// JWTClaims identifies the integration a token was issued to. The registered
// subject carries the same id as IntegrationID.
type JWTClaims struct {
	IntegrationID uuid.UUID `json:"integration_id"`
	Name          string    `json:"name"`
	jwt.RegisteredClaims
}

// validate checks that the token names a real integration consistently.
func (c *JWTClaims) validate() error {
	if c.IntegrationID == uuid.Nil {
		return fmt.Errorf("%w: no integration", ErrInvalidToken)
	}
	if c.Subject != c.IntegrationID.String() {
		return fmt.Errorf("%w: subject %q does not match integration %s", ErrInvalidToken, c.Subject, c.IntegrationID)
	}
	return nil
}

func NewClaims(integrationID uuid.UUID, name string, now time.Time, expiration time.Duration) JWTClaims {
	return JWTClaims{
		IntegrationID: integrationID,
		Name:          name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   integrationID.String(),
			Issuer:    Issuer,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
}

// GenerateToken signs an HS256 token for an integration.
func GenerateToken(integrationID uuid.UUID, name string, secret []byte, expiration time.Duration) (string, error) {
	return Sign(NewClaims(integrationID, name, time.Now().UTC(), expiration), secret)
}

func Sign(claims JWTClaims, secret []byte) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateToken parses tokenString and returns its claims. Only HS256 tokens
// from this issuer with an expiry and a subject naming the integration pass.
func ValidateToken(tokenString string, secret []byte) (*JWTClaims, error) {
	claims := &JWTClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if err := claims.validate(); err != nil {
		return nil, err
	}
	return claims, nil
}

// ExtractToken reads the token from the "token" query parameter, used by
// websocket clients, or else from a Bearer Authorization header.
func ExtractToken(c *gin.Context) (string, error) {
	if token := c.Query("token"); token != "" {
		return token, nil
	}

	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrAuthHeaderMissing
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" || strings.Contains(token, " ") {
		return "", ErrInvalidAuthFormat
	}
	return token, nil
}
