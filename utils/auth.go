package utils

import (
	"time"

	"github.com/go-faster/errors"
	"github.com/golang-jwt/jwt"

	"github.com/aromanza/gateway/models"
)

// ProfileClaims is what the gateway remembers about the signed-in user between
// two profile lookups.
type ProfileClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"nombre"`
	Role   string `json:"rol"`
	jwt.StandardClaims
}

// GenerateProfileToken signs the user's profile for ttl
func GenerateProfileToken(user *models.User, secret []byte, ttl time.Duration, now time.Time) (string, error) {
	claims := ProfileClaims{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
			Issuer:    AppName,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", errors.Wrap(err, "sign profile token")
	}
	return signed, nil
}

// ValidateProfileToken validates a profile token and returns the user it carries
func ValidateProfileToken(tokenString string, secret []byte) (*models.User, error) {
	var claims ProfileClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return &models.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}
