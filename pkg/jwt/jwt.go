package jwt

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	CandidateID string `json:"candidate_id"`
	Email       string `json:"email"`
	jwt.RegisteredClaims
}

// ValidateInterviewToken verifies an HS256 interview token issued by the
// directory service and returns its claims.
func ValidateInterviewToken(tokenString, jwtSecret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}
