package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

// AdminTokenTTL bounds an admin token; the dashboard itself ends sooner on
// logout or navigation.
const AdminTokenTTL = 2 * time.Hour

// GenerateJWT signs a token for the admin of templeID in session sessionID.
func GenerateJWT(sessionID, templeID, secret string) (string, time.Time, error) {
	exp := time.Now().Add(AdminTokenTTL)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":    sessionID,
		"temple": templeID,
		"exp":    exp.Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	return signed, exp, err
}

// parseToken verifies the JWT and returns its session and temple.
func parseToken(tokenString, secret string) (string, string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", "", errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", "", errors.New("invalid claims")
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", "", errors.New("invalid sub claim")
	}
	temple, ok := claims["temple"].(string)
	if !ok || temple == "" {
		return "", "", errors.New("invalid temple claim")
	}
	return sub, temple, nil
}

// JWTMiddleware checks "Authorization: Bearer <token>" and binds the request
// to the session the token was issued in.
func JWTMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing auth header"})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid auth header"})
			return
		}

		sessionID, templeID, err := parseToken(parts[1], secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(sessionKey, sessionID)
		c.Set(adminTempleKey, templeID)
		c.Next()
	}
}
