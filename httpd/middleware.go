package httpd

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"
)

const requestIDKey = "request-id"

// RequestID tags each request with the caller's X-Request-ID, or a generated one,
// and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader("X-Request-ID"))
		if id == "" {
			if v, err := uuid.NewV4(); err == nil {
				id = v.String()
			}
		}

		c.Set(requestIDKey, id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func requestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}

func Logger(debug bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		if debug || status >= 400 {
			infof("%v %v %v %v %v", requestID(c), c.Request.Method, c.Request.URL.Path, status, time.Since(start).Round(time.Millisecond))
		}
	}
}

// Auth verifies the HS256 bearer token on a request. Verification is disabled if
// the secret is blank.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}

		if err := ValidateToken(c.GetHeader("Authorization"), []byte(secret)); err != nil {
			warnf("%v %v %v  %v", requestID(c), c.Request.Method, c.Request.URL.Path, err)
			c.JSON(http.StatusUnauthorized, gin.H{"message": "unauthorized"})
			c.Abort()
			return
		}

		c.Next()
	}
}

func ValidateToken(authorizationHeader string, secret []byte) error {
	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return fmt.Errorf("invalid-token")
	}

	tokenString := strings.TrimSpace(strings.TrimPrefix(authorizationHeader, "Bearer "))

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}

		return secret, nil
	})

	if err != nil {
		return err
	} else if !token.Valid {
		return fmt.Errorf("invalid-token")
	}

	return nil
}
