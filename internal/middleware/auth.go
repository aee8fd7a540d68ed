package middleware

import (
	"net/http"
	"strings"

	"github.com/Valtaor/perso-monstock/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const AuthKey = "auth"

// SessionClaims are the claims the host site embeds in the session token.
// NomAffichage feeds the ajoute_par column on product creation.
type SessionClaims struct {
	UserID       string `json:"user_id"`
	NomAffichage string `json:"nom_affichage"`
	jwt.RegisteredClaims
}

// AuthContext is the typed capability handed to the dispatcher: proof that
// the request belongs to a logged-in user.
type AuthContext struct {
	UserID       string
	NomAffichage string
}

// Auth validates the Bearer token on every inventory route and stores the
// resulting AuthContext. Token issuance belongs to the host site; this
// backend only verifies.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Fail("Authentification requise.", ""))
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		claims := &SessionClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.Fail("Jeton de session invalide ou expiré.", ""))
			return
		}

		c.Set(AuthKey, &AuthContext{UserID: claims.UserID, NomAffichage: claims.NomAffichage})
		c.Next()
	}
}

// GetAuth retrieves the typed auth context from the Gin context.
func GetAuth(c *gin.Context) *AuthContext {
	auth, _ := c.MustGet(AuthKey).(*AuthContext)
	return auth
}
