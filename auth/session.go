package auth

import (
	"errors"
	"time"

	"custodyserver/common"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims binds a user id to an expiry.
type SessionClaims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// SessionService issues and verifies session tokens.
type SessionService struct {
	keys Keys
	ttl  time.Duration
}

func NewSessionService(keys Keys, ttl time.Duration) *SessionService {
	return &SessionService{keys: keys, ttl: ttl}
}

// Issue signs a session token for userID expiring after the
// configured TTL.
func (s *SessionService) Issue(userID uint) (string, error) {
	claims := &SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.keys.session)
}

// Verify validates the signature and expiry and returns the user id.
// Expiry is checked with 30 seconds of leeway for clock skew.
func (s *SessionService) Verify(tokenString string) (uint, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.keys.session, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithLeeway(30*time.Second),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, common.ErrTokenExpired
		}
		return 0, common.ErrInvalidToken
	}

	if !token.Valid || claims.UserID == 0 {
		return 0, common.ErrInvalidToken
	}

	return claims.UserID, nil
}
