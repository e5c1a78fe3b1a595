package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	id "grantflow/pkg/domain"
	dErrors "grantflow/pkg/domain-errors"
	"grantflow/pkg/platform/middleware/auth"
)

// tokenClaims is the JWT claim set for grantflow access tokens. Roles ride in
// the token so stateless deployments can skip the role store on hot paths.
type tokenClaims struct {
	ActorID string   `json:"actor_id"`
	Roles   []string `json:"roles,omitempty"`
	jwt.RegisteredClaims
}

// JWTService creates and validates access tokens.
type JWTService struct {
	signingKey []byte
	issuer     string
}

func NewJWTService(signingKey, issuer string) *JWTService {
	return &JWTService{signingKey: []byte(signingKey), issuer: issuer}
}

// GenerateAccessToken signs a token for the actor with the given roles.
func (s *JWTService) GenerateAccessToken(actorID id.UserID, roles []id.Role, expiresIn time.Duration) (string, error) {
	rawRoles := make([]string, 0, len(roles))
	for _, r := range roles {
		rawRoles = append(rawRoles, r.String())
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, tokenClaims{
		ActorID: actorID.String(),
		Roles:   rawRoles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// ValidateToken implements auth.TokenValidator.
func (s *JWTService) ValidateToken(tokenString string) (*auth.Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token has expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	if !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}

	actorID, err := id.ParseUserID(claims.ActorID)
	if err != nil {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid actor claim")
	}
	roles := make([]id.Role, 0, len(claims.Roles))
	for _, raw := range claims.Roles {
		roles = append(roles, id.Role(raw))
	}
	return &auth.Claims{ActorID: actorID, Roles: roles}, nil
}
