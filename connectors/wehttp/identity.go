package wehttp

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/weegigs/wee-commands-go/we"
)

// IdentityExtractor returns the authenticated principal of a request, if any.
// Extractors never reject a request; a missing or invalid identity simply
// yields no principal.
type IdentityExtractor func(r *http.Request) (we.Principal, bool)

func ContextIdentity(r *http.Request) (we.Principal, bool) {
	return we.PrincipalFrom(r.Context())
}

func NoIdentity(*http.Request) (we.Principal, bool) {
	return we.Principal{}, false
}

func FirstIdentity(extractors ...IdentityExtractor) IdentityExtractor {
	return func(r *http.Request) (we.Principal, bool) {
		for _, extract := range extractors {
			if p, ok := extract(r); ok {
				return p, true
			}
		}
		return we.Principal{}, false
	}
}

const bearerPrefix = "bearer "

// BearerIdentity reads a JWT from the Authorization header. The `sub`, `iss`
// and `roles` claims populate the principal; all claims are kept.
func BearerIdentity(keyFunc jwt.Keyfunc, options ...jwt.ParserOption) IdentityExtractor {
	parser := jwt.NewParser(options...)

	return func(r *http.Request) (we.Principal, bool) {
		header := r.Header.Get("Authorization")
		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			return we.Principal{}, false
		}

		claims := jwt.MapClaims{}
		token, err := parser.ParseWithClaims(strings.TrimSpace(header[len(bearerPrefix):]), claims, keyFunc)
		if err != nil || !token.Valid {
			return we.Principal{}, false
		}

		subject, err := claims.GetSubject()
		if err != nil || subject == "" {
			return we.Principal{}, false
		}
		issuer, _ := claims.GetIssuer()

		return we.Principal{
			Subject: subject,
			Issuer:  issuer,
			Roles:   roles(claims["roles"]),
			Claims:  claims,
		}, true
	}
}

// HMACKey verifies HS256/384/512 signed tokens with secret.
func HMACKey(secret []byte) jwt.Keyfunc {
	return func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	}
}

func roles(value any) []string {
	switch v := value.(type) {
	case string:
		return strings.Fields(v)
	case []any:
		roles := make([]string, 0, len(v))
		for _, role := range v {
			if s, ok := role.(string); ok {
				roles = append(roles, s)
			}
		}
		return roles
	default:
		return nil
	}
}
