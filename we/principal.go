package we

import "context"

// Principal is an identity that has already been authenticated upstream.
type Principal struct {
	Subject string         `json:"sub"`
	Issuer  string         `json:"iss,omitempty"`
	Roles   []string       `json:"roles,omitempty"`
	Claims  map[string]any `json:"claims,omitempty"`
}

func (p Principal) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

func (p Principal) clone() Principal {
	c := Principal{Subject: p.Subject, Issuer: p.Issuer}
	if p.Roles != nil {
		c.Roles = append([]string(nil), p.Roles...)
	}
	if p.Claims != nil {
		c.Claims = make(map[string]any, len(p.Claims))
		for k, v := range p.Claims {
			c.Claims[k] = v
		}
	}
	return c
}

type principalKey struct{}

// WithPrincipal attaches an authenticated principal to ctx. Authentication
// middleware calls this; the command pipeline only reads it back.
func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal.clone())
}

func PrincipalFrom(ctx context.Context) (Principal, bool) {
	if ctx == nil {
		return Principal{}, false
	}
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
