package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/openmargin/annotations-backend/internal/domain"
)

// AssertionIdentity is the claim carried by a verified identity assertion:
// who the user is and which authority vouches for them.
type AssertionIdentity struct {
	Login     string
	Authority string
}

// ClientCredential is one registered client allowed to exchange assertions
// for token pairs. Secret is the HMAC key the client signs assertions with.
type ClientCredential struct {
	ID     string
	Secret string
}

// AssertionVerifier validates externally-signed identity assertions.
// An assertion is a compact HS256 JWS signed with the registered client's
// secret, carrying the user login as subject and the originating authority
// as issuer.
type AssertionVerifier struct {
	clients map[string]ClientCredential
}

// NewAssertionVerifier creates a verifier over the registered clients.
func NewAssertionVerifier(clients []ClientCredential) *AssertionVerifier {
	m := make(map[string]ClientCredential, len(clients))
	for _, c := range clients {
		m[c.ID] = c
	}
	return &AssertionVerifier{clients: m}
}

// Verify checks the assertion signature and claims for the given client.
// Returns domain.ErrUnknownClient if the client id is not registered and
// domain.ErrInvalidAssertion for any signature or claim failure.
func (v *AssertionVerifier) Verify(clientID, assertion string) (*AssertionIdentity, error) {
	client, ok := v.clients[clientID]
	if !ok {
		return nil, fmt.Errorf("client %q: %w", clientID, domain.ErrUnknownClient)
	}

	if assertion == "" {
		return nil, fmt.Errorf("empty assertion: %w", domain.ErrInvalidAssertion)
	}

	token, err := jwt.ParseWithClaims(assertion, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(client.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse assertion: %w: %v", domain.ErrInvalidAssertion, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid assertion claims: %w", domain.ErrInvalidAssertion)
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("assertion missing subject: %w", domain.ErrInvalidAssertion)
	}
	if claims.Issuer == "" {
		return nil, fmt.Errorf("assertion missing issuer: %w", domain.ErrInvalidAssertion)
	}

	return &AssertionIdentity{
		Login:     claims.Subject,
		Authority: claims.Issuer,
	}, nil
}
