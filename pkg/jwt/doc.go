// Package jwt provides RS256 JSON Web Token signing and validation
// for the conference API.
//
// Keys are RSA PEM files on disk. A service loaded with only the
// public key can validate tokens but not sign them.
//
// # Setup
//
// Create a service from key files:
//
//	service, err := jwt.NewService(jwt.Config{
//	    PrivateKeyPath: "./keys/private.pem",
//	    PublicKeyPath:  "./keys/public.pem",
//	    Issuer:         "pbconferenceapp.dev",
//	    ExpirationMins: 60,
//	})
//
// GenerateKeyPair writes a fresh key pair for development setups.
//
// # Signing
//
// Sign fills in issuer, issued-at and expiry, then signs:
//
//	token, err := service.Sign(jwt.Claims{
//	    Subject:  user.ID,
//	    UserID:   user.ID,
//	    Email:    user.Email,
//	    FullName: user.FullName(),
//	    Role:     string(user.Role),
//	})
//
// # Validation
//
// Validate checks the signature, issuer and expiry and returns the
// decoded claims:
//
//	claims, err := service.Validate(tokenString)
//	if err != nil {
//	    // invalid or expired token
//	}
//	if claims.IsAdmin() {
//	    // admin-only path
//	}
package jwt
