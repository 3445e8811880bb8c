package auth

import "time"

// NewTestJWTService creates a JWT service with an injectable time function
// for deterministic tests. It bypasses the secret length check deliberately
// so tests can use short, readable secrets.
func NewTestJWTService(secret string, timeFunc func() time.Time) JWTService {
	if timeFunc == nil {
		timeFunc = time.Now
	}
	return &hmacJWTService{
		signingKey: []byte(secret),
		timeFunc:   timeFunc,
	}
}
