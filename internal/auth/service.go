package auth

import "time"

// Service issues and verifies session tokens for authenticated accounts.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewService builds a token service from the configured secret and lifetime.
func NewService(secret string, ttl time.Duration) *Service {
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Token is an issued session token plus its remaining lifetime in seconds.
type Token struct {
	Value     string
	ExpiresIn int64
}

// Issue signs a session token bound to the given username.
func (s *Service) Issue(username string) (Token, error) {
	now := s.now()
	claims := Claims{
		Subject:   username,
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.ttl).Unix(),
	}
	signed, err := Sign(claims, s.secret)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresIn: int64(s.ttl.Seconds())}, nil
}

// Verify checks the token and returns the username it was issued for.
func (s *Service) Verify(token string) (string, error) {
	claims, err := Parse(token, s.secret, s.now())
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
