package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Verifier はIdPのIDトークンを検証します
type Verifier struct {
	config Config
	parser *jwt.Parser
}

// NewVerifier は新しいVerifierを作成します
func NewVerifier(cfg Config) (*Verifier, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithLeeway(cfg.Leeway),
		jwt.WithExpirationRequired(),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if len(cfg.Audience) > 0 {
		opts = append(opts, jwt.WithAudience(cfg.Audience[0]))
	}

	return &Verifier{config: cfg, parser: jwt.NewParser(opts...)}, nil
}

// Verify はトークンを検証しクレームを返します
func (v *Verifier) Verify(tokenString string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	token, err := v.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSigningMethod, token.Header["alg"])
		}
		return []byte(v.config.SecretKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}

	return claims, nil
}

// Identity はIssueに渡すユーザー情報です
type Identity struct {
	UserID  string
	Name    string
	Email   string
	Picture string
}

// Issue は同じ鍵でIDトークンを発行します（ローカル開発・テスト用）
func (v *Verifier) Issue(id Identity) (string, error) {
	now := time.Now()
	expiry := v.config.TokenExpiry
	if expiry <= 0 {
		expiry = time.Hour
	}

	claims := IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    v.config.Issuer,
			Subject:   id.UserID,
			Audience:  v.config.Audience,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Name:    id.Name,
		Email:   id.Email,
		Picture: id.Picture,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(v.config.SecretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign identity token: %w", err)
	}
	return token, nil
}
