package jwt

import "time"

// Config はJWT設定を定義します
type Config struct {
	SecretKey   string        // HMAC署名用シークレットキー
	Issuer      string        // 発行者（空の場合は検証しない）
	Audience    []string      // 対象者（空の場合は検証しない）
	Leeway      time.Duration // 時刻検証の許容誤差
	TokenExpiry time.Duration // Issueで発行するトークンの有効期限
}

// DefaultConfig はデフォルト設定を返します
func DefaultConfig() Config {
	return Config{
		Leeway:      30 * time.Second,
		TokenExpiry: time.Hour,
	}
}

// Validate は設定を検証します
func (c Config) Validate() error {
	if c.SecretKey == "" {
		return ErrSecretKeyRequired
	}
	if len(c.SecretKey) < 32 {
		return ErrSecretKeyTooShort
	}
	return nil
}
