// Package jwt реализует проверку bearer-токенов для шлюза отчётов.
//
// Шлюз только проверяет токен и извлекает subject; выпуск токенов остаётся заботой
// внешнего сервиса идентификации. GenerateToken существует для локального
// запуска и тестов и подписывает токен тем же секретом.
package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken возвращается для любого токена, не прошедшего проверку.
var ErrInvalidToken = errors.New("invalid token")

// Identity описывает результат успешной проверки токена.
type Identity struct {
	Subject string
}

// Verifier проверяет токен и возвращает владельца.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Claims описывает данные, хранящиеся в JWT.
type Claims struct {
	Username             string `json:"username,omitempty"` // Имя пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (sub, exp, iat)
}

// HMACVerifier проверяет токены, подписанные HS256 общим секретом.
type HMACVerifier struct {
	secretKey []byte        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни выпускаемых токенов.
}

// NewHMACVerifier создаёт верификатор на основе секретного ключа и TTL.
func NewHMACVerifier(secretKey string, ttl time.Duration) *HMACVerifier {
	return &HMACVerifier{
		secretKey: []byte(secretKey),
		tokenTTL:  ttl,
	}
}

// GenerateToken создаёт токен для subject, подписывая его секретным ключом.
func (v *HMACVerifier) GenerateToken(subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		Username: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(v.tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secretKey)
}

// Verify проверяет подпись, алгоритм и срок действия токена.
func (v *HMACVerifier) Verify(_ context.Context, tokenStr string) (Identity, error) {
	const op = "jwt.Verify"
	if tokenStr == "" {
		return Identity{}, fmt.Errorf("%s: empty token: %w", op, ErrInvalidToken)
	}

	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(_ *jwt.Token) (any, error) {
		return v.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, fmt.Errorf("%s: %w: %w", op, ErrInvalidToken, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return Identity{}, fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.Username
	}
	return Identity{Subject: subject}, nil
}
