package verification

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	codeTTL  = 10 * time.Minute
	tokenTTL = 30 * time.Minute
)

var (
	ErrCodeMismatch = errors.New("verification code mismatch")
	ErrTokenInvalid = errors.New("verification token invalid or expired")
)

// CodeSender entrega o código ao cliente (e-mail hoje; o canal é indiferente).
type CodeSender interface {
	SendCode(email string, code string) error
}

// Service guarda códigos e tokens de verificação de contato em redis, com TTL.
// O token emitido é a prova que o fluxo de reserva exige antes de criar.
type Service struct {
	rdb    *redis.Client
	sender CodeSender
}

func NewService(rdb *redis.Client, sender CodeSender) *Service {
	return &Service{rdb: rdb, sender: sender}
}

// RequestCode gera um código de 6 dígitos para o e-mail e o envia.
func (s *Service) RequestCode(ctx context.Context, email string) error {
	email = normalize(email)

	code, err := sixDigits()
	if err != nil {
		return err
	}

	if err := s.rdb.Set(ctx, codeKey(email), code, codeTTL).Err(); err != nil {
		return err
	}

	return s.sender.SendCode(email, code)
}

// Verify troca um código correto por um token de uso posterior.
// O código é consumido na primeira tentativa correta.
func (s *Service) Verify(ctx context.Context, email string, code string) (string, error) {
	email = normalize(email)

	stored, err := s.rdb.Get(ctx, codeKey(email)).Result()
	if err != nil {
		return "", ErrCodeMismatch
	}
	if stored != strings.TrimSpace(code) {
		return "", ErrCodeMismatch
	}

	s.rdb.Del(ctx, codeKey(email))

	token := uuid.NewString()
	if err := s.rdb.Set(ctx, tokenKey(token), email, tokenTTL).Err(); err != nil {
		return "", err
	}

	return token, nil
}

// Check valida que o token pertence ao e-mail informado.
func (s *Service) Check(ctx context.Context, email string, token string) error {
	if token == "" {
		return ErrTokenInvalid
	}

	stored, err := s.rdb.Get(ctx, tokenKey(token)).Result()
	if err != nil {
		return ErrTokenInvalid
	}

	if stored != normalize(email) {
		return ErrTokenInvalid
	}

	return nil
}

func normalize(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func codeKey(email string) string {
	return fmt.Sprintf("verify:code:%s", email)
}

func tokenKey(token string) string {
	return fmt.Sprintf("verify:token:%s", token)
}

func sixDigits() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
