package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLength = 16     // длина соли в байтах
	iterations = 100000 // число итераций PBKDF2
	keyLength  = 32     // длина производного ключа в байтах
)

// HashPassword хеширует пароль со случайной солью и возвращает строку
// в формате "соль:хеш".
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	saltHex := hex.EncodeToString(salt)
	hash := pbkdf2.Key([]byte(password), []byte(saltHex), iterations, keyLength, sha256.New)
	return fmt.Sprintf("%s:%s", saltHex, hex.EncodeToString(hash)), nil
}

// VerifyPassword проверяет пароль по сохраненному хешу. Сравнение выполняется
// за постоянное время, чтобы исключить утечку по времени ответа.
func VerifyPassword(password, stored string) bool {
	salt, hashHex, found := strings.Cut(stored, ":")
	if !found {
		return false
	}
	expected, err := hex.DecodeString(hashHex)
	if err != nil || len(expected) == 0 {
		return false
	}
	derived := pbkdf2.Key([]byte(password), []byte(salt), iterations, len(expected), sha256.New)
	return subtle.ConstantTimeCompare(derived, expected) == 1
}
