package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// sessionTokenBytes — размер токена сессии: 256 бит случайности.
const sessionTokenBytes = 32

// NewSessionToken выпускает непрозрачный токен сессии: 32 случайных байта в hex.
// Токен не несёт в себе никаких данных, его смысл определяется только записью
// в таблице sessions, поэтому logout сводится к удалению этой записи.
func NewSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("token: не удалось получить случайные байты: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewVerificationCode выпускает 6-значный код, равномерно распределённый
// в диапазоне [100000, 999999].
func NewVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", fmt.Errorf("token: не удалось сгенерировать код: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
