package game

import (
	crand "crypto/rand"
	"math/big"
	"math/rand"
)

// GenerateGameCode creates a random game code
func GenerateGameCode() string {
	code := make([]byte, GameCodeLength)
	for i := 0; i < GameCodeLength; i++ {
		n, err := crand.Int(crand.Reader, big.NewInt(int64(len(GameCodeChars))))
		if err != nil {
			// fallback to math/rand if crypto fails
			code[i] = GameCodeChars[rand.Intn(len(GameCodeChars))]
			continue
		}
		code[i] = GameCodeChars[n.Int64()]
	}
	return string(code)
}
