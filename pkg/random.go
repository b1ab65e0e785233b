package pkg

import (
	"math/rand"
	"time"
)

const codeLetters = "abcdefghijklmnopqrstuvwxyz0123456789"

func init() {
	rand.Seed(time.Now().UnixNano())
}

// RandString returns a lowercase alphanumeric code of length n.
func RandString(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeLetters[rand.Intn(len(codeLetters))]
	}
	return string(b)
}
