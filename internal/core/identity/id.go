// Package identity contains the pure rules for the anonymous user token.
// This is part of the Functional Core - no I/O, only pure functions.
package identity

import "fmt"

const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	minNumber = 10000
	maxNumber = 99999
)

// Source is the random source used to generate tokens.
// *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
}

// GenerateUserID returns one uppercase letter followed by a number in [10000, 99999].
func GenerateUserID(src Source) string {
	letter := letters[src.IntN(len(letters))]
	number := minNumber + src.IntN(maxNumber-minNumber+1)
	return fmt.Sprintf("%c%d", letter, number)
}

// IsValidUserID reports whether id has the generated token format.
func IsValidUserID(id string) bool {
	if len(id) != 6 {
		return false
	}
	if id[0] < 'A' || id[0] > 'Z' {
		return false
	}
	if id[1] == '0' {
		return false
	}
	for _, c := range id[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
