package service

import "github.com/google/uuid"

// flickrAlphabet is the base58 alphabet without 0, O, I and l, so tokens
// survive being read aloud or retyped.
const flickrAlphabet = "123456789abcdefghijkmnopqrstuvwxyzABCDEFGHJKLMNPQRSTUVWXYZ"

// NewShortToken returns a URL-safe, high-entropy token: a fresh 128-bit UUID
// base58-encoded. Variable length, usually 22 characters — well under the 32
// a hex rendering of the same input would need. Collision odds are those of
// a random UUID.
func NewShortToken() string {
	id := uuid.New()
	return base58Encode(id[:])
}

// base58Encode converts b (big-endian) to the flickr base58 alphabet.
func base58Encode(b []byte) string {
	zeros := 0
	for zeros < len(b) && b[zeros] == 0 {
		zeros++
	}

	// digits accumulates the base58 representation little-endian.
	digits := make([]byte, 0, len(b)*138/100+1)
	for _, c := range b[zeros:] {
		carry := int(c)
		for i := range digits {
			carry += int(digits[i]) * 256
			digits[i] = byte(carry % 58)
			carry /= 58
		}
		for carry > 0 {
			digits = append(digits, byte(carry%58))
			carry /= 58
		}
	}

	out := make([]byte, 0, zeros+len(digits))
	for i := 0; i < zeros; i++ {
		out = append(out, flickrAlphabet[0])
	}
	for i := len(digits) - 1; i >= 0; i-- {
		out = append(out, flickrAlphabet[digits[i]])
	}
	return string(out)
}
