package signature

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignKnownAnswer(t *testing.T) {
	// RFC-style known-answer vector, verifiable with any HMAC-SHA256
	// implementation.
	digest := Sign("key", []byte("The quick brown fox jumps over the lazy dog"))
	assert.Equal(t, "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8", digest)
}

func TestSignDeterministic(t *testing.T) {
	body := []byte(`{"MessageID":"msg-001","From":"mario.rossi@example.com"}`)
	first := Sign("postmark-test-secret", body)
	second := Sign("postmark-test-secret", body)

	assert.Equal(t, first, second)
	assert.Equal(t, "c3a0e4be57dddd697375b33de1279418a6482cddd28546930a982f02ba4ec78a", first)
}

func TestVerify(t *testing.T) {
	body := []byte(`{"Subject":"hello"}`)
	sig := Sign("secret", body)

	tests := []struct {
		name   string
		secret string
		body   []byte
		sig    string
		want   bool
	}{
		{"valid signature", "secret", body, sig, true},
		{"wrong secret", "other", body, sig, false},
		{"tampered body", "secret", []byte(`{"Subject":"HELLO"}`), sig, false},
		{"empty signature", "secret", body, "", false},
		{"empty secret", "", body, sig, false},
		{"non-hex signature", "secret", body, "not-hex!", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Verify(tt.secret, tt.body, tt.sig))
		})
	}
}
