package hash

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigest(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		digest string
	}{
		{"empty input", "", "ef46db3751d8e999"},
		{"short input", "test", "4fdcca5ddb678139"},
		{"long input", "this is a longer test string to hash", "69275f7f7ee59dbd"},
		{"another input", "another test string", "212a22f593810bec"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.digest, Digest([]byte(tt.data)))
		})
	}

	assert.Equal(t, Digest(nil), Digest([]byte{}))
	assert.Len(t, Digest([]byte{0x01}), 16)
}

func BenchmarkDigest(b *testing.B) {
	data := make([]byte, 4096)
	rand.New(rand.NewSource(1)).Read(data)
	b.ResetTimer()
	for b.Loop() {
		Digest(data)
	}
}
