package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	t.Parallel()

	hash, err := Hash("Sup3rSecret")
	require.NoError(t, err)

	assert.True(t, Verify("Sup3rSecret", hash))
	assert.False(t, Verify("sup3rsecret", hash))
	assert.False(t, Verify("", hash))
}

func TestHashUsesRandomSalt(t *testing.T) {
	t.Parallel()

	h1, err := Hash("same-input")
	require.NoError(t, err)
	h2, err := Hash("same-input")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2)
	assert.True(t, Verify("same-input", h1))
	assert.True(t, Verify("same-input", h2))
}

func TestVerifyMalformedHash(t *testing.T) {
	t.Parallel()

	cases := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=65536,t=3,p=2$only-one-part",
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$!!!$aGFzaA",
		"$argon2id$v=19$m=65536,t=3,p=2$c2FsdA$!!!",
	}
	for _, h := range cases {
		assert.False(t, Verify("whatever", h), "hash %q", h)
	}
}
