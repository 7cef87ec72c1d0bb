package passhash_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	"github.com/jhoicas/blockvisor-setup/pkg/passhash"
)

var fixedSalt = []byte("0123456789abcdef")

// failingReader simula una fuente de aleatoriedad agotada.
type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy exhausted") }

// TestDefaultParams_ContratoBlockvisor fija los parámetros que espera el verificador externo.
func TestDefaultParams_ContratoBlockvisor(t *testing.T) {
	assert.Equal(t, uint32(2), passhash.DefaultParams.Time)
	assert.Equal(t, uint32(19456), passhash.DefaultParams.Memory)
	assert.Equal(t, uint8(1), passhash.DefaultParams.Threads)
	assert.Equal(t, uint32(16), passhash.DefaultParams.SaltLen)
	assert.Equal(t, uint32(32), passhash.DefaultParams.KeyLen)
}

// TestGenerate_CoincideConArgon2id verifica byte a byte contra argon2.IDKey con los costos fijos.
func TestGenerate_CoincideConArgon2id(t *testing.T) {
	enc, err := passhash.Generate([]byte("correct horse"), fixedSalt)
	require.NoError(t, err)

	want := argon2.IDKey([]byte("correct horse"), fixedSalt, 2, 19456, 1, 32)
	assert.Equal(t, base64.RawStdEncoding.EncodeToString(want), enc.Hash)
	assert.Equal(t, base64.RawStdEncoding.EncodeToString(fixedSalt), enc.Salt)
}

// Par de referencia calculado fuera de Go (Argon2id RFC 9106, t=2, m=19456, p=1, 32 bytes)
// para "correct horse" con salt "0123456789abcdef".
const (
	goldenSalt = "MDEyMzQ1Njc4OWFiY2RlZg"
	goldenHash = "rk2Mi3E4dgRMg0fHaYaptWVZRKqs//6b6k3/nntqGJk"
)

func TestGenerate_VectorDeReferencia(t *testing.T) {
	enc, err := passhash.Generate([]byte("correct horse"), fixedSalt)
	require.NoError(t, err)
	assert.Equal(t, passhash.Encoded{Salt: goldenSalt, Hash: goldenHash}, enc)

	ok, err := passhash.Verify([]byte("correct horse"), passhash.Encoded{Salt: goldenSalt, Hash: goldenHash})
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestGenerate_Determinista(t *testing.T) {
	a, err := passhash.Generate([]byte("correct horse"), fixedSalt)
	require.NoError(t, err)
	b, err := passhash.Generate([]byte("correct horse"), fixedSalt)
	require.NoError(t, err)
	assert.Equal(t, a, b, "mismo password y salt deben producir el mismo par")
}

// TestGenerate_SinPadding decodifica sin '=' y recupera 16 y 32 bytes.
func TestGenerate_SinPadding(t *testing.T) {
	enc, err := passhash.Generate([]byte("correct horse"), nil)
	require.NoError(t, err)

	assert.False(t, strings.Contains(enc.Salt, "="))
	assert.False(t, strings.Contains(enc.Hash, "="))

	salt, err := base64.RawStdEncoding.DecodeString(enc.Salt)
	require.NoError(t, err)
	assert.Len(t, salt, 16)

	hash, err := base64.RawStdEncoding.DecodeString(enc.Hash)
	require.NoError(t, err)
	assert.Len(t, hash, 32)
}

func TestGenerate_SaltAleatorioDistinto(t *testing.T) {
	a, err := passhash.Generate([]byte("correct horse"), nil)
	require.NoError(t, err)
	b, err := passhash.Generate([]byte("correct horse"), nil)
	require.NoError(t, err)

	assert.NotEqual(t, a.Salt, b.Salt)
	assert.NotEqual(t, a.Hash, b.Hash)
}

func TestGenerate_PasswordVacio(t *testing.T) {
	_, err := passhash.Generate(nil, nil)
	assert.ErrorIs(t, err, passhash.ErrEmptyPassword)

	_, err = passhash.Generate([]byte{}, fixedSalt)
	assert.ErrorIs(t, err, passhash.ErrEmptyPassword)
}

func TestGenerate_SaltLongitudInvalida(t *testing.T) {
	_, err := passhash.Generate([]byte("pw"), []byte("short"))
	assert.ErrorIs(t, err, passhash.ErrInvalidSalt)
}

func TestGenerate_FuenteAleatoriaFalla(t *testing.T) {
	h := passhash.NewHasher(passhash.DefaultParams, failingReader{})
	_, err := h.Generate([]byte("pw"), nil)
	assert.ErrorIs(t, err, passhash.ErrEntropy)
}

func TestGenerate_FuenteAleatoriaInyectada(t *testing.T) {
	h := passhash.NewHasher(passhash.DefaultParams, bytes.NewReader(fixedSalt))
	got, err := h.Generate([]byte("correct horse"), nil)
	require.NoError(t, err)

	want, err := passhash.Generate([]byte("correct horse"), fixedSalt)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestVerify(t *testing.T) {
	enc, err := passhash.Generate([]byte("correct horse"), nil)
	require.NoError(t, err)

	ok, err := passhash.Verify([]byte("correct horse"), enc)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = passhash.Verify([]byte("battery staple"), enc)
	require.NoError(t, err)
	assert.False(t, ok)
}

// TestVerify_ToleraPadding acepta pares producidos por codificadores con '='.
func TestVerify_ToleraPadding(t *testing.T) {
	enc, err := passhash.Generate([]byte("correct horse"), fixedSalt)
	require.NoError(t, err)

	padded := passhash.Encoded{
		Salt: base64.StdEncoding.EncodeToString(fixedSalt),
		Hash: enc.Hash + "=",
	}
	ok, err := passhash.Verify([]byte("correct horse"), padded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerify_HashCorrupto(t *testing.T) {
	_, err := passhash.Verify([]byte("pw"), passhash.Encoded{Salt: "AAAAAAAAAAAAAAAAAAAAAA", Hash: "!!"})
	assert.ErrorIs(t, err, passhash.ErrInvalidHash)
}

func TestDecodeSalt(t *testing.T) {
	raw := base64.RawStdEncoding.EncodeToString(fixedSalt)
	padded := base64.StdEncoding.EncodeToString(fixedSalt)

	for _, in := range []string{raw, padded} {
		got, err := passhash.DecodeSalt(in)
		require.NoError(t, err, in)
		assert.Equal(t, fixedSalt, got)
	}

	_, err := passhash.DecodeSalt("")
	assert.ErrorIs(t, err, passhash.ErrInvalidSalt)
	_, err = passhash.DecodeSalt("no-es-base64*")
	assert.ErrorIs(t, err, passhash.ErrInvalidSalt)
}
