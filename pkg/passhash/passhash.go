// Package passhash genera hashes Argon2id compatibles con el verificador de blockvisor-api.
//
// Los parámetros y la codificación son un contrato con el servicio externo:
// cualquier cambio deja todos los hashes generados sin poder verificarse.
package passhash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Errores del generador.
var (
	ErrEmptyPassword = errors.New("passhash: password vacío")
	ErrInvalidSalt   = errors.New("passhash: salt inválido")
	ErrEntropy       = errors.New("passhash: fuente de aleatoriedad no disponible")
	ErrInvalidHash   = errors.New("passhash: hash inválido")
)

// Params costos de Argon2id.
type Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

// DefaultParams son los valores por defecto del crate argon2 que usa blockvisor-api (19 MiB).
var DefaultParams = Params{
	Time:    2,
	Memory:  19456,
	Threads: 1,
	SaltLen: 16,
	KeyLen:  32,
}

// Encoded par (salt, hash) en base64 estándar sin padding.
type Encoded struct {
	Salt string
	Hash string
}

// Hasher genera hashes con parámetros y fuente aleatoria inyectables.
type Hasher struct {
	params Params
	rand   io.Reader
}

// NewHasher construye un Hasher. Si r es nil se usa crypto/rand.
func NewHasher(p Params, r io.Reader) *Hasher {
	if r == nil {
		r = rand.Reader
	}
	return &Hasher{params: p, rand: r}
}

var defaultHasher = NewHasher(DefaultParams, nil)

// Generate hashea password con los parámetros por defecto. Si salt es nil se generan 16 bytes aleatorios.
func Generate(password, salt []byte) (Encoded, error) {
	return defaultHasher.Generate(password, salt)
}

// Verify comprueba password contra un par codificado con los parámetros por defecto.
func Verify(password []byte, enc Encoded) (bool, error) {
	return defaultHasher.Verify(password, enc)
}

// Generate deriva el hash Argon2id. Un salt suministrado debe tener exactamente SaltLen bytes.
func (h *Hasher) Generate(password, salt []byte) (Encoded, error) {
	if len(password) == 0 {
		return Encoded{}, ErrEmptyPassword
	}
	if salt == nil {
		salt = make([]byte, h.params.SaltLen)
		if _, err := io.ReadFull(h.rand, salt); err != nil {
			return Encoded{}, fmt.Errorf("%w: %w", ErrEntropy, err)
		}
	} else if uint32(len(salt)) != h.params.SaltLen {
		return Encoded{}, fmt.Errorf("%w: se esperaban %d bytes, se recibieron %d", ErrInvalidSalt, h.params.SaltLen, len(salt))
	}
	key := h.derive(password, salt)
	return Encoded{
		Salt: base64.RawStdEncoding.EncodeToString(salt),
		Hash: base64.RawStdEncoding.EncodeToString(key),
	}, nil
}

// Verify recalcula el hash con el salt almacenado y compara en tiempo constante.
func (h *Hasher) Verify(password []byte, enc Encoded) (bool, error) {
	salt, err := DecodeSalt(enc.Salt)
	if err != nil {
		return false, err
	}
	want, err := decode(enc.Hash)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidHash, err)
	}
	if uint32(len(want)) != h.params.KeyLen {
		return false, ErrInvalidHash
	}
	if len(password) == 0 {
		return false, ErrEmptyPassword
	}
	got := h.derive(password, salt)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func (h *Hasher) derive(password, salt []byte) []byte {
	return argon2.IDKey(password, salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)
}

// DecodeSalt decodifica un salt en base64 estándar, con o sin padding.
func DecodeSalt(s string) ([]byte, error) {
	b, err := decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSalt, err)
	}
	if len(b) == 0 {
		return nil, ErrInvalidSalt
	}
	return b, nil
}

// decode tolera el padding '=' que otros clientes sí incluyen.
func decode(s string) ([]byte, error) {
	return base64.RawStdEncoding.DecodeString(strings.TrimRight(strings.TrimSpace(s), "="))
}
