package bootstrap

import (
	"fmt"
	"io"

	"github.com/jhoicas/blockvisor-setup/internal/domain"
)

const (
	// provisioningTokenLen mismo formato que los tokens que emite blockvisor-api (12 alfanuméricos).
	provisioningTokenLen = 12
	generatedPasswordLen = 24

	alphanumeric = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

// randomString genera n caracteres alfanuméricos sin sesgo de módulo (rechaza bytes >= 248).
func randomString(r io.Reader, n int) (string, error) {
	const limit = 256 - 256%len(alphanumeric)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", fmt.Errorf("%w: %w", domain.ErrEntropySource, err)
		}
		for _, b := range buf {
			if int(b) >= limit {
				continue
			}
			out = append(out, alphanumeric[int(b)%len(alphanumeric)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
