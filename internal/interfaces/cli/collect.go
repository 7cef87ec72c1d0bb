package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/blockvisor-setup/internal/application/dto"
	"github.com/jhoicas/blockvisor-setup/internal/domain"
)

// CollectSeedRequest arma la entrada del bootstrap. El password se toma, en orden, de --password (o env),
// de --password-file o del prompter. Los demás campos se validan en el caso de uso.
func CollectSeedRequest(o SetupOptions, p Prompter) (dto.SeedRequest, error) {
	password, err := resolveSecret(o.Password, o.PasswordFile, p, "Password del administrador")
	if err != nil {
		return dto.SeedRequest{}, err
	}
	return dto.SeedRequest{
		FirstName:        o.FirstName,
		LastName:         o.LastName,
		Email:            o.Email,
		Password:         password,
		TestUserPassword: o.TestPassword,
	}, nil
}

// ResolveHashPassword igual que CollectSeedRequest pero para cmd/hashgen.
func ResolveHashPassword(o HashOptions, p Prompter) (string, error) {
	return resolveSecret(o.Password, o.PasswordFile, p, "Password")
}

func resolveSecret(value, file string, p Prompter, label string) (string, error) {
	if value != "" {
		return value, nil
	}
	if file != "" {
		return readSecretFile(file)
	}
	if p == nil {
		return "", fmt.Errorf("%w: password requerido", domain.ErrInvalidInput)
	}
	s, err := p.Secret(label)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	if s == "" {
		return "", fmt.Errorf("%w: password vacío", domain.ErrInvalidInput)
	}
	return s, nil
}

// readSecretFile lee el secreto quitando los saltos de línea finales (echo/printf los agregan).
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("leer %s: %w", path, err)
	}
	s := strings.TrimRight(string(data), "\r\n")
	if s == "" {
		return "", fmt.Errorf("%w: el archivo %s está vacío", domain.ErrInvalidInput, path)
	}
	return s, nil
}
