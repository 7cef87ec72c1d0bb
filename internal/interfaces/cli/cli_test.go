package cli_test

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/blockvisor-setup/internal/domain"
	"github.com/jhoicas/blockvisor-setup/internal/interfaces/cli"
	"github.com/jhoicas/blockvisor-setup/pkg/config"
)

type fakePrompter struct {
	value string
	err   error
	calls int
}

func (p *fakePrompter) Secret(string) (string, error) {
	p.calls++
	return p.value, p.err
}

func TestParseSetupFlags_Cortos(t *testing.T) {
	o, err := cli.ParseSetupFlags([]string{"-f", "Ada", "-l", "Lovelace", "-e", "ada@example.com", "-p", "correct horse"}, config.SeedConfig{}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, cli.SetupOptions{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Password: "correct horse"}, o)
}

// TestParseSetupFlags_FlagsSobreEntorno los flags ganan sobre los valores de config.
func TestParseSetupFlags_FlagsSobreEntorno(t *testing.T) {
	defaults := config.SeedConfig{AdminFirstName: "Env", AdminLastName: "Apellido", AdminEmail: "env@example.com", TestUserPassword: "tp"}
	o, err := cli.ParseSetupFlags([]string{"--fname", "Ada"}, defaults, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "Ada", o.FirstName)
	assert.Equal(t, "Apellido", o.LastName)
	assert.Equal(t, "env@example.com", o.Email)
	assert.Equal(t, "tp", o.TestPassword)
}

func TestParseSetupFlags_Invalidos(t *testing.T) {
	_, err := cli.ParseSetupFlags([]string{"--desconocido"}, config.SeedConfig{}, io.Discard)
	assert.Error(t, err)

	_, err = cli.ParseSetupFlags([]string{"extra"}, config.SeedConfig{}, io.Discard)
	assert.ErrorContains(t, err, "inesperados")
}

func TestParseHashFlags(t *testing.T) {
	o, err := cli.ParseHashFlags([]string{"-p", "pw", "-s", "MDEyMzQ1Njc4OWFiY2RlZg", "-c", "3"}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, cli.HashOptions{Password: "pw", Salt: "MDEyMzQ1Njc4OWFiY2RlZg", Count: 3}, o)

	o, err = cli.ParseHashFlags(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, o.Count)

	_, err = cli.ParseHashFlags([]string{"-c", "0"}, io.Discard)
	assert.ErrorContains(t, err, "--count")
}

func TestCollectSeedRequest_PasswordPorFlag(t *testing.T) {
	p := &fakePrompter{}
	req, err := cli.CollectSeedRequest(cli.SetupOptions{FirstName: "Ada", Email: "ada@example.com", Password: "pw", TestPassword: "tp"}, p)
	require.NoError(t, err)
	assert.Equal(t, "pw", req.Password)
	assert.Equal(t, "tp", req.TestUserPassword)
	assert.Equal(t, "Ada", req.FirstName)
	assert.Zero(t, p.calls)
}

func TestCollectSeedRequest_PasswordPorArchivo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pw")
	require.NoError(t, os.WriteFile(path, []byte("correct horse\n"), 0o600))

	req, err := cli.CollectSeedRequest(cli.SetupOptions{PasswordFile: path}, nil)
	require.NoError(t, err)
	assert.Equal(t, "correct horse", req.Password)
}

func TestCollectSeedRequest_ArchivoVacio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pw")
	require.NoError(t, os.WriteFile(path, []byte("\r\n"), 0o600))

	_, err := cli.CollectSeedRequest(cli.SetupOptions{PasswordFile: path}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCollectSeedRequest_Prompt(t *testing.T) {
	p := &fakePrompter{value: "desde terminal"}
	req, err := cli.CollectSeedRequest(cli.SetupOptions{}, p)
	require.NoError(t, err)
	assert.Equal(t, "desde terminal", req.Password)
	assert.Equal(t, 1, p.calls)
}

func TestCollectSeedRequest_SinFuente(t *testing.T) {
	_, err := cli.CollectSeedRequest(cli.SetupOptions{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = cli.CollectSeedRequest(cli.SetupOptions{}, &fakePrompter{err: cli.ErrNoTerminal})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorIs(t, err, cli.ErrNoTerminal)

	_, err = cli.CollectSeedRequest(cli.SetupOptions{}, &fakePrompter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestResolveHashPassword(t *testing.T) {
	pw, err := cli.ResolveHashPassword(cli.HashOptions{Password: "pw"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "pw", pw)

	_, err = cli.ResolveHashPassword(cli.HashOptions{PasswordFile: filepath.Join(t.TempDir(), "no-existe")}, nil)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

// TestTerminalPrompter_SinTerminal un archivo regular no es terminal y no se bloquea esperando input.
func TestTerminalPrompter_SinTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()

	p := &cli.TerminalPrompter{In: f, Out: io.Discard}
	_, err = p.Secret("Password")
	assert.ErrorIs(t, err, cli.ErrNoTerminal)
}
