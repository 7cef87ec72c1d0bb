package cli

import (
	"fmt"
	"io"

	"github.com/spf13/pflag"

	"github.com/jhoicas/blockvisor-setup/pkg/config"
)

// SetupOptions entradas de cmd/setup. Los valores vacíos se completan desde config y, para el password, por prompt.
type SetupOptions struct {
	FirstName    string
	LastName     string
	Email        string
	Password     string
	PasswordFile string
	TestPassword string
}

// ParseSetupFlags parsea los flags de cmd/setup usando defaults como valores por defecto (env/archivo).
func ParseSetupFlags(args []string, defaults config.SeedConfig, usage io.Writer) (SetupOptions, error) {
	var o SetupOptions
	fs := pflag.NewFlagSet("setup", pflag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVarP(&o.FirstName, "fname", "f", defaults.AdminFirstName, "nombre del administrador")
	fs.StringVarP(&o.LastName, "lname", "l", defaults.AdminLastName, "apellido del administrador")
	fs.StringVarP(&o.Email, "email", "e", defaults.AdminEmail, "email del administrador")
	fs.StringVarP(&o.Password, "password", "p", defaults.AdminPassword, "password del administrador (si falta se pide por terminal)")
	fs.StringVar(&o.PasswordFile, "password-file", "", "leer el password del administrador desde un archivo")
	fs.StringVar(&o.TestPassword, "test-password", defaults.TestUserPassword, "password del usuario user@example.com (vacío = aleatorio)")
	if err := fs.Parse(args); err != nil {
		return SetupOptions{}, err
	}
	if fs.NArg() > 0 {
		return SetupOptions{}, fmt.Errorf("argumentos inesperados: %v", fs.Args())
	}
	return o, nil
}

// HashOptions entradas de cmd/hashgen.
type HashOptions struct {
	Password     string
	PasswordFile string
	Salt         string
	Count        int
}

// ParseHashFlags parsea los flags de cmd/hashgen.
func ParseHashFlags(args []string, usage io.Writer) (HashOptions, error) {
	var o HashOptions
	fs := pflag.NewFlagSet("hashgen", pflag.ContinueOnError)
	fs.SetOutput(usage)
	fs.StringVarP(&o.Password, "password", "p", "", "password a hashear (si falta se pide por terminal)")
	fs.StringVar(&o.PasswordFile, "password-file", "", "leer el password desde un archivo")
	fs.StringVarP(&o.Salt, "salt", "s", "", "salt en base64 (si falta se genera uno aleatorio por par)")
	fs.IntVarP(&o.Count, "count", "c", 1, "cantidad de pares salt/hash a generar")
	if err := fs.Parse(args); err != nil {
		return HashOptions{}, err
	}
	if o.Count < 1 {
		return HashOptions{}, fmt.Errorf("--count debe ser al menos 1, se recibió %d", o.Count)
	}
	if fs.NArg() > 0 {
		return HashOptions{}, fmt.Errorf("argumentos inesperados: %v", fs.Args())
	}
	return o, nil
}
