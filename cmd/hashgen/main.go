// hashgen genera pares salt/hash Argon2id compatibles con blockvisor-api, sin tocar la base.
//
// Uso: go run ./cmd/hashgen [-p password] [-s salt_base64] [-c cantidad]
// Cada par se imprime como una línea JSON {"salt": ..., "hash": ...} en base64 sin padding.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jhoicas/blockvisor-setup/internal/application/dto"
	"github.com/jhoicas/blockvisor-setup/internal/interfaces/cli"
	"github.com/jhoicas/blockvisor-setup/pkg/passhash"
)

func main() {
	opts, err := cli.ParseHashFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}
	password, err := cli.ResolveHashPassword(opts, cli.NewTerminalPrompter())
	if err != nil {
		fmt.Fprintf(os.Stderr, "password: %v\n", err)
		os.Exit(2)
	}

	var salt []byte
	if opts.Salt != "" {
		if salt, err = passhash.DecodeSalt(opts.Salt); err != nil {
			fmt.Fprintf(os.Stderr, "salt: %v\n", err)
			os.Exit(2)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	for i := 0; i < opts.Count; i++ {
		pair, err := passhash.Generate([]byte(password), salt)
		if err != nil {
			fmt.Fprintf(os.Stderr, "generar hash: %v\n", err)
			os.Exit(1)
		}
		if err := enc.Encode(dto.HashResponse{Salt: pair.Salt, Hash: pair.Hash}); err != nil {
			fmt.Fprintf(os.Stderr, "escribir salida: %v\n", err)
			os.Exit(1)
		}
	}
}
