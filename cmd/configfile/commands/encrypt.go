package commands

import (
	"encoding/hex"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/wjaoss/x/lib/security"
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt SRC DEST",
	Short: "Encrypt a configuration file with --key",
	Long: `Encrypt SRC with the --key and write it hex encoded to DEST. The result can
be used as a source with the same --key.`,
	Args: cobra.ExactArgs(2),
	RunE: runEncrypt,
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	if configKey == "" {
		return errors.New("encrypt requires --key")
	}

	key, err := hex.DecodeString(configKey)
	if err != nil {
		return err
	}

	// #nosec
	plainText, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	cipherText, err := security.Encrypt(key, plainText)
	if err != nil {
		return err
	}

	encoded := []byte(hex.EncodeToString(cipherText))
	return os.WriteFile(args[1], encoded, 0o600)
}
