package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wjaoss/x/lib/security"

	"github.com/wjaoss/configfile"
)

// sourceFor picks the source type from the file extension.
func sourceFor(path string, decoders ...configfile.Decoder) configfile.Source {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return configfile.YAML(path, decoders...)
	case ".json", ".jsonc":
		return configfile.JSON(path, decoders...)
	case ".toml":
		return configfile.TOML(path, decoders...)
	case ".env":
		return configfile.Env(path, decoders...)
	default:
		return configfile.File(path, decoders...)
	}
}

func sources(paths []string) ([]configfile.Source, error) {
	decoders, err := keyDecoders()
	if err != nil {
		return nil, err
	}

	srcs := make([]configfile.Source, 0, len(paths))
	for _, p := range paths {
		srcs = append(srcs, sourceFor(p, decoders...))
	}
	return srcs, nil
}

func keyDecoders() ([]configfile.Decoder, error) {
	if configKey == "" {
		return nil, nil
	}

	key, err := hex.DecodeString(configKey)
	if err != nil {
		return nil, fmt.Errorf("invalid --key: %w", err)
	}

	return []configfile.Decoder{configfile.DecoderFunc(func(src []byte) []byte {
		return decrypt(key, src)
	})}, nil
}

// decrypt returns the plain text of a hex encoded cipher text, or src as it
// is when it is not one.
func decrypt(key, src []byte) []byte {
	cipherText, err := hex.DecodeString(strings.TrimSpace(string(src)))
	if err != nil {
		return src
	}

	plainText, err := security.Decrypt(key, cipherText)
	if err != nil {
		return src
	}

	return plainText
}

func storeOptions(extra ...configfile.Option) []configfile.Option {
	opts := []configfile.Option{
		configfile.IgnoreCase(!caseSensitive),
		configfile.Subsections(!flat),
		configfile.InheritOptions(inherit),
		configfile.Interpolation(interpolate),
	}
	return append(opts, extra...)
}

// openStore builds a store from the -f sources.
func openStore(extra ...configfile.Option) (*configfile.ConfigFile, error) {
	srcs, err := sources(sourceFiles)
	if err != nil {
		return nil, err
	}

	return configfile.New(storeOptions(append(extra, configfile.WithSource(srcs...))...)...)
}

// openTarget builds a store from a single INI-style file, empty when the
// file does not exist yet.
func openTarget(target string) (*configfile.ConfigFile, error) {
	c, err := configfile.New(storeOptions()...)
	if err != nil {
		return nil, err
	}

	if err := c.Upgrade(configfile.File(target)); err != nil && !errors.Is(err, configfile.ErrNotExist) {
		return nil, err
	}
	return c, nil
}

// splitOption splits "section.sub.option" into its section path and option.
func splitOption(path string) ([]string, string) {
	parts := strings.Split(path, ".")
	return parts[:len(parts)-1], parts[len(parts)-1]
}

func splitSection(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, ".")
}

func readExisting(path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return b, err
}
