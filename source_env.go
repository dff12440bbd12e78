package configfile

import (
	"fmt"

	"github.com/joho/godotenv"
)

type envSource struct {
	fileRef
}

func (s *envSource) Load(settings Settings) (*Tree, error) {
	snap, err := s.read(settings.Fs)
	if err != nil {
		return nil, err
	}

	vars, err := godotenv.Unmarshal(string(snap.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", ErrInvalidSource, snap.Name, err)
	}

	return Mapping(vars).Load(settings)
}

// Env creates a source from a dotenv file. Every variable becomes a root
// option, added in name order.
func Env(path string, decoder ...Decoder) Source {
	return &envSource{fileRef{path: path, decoders: decoder}}
}
