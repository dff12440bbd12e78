package configfile

import (
	"errors"
	"strings"

	"github.com/imdario/mergo"
	"github.com/spf13/pflag"
)

type flagSource struct {
	flags *pflag.FlagSet
}

func (s *flagSource) Load(settings Settings) (*Tree, error) {
	if !s.flags.Parsed() {
		return nil, errors.New("configfile: flags must be parsed before import")
	}

	d := make(map[string]any)

	var err error
	s.flags.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}

		keys := flagPath(f.Name, settings.Subsections)
		reverse(keys)

		var tmp map[string]any
		for i, k := range keys {
			if i == 0 {
				tmp = map[string]any{k: f.Value.String()}
				continue
			}

			tmp = map[string]any{k: tmp}
		}

		err = mergo.Map(&d, tmp)
	})
	if err != nil {
		return nil, err
	}

	return treeFromMap(d)
}

// Flags creates a source from the flags set on the command line. Dots in a
// flag name separate sections and dashes become underscores, so
// --server.read-timeout sets read_timeout in [server].
func Flags(flags *pflag.FlagSet) Source {
	return &flagSource{flags: flags}
}

func flagPath(name string, subsections bool) []string {
	name = strings.ReplaceAll(name, "-", "_")
	if !subsections {
		return []string{name}
	}
	return strings.Split(name, sectionSep)
}

func reverse(ss []string) {
	for i := len(ss)/2 - 1; i >= 0; i-- {
		opp := len(ss) - 1 - i
		ss[i], ss[opp] = ss[opp], ss[i]
	}
}
