package configfile

import (
	"fmt"

	simplejson "github.com/bitly/go-simplejson"
	"github.com/tidwall/jsonc"
)

type jsonSource struct {
	fileRef
}

func (s *jsonSource) Load(settings Settings) (*Tree, error) {
	snap, err := s.read(settings.Fs)
	if err != nil {
		return nil, err
	}

	return parseJSON(snap)
}

// JSON creates a source from a JSON object. Comments and trailing commas are
// allowed. Objects become sections; keys are added in name order.
func JSON(path string, decoder ...Decoder) Source {
	return &jsonSource{fileRef{path: path, decoders: decoder}}
}

func parseJSON(snap *Snapshot) (*Tree, error) {
	j, err := simplejson.NewJson(jsonc.ToJSON(snap.Data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s (%v)", ErrInvalidSource, snap.Name, err)
	}

	data, err := j.Map()
	if err != nil {
		return nil, &InvalidObjectError{Key: snap.Name, Reason: "document root must be an object"}
	}

	return treeFromMap(data)
}
