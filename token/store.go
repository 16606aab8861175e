package token

import (
	"encoding/json"
	"os"

	"github.com/pkg/errors"
)

// Store reads and writes an AddressMap as a flat JSON object.
type Store struct {
	Path string
}

func NewStore(path string) *Store {
	return &Store{Path: path}
}

func (s *Store) Load() (AddressMap, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrap(err, "read token file")
	}
	var tokens AddressMap
	if err := json.Unmarshal(raw, &tokens); err != nil {
		return nil, errors.Wrapf(err, "decode token file %s", s.Path)
	}
	if tokens == nil {
		// A literal null
		tokens = make(AddressMap)
	}
	return tokens, nil
}

// Save overwrites the file with the full map.
func (s *Store) Save(tokens AddressMap) error {
	raw, err := json.Marshal(tokens)
	if err != nil {
		return errors.Wrap(err, "encode tokens")
	}
	if err := os.WriteFile(s.Path, raw, 0o644); err != nil {
		return errors.Wrap(err, "write token file")
	}
	return nil
}
