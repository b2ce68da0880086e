package plan

import (
	"fmt"
	"io"

	json "github.com/goccy/go-json"
	"github.com/vmihailenco/msgpack/v5"
)

// Set is the output of compiling one schema batch.
type Set struct {
	Records  []*Plan `json:"records" msgpack:"records"`
	Messages []*Plan `json:"messages" msgpack:"messages"`
}

// Message returns the message plan with the given name.
func (s *Set) Message(name string) (*Plan, bool) {
	for _, p := range s.Messages {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Record returns the record plan with the given name.
func (s *Set) Record(name string) (*Plan, bool) {
	for _, p := range s.Records {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Verify checks every plan in the set.
func (s *Set) Verify() error {
	for _, p := range s.Records {
		if p.Repeated != nil || p.Header != nil {
			return fmt.Errorf("record %s must not have a header or repeated region", p.Name)
		}
		if err := p.Verify(); err != nil {
			return err
		}
	}
	for _, p := range s.Messages {
		if err := p.Verify(); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the set as indented JSON.
func WriteJSON(w io.Writer, s *Set) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode plan json: %w", err)
	}
	return nil
}

// ReadJSON reads a set written by WriteJSON and verifies it.
func ReadJSON(r io.Reader) (*Set, error) {
	var s Set
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode plan json: %w", err)
	}
	if err := s.Verify(); err != nil {
		return nil, err
	}
	return &s, nil
}

// WriteMsgpack writes the set in msgpack form, the cache format consumed by
// code generation.
func WriteMsgpack(w io.Writer, s *Set) error {
	if err := msgpack.NewEncoder(w).Encode(s); err != nil {
		return fmt.Errorf("encode plan msgpack: %w", err)
	}
	return nil
}

// ReadMsgpack reads a set written by WriteMsgpack and verifies it.
func ReadMsgpack(r io.Reader) (*Set, error) {
	var s Set
	if err := msgpack.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode plan msgpack: %w", err)
	}
	if err := s.Verify(); err != nil {
		return nil, err
	}
	return &s, nil
}
