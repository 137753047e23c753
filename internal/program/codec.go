package program

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// SchemaVersion is bumped whenever the stored layout changes.
const SchemaVersion uint16 = 2

const magic = "c0obj"

var ErrSchema = errors.New("unsupported artifact schema")

type envelope struct {
	Magic   string   `msgpack:"magic"`
	Schema  uint16   `msgpack:"schema"`
	Program *Program `msgpack:"program"`
}

// Encode writes p as a msgpack artifact.
func Encode(w io.Writer, p *Program) error {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(&envelope{Magic: magic, Schema: SchemaVersion, Program: p}); err != nil {
		return fmt.Errorf("encode program: %w", err)
	}
	return nil
}

// Decode reads an artifact written by Encode and validates it.
func Decode(r io.Reader) (*Program, error) {
	var env envelope
	if err := msgpack.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("decode program: %w", err)
	}
	if env.Magic != magic {
		return nil, fmt.Errorf("decode program: not a c0 artifact: %w", ErrSchema)
	}
	if env.Schema != SchemaVersion {
		return nil, fmt.Errorf("decode program: schema %d, want %d: %w", env.Schema, SchemaVersion, ErrSchema)
	}
	if env.Program == nil {
		return nil, fmt.Errorf("decode program: %w", ErrMalformed)
	}
	if err := env.Program.Validate(); err != nil {
		return nil, err
	}
	return env.Program, nil
}
