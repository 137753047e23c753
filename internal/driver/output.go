package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"c0/internal/program"
	"c0/internal/project"
)

// OutputPath is where the artifact for src goes inside outDir.
func OutputPath(outDir, src string, emit project.Emit) string {
	base := filepath.Base(src)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return filepath.Join(outDir, base+emit.Ext())
}

// WriteArtifact stores prog as the chosen artifact kind and returns the
// written path. The file is replaced atomically.
func WriteArtifact(outDir, src string, prog *program.Program, emit project.Emit) (string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return "", err
	}
	dst := OutputPath(outDir, src, emit)
	f, err := os.CreateTemp(outDir, ".tmp-*")
	if err != nil {
		return "", err
	}
	tmp := f.Name()

	if emit == project.EmitText {
		err = program.WriteListing(f, prog)
	} else {
		err = program.Encode(f, prog)
	}
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp, dst)
	}
	if err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", dst, err)
	}
	return dst, nil
}

// ReadArtifact decodes a binary artifact written by WriteArtifact.
func ReadArtifact(path string) (*program.Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	prog, err := program.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return prog, nil
}
