package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeImage(t *testing.T, size int) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "image.bin")
	buf := make([]byte, size)
	for i := range buf {
		buf[i] = byte(i)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	return path
}

func TestLoadRoundTrips(t *testing.T) {
	path := writeImage(t, instMemSize+dataMemSize)

	instMem, dataMem, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(instMem) != instMemSize {
		t.Fatalf("expected instMem len %d, got %d", instMemSize, len(instMem))
	}
	if len(dataMem) != dataMemSize {
		t.Fatalf("expected dataMem len %d, got %d", dataMemSize, len(dataMem))
	}
	if instMem[0] != 0 || instMem[1] != 1 {
		t.Fatalf("instMem not read in order: %v", instMem[:4])
	}
	if dataMem[0] != byte(instMemSize) {
		t.Fatalf("dataMem should start where instMem left off, got %d", dataMem[0])
	}
}

func TestLoadFailsOnShortImage(t *testing.T) {
	path := writeImage(t, instMemSize) // missing the data-memory half

	_, _, err := Load(path)
	if err == nil {
		t.Fatalf("expected an error on a short image")
	}
	var loadErr *Error
	if !asError(err, &loadErr) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
}

func asError(err error, target **Error) bool {
	le, ok := err.(*Error)
	if ok {
		*target = le
	}
	return ok
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "does-not-exist.bin"))
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
