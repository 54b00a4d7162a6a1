// Package loader reads a flat RISKXVII image off disk into the two
// fixed-size byte buffers the emulator core expects.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	instMemSize = 1024
	dataMemSize = 1024
)

// Error reports a failure to assemble a complete image (spec §6): the
// loader never hands a short read to the core.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Load reads exactly instMemSize bytes of instruction memory followed
// by exactly dataMemSize bytes of data memory from path.
func Load(path string) (instMem, dataMem []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, &Error{Path: path, Err: err}
	}
	defer f.Close()

	r := bufio.NewReader(f)

	instMem = make([]byte, instMemSize)
	if _, err := io.ReadFull(r, instMem); err != nil {
		return nil, nil, &Error{Path: path, Err: fmt.Errorf("instruction memory: %w", err)}
	}

	dataMem = make([]byte, dataMemSize)
	if _, err := io.ReadFull(r, dataMem); err != nil {
		return nil, nil, &Error{Path: path, Err: fmt.Errorf("data memory: %w", err)}
	}

	logrus.WithFields(logrus.Fields{
		"path":     path,
		"inst_len": len(instMem),
		"data_len": len(dataMem),
	}).Debug("image loaded")

	return instMem, dataMem, nil
}
