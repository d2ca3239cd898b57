// Package classifier decides whether a file is eligible for scanning
// by inspecting its header. It is a cheap prefilter, not a format
// validator.
package classifier

import (
	"bytes"
	"io"
	"os"
)

// elfMagic is the 4-byte header identifying ELF executables.
var elfMagic = []byte{0x7F, 'E', 'L', 'F'}

// MagicLen is the number of header bytes the classifier reads.
const MagicLen = 4

// IsEligible reports whether the file at path starts with the ELF
// magic. Files shorter than four bytes are ineligible, not an error.
// An open or read failure is returned so the caller can surface a
// per-file error record.
func IsEligible(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	return IsEligibleReader(f)
}

// IsEligibleReader applies the header check to an already-open source.
func IsEligibleReader(r io.Reader) (bool, error) {
	var header [MagicLen]byte
	n, err := io.ReadFull(r, header[:])
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		// Short file: ineligible by definition.
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return bytes.Equal(header[:n], elfMagic), nil
}
