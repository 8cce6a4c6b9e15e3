// Package verification verifies that an exported dump file matches the ROM.
package verification

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
	"github.com/spf13/afero"
)

// maxLoggedMismatches limits the number of logged differing offsets.
const maxLoggedMismatches = 10

// VerifyDump reads back the raw dump file at path and compares it to the
// expected bytes.
func VerifyDump(logger *log.Logger, fs afero.Fs, path string, expected []byte) error {
	written, err := afero.ReadFile(fs, path)
	if err != nil {
		return fmt.Errorf("reading dump file '%s' for comparison: %w", path, err)
	}

	if err := checkBufferEqual(logger, expected, written); err != nil {
		return fmt.Errorf("dump file '%s' mismatch: %w", path, err)
	}
	return nil
}

func checkBufferEqual(logger *log.Logger, input, output []byte) error {
	if len(input) != len(output) {
		return fmt.Errorf("mismatched lengths, %d != %d", len(input), len(output))
	}

	var diffs uint64
	for i := range input {
		if input[i] == output[i] {
			continue
		}

		diffs++
		if diffs <= maxLoggedMismatches {
			logger.Error("Offset mismatch",
				log.Hex("offset", i),
				log.Hex("expected", input[i]),
				log.Hex("got", output[i]))
		}
	}
	if diffs == 0 {
		return nil
	}
	return fmt.Errorf("%d offset mismatches", diffs)
}
