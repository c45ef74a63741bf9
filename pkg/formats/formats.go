// Package formats provides parsers for the Wavefront OBJ polygon format and
// its MTL material companion.
//
// Both formats are line oriented: the first whitespace-separated token is the
// directive keyword, the rest are operands. Blank lines, '#' comments and
// unknown directives are skipped.
package formats

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse errors shared by the OBJ and MTL readers.
var (
	ErrNoVertices    = errors.New("no vertices found")
	ErrInvalidIndex  = errors.New("invalid index")
	ErrMalformedLine = errors.New("malformed line")
)

// maxLineSize bounds a single directive line.
const maxLineSize = 1 << 20

// scanDirectives calls fn for every non-empty, non-comment line with its
// 1-based line number, keyword and operands.
func scanDirectives(r io.Reader, fn func(line int, keyword string, args []string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSuffix(scanner.Text(), "\r")

		fields := strings.Fields(text)
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if err := fn(line, fields[0], fields[1:]); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// malformed wraps cause as ErrMalformedLine at the given line.
func malformed(line int, keyword string, cause error) error {
	return fmt.Errorf("%w %d (%s): %w", ErrMalformedLine, line, keyword, cause)
}

// parseFloats reads the first len(dst) operands into dst.
// Missing operands and bad numbers are errors; extra operands are ignored.
func parseFloats(args []string, dst []float32) error {
	if len(args) < len(dst) {
		return fmt.Errorf("expected %d operands, got %d", len(dst), len(args))
	}
	for i := range dst {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return err
		}
		dst[i] = float32(f)
	}
	return nil
}

func parseVec3(args []string) ([3]float32, error) {
	var v [3]float32
	err := parseFloats(args, v[:])
	return v, err
}
