package matrix

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/linuxmatters/sndgraph/internal/sgerr"
)

// LoadCSV reads a delimiter-separated, ASCII-only matrix, one row per line,
// into a Dense matrix. If hasHeader, the first line is skipped.
func LoadCSV(r io.Reader, delimiter byte, hasHeader bool) (*Dense, error) {
	scanner := bufio.NewScanner(r)
	var rows [][]float32
	first := true
	for scanner.Scan() {
		line := scanner.Text()
		if first && hasHeader {
			first = false
			continue
		}
		first = false
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, string(delimiter))
		row := make([]float32, len(fields))
		for i, field := range fields {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
			if err != nil {
				return nil, sgerr.New(sgerr.IO, "matrix.LoadCSV", err)
			}
			row[i] = float32(v)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, sgerr.New(sgerr.IO, "matrix.LoadCSV", err)
	}
	if len(rows) == 0 {
		return NewDense(0, 0), nil
	}

	cols := len(rows[0])
	d := NewDense(len(rows), cols)
	for i, row := range rows {
		for j, v := range row {
			if j < cols {
				d.Set(i, j, v)
			}
		}
	}
	return d, nil
}
