package search

import (
	"fmt"
	"strings"

	"github.com/roach88/casrc/internal/rule"
)

// Snapshot returns a copy of one generation of the world as a grid indexed
// by [y][x]. A generation outside [0, P) is brought into range as in
// CellState, through the per-period transformation and translation.
func (w *World) Snapshot(t int) [][]rule.State {
	grid := make([][]rule.State, w.config.Height)
	for y := range grid {
		row := make([]rule.State, w.config.Width)
		for x := range row {
			row[x] = w.CellState(x, y, t)
		}
		grid[y] = row
	}
	return grid
}

// rleMaxLine is the longest body line RLE emits, per the common convention.
const rleMaxLine = 70

// RLE renders one generation of the world in RLE format.
//
// Dead cells are b (or . when compact is false), living cells o, unknown
// cells ?. Rows end with $ and the pattern with !. When compact is true the
// body is run-length encoded with trailing dead cells trimmed from each row
// and lines wrapped at 70 characters; otherwise each row is spelled out on
// its own line.
func (w *World) RLE(t int, compact bool) string {
	width, height := w.config.Width, w.config.Height

	header := fmt.Sprintf("x = %d, y = %d, rule = %s\n", width, height, w.config.RuleString())

	deadChar := byte('.')
	if compact {
		deadChar = 'b'
	}

	var body strings.Builder
	for y := 0; y < height; y++ {
		row := make([]byte, 0, width)
		for x := 0; x < width; x++ {
			switch w.CellState(x, y, t) {
			case rule.Dead:
				row = append(row, deadChar)
			case rule.Alive:
				row = append(row, 'o')
			default:
				row = append(row, '?')
			}
		}

		if compact {
			for len(row) > 0 && row[len(row)-1] == deadChar {
				row = row[:len(row)-1]
			}
		}

		body.Write(row)
		if y < height-1 {
			body.WriteByte('$')
		} else {
			body.WriteByte('!')
		}
		if !compact {
			body.WriteByte('\n')
		}
	}

	if !compact {
		return header + body.String()
	}

	return header + encodeRuns(body.String())
}

// encodeRuns run-length encodes an RLE body and wraps its lines.
func encodeRuns(body string) string {
	var out strings.Builder
	var line strings.Builder

	for i := 0; i < len(body); {
		c := body[i]
		j := i
		for j < len(body) && body[j] == c {
			j++
		}

		run := string(c)
		if j-i > 1 {
			run = fmt.Sprintf("%d%c", j-i, c)
		}

		if line.Len()+len(run) > rleMaxLine {
			out.WriteString(line.String())
			out.WriteByte('\n')
			line.Reset()
		}
		line.WriteString(run)

		i = j
	}

	out.WriteString(line.String())
	return out.String()
}
