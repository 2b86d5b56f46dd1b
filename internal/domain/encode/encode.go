// Package encode turns time-of-day strings into circular embeddings.
//
// A time is mapped to its angle around a 24-hour circle: with
// seconds = h*3600 + m*60 + s, the embedding is
// (sin(2π·seconds/86400), cos(2π·seconds/86400)). A plain
// seconds-from-midnight feature would treat 23:59:59 and 00:00:01 as
// maximally far apart; on the circle they are neighbours.
package encode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/unzippd/portfolio/internal/domain/model"
)

const secondsPerDay = 86400

// ParseError reports a time-of-day cell that does not match "HH:MM:SS" or has
// out-of-range components. Row is the 1-based data row the value came from
// (0 when unknown).
type ParseError struct {
	Value string
	Row   int
}

func (e *ParseError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("row %d: invalid time of day %q", e.Row, e.Value)
	}
	return fmt.Sprintf("invalid time of day %q", e.Value)
}

// Unwrap lets callers match with errors.Is(err, ErrParse).
func (e *ParseError) Unwrap() error { return ErrParse }

// ParseClock parses a strict "HH:MM:SS" string into seconds from midnight.
// Hours must be 0-23, minutes and seconds 0-59, each exactly two digits.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return 0, &ParseError{Value: value}
	}
	nums := make([]int, 3)
	for i, p := range parts {
		// Exactly two digits; Atoi alone would admit signs like "+1".
		if len(p) != 2 || p[0] < '0' || p[0] > '9' || p[1] < '0' || p[1] > '9' {
			return 0, &ParseError{Value: value}
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, &ParseError{Value: value}
		}
		nums[i] = n
	}
	h, m, s := nums[0], nums[1], nums[2]
	if h > 23 || m > 59 || s > 59 {
		return 0, &ParseError{Value: value}
	}
	return h*3600 + m*60 + s, nil
}

// Encode parses a time-of-day string and returns its unit-circle embedding.
func Encode(value string) (model.TimeEmbedding, error) {
	seconds, err := ParseClock(value)
	if err != nil {
		return model.TimeEmbedding{}, err
	}
	angle := 2 * math.Pi * float64(seconds) / secondsPerDay
	return model.TimeEmbedding{Sin: math.Sin(angle), Cos: math.Cos(angle)}, nil
}

// EncodeRecord encodes one raw record, attributing failures to its data row.
func EncodeRecord(rec model.RawRecord, row int) (model.TimeEmbedding, error) {
	emb, err := Encode(rec.Clock)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			return model.TimeEmbedding{}, &ParseError{Value: perr.Value, Row: row}
		}
		return model.TimeEmbedding{}, err
	}
	return emb, nil
}
