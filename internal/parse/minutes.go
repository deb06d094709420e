// Package parse converts free-text utterances into timer durations.
package parse

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrNoNumber is returned when the utterance contains no usable positive number.
var ErrNoNumber = errors.New("parse: no positive number in utterance")

// units covers zero through nineteen.
var units = map[string]float64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
}

// tens covers twenty through ninety.
var tens = map[string]float64{
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
}

// scales are multipliers applied to the number built so far.
var scales = map[string]float64{
	"hundred":  100,
	"thousand": 1000,
	"million":  1000000,
}

// Minutes parses an utterance into a strictly positive number of minutes.
// It first attempts a direct numeric parse of the whole utterance ("15",
// "3.5"), then a spoken-word conversion ("ten", "twenty five", "two point
// five"). Zero, negative values, and anything unrecognizable yield
// ErrNoNumber: a timer must be strictly positive.
func Minutes(utterance string) (float64, error) {
	s := strings.ToLower(strings.TrimSpace(utterance))
	if s == "" {
		return 0, ErrNoNumber
	}

	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return checkPositive(v)
	}

	v, err := wordsToNumber(s)
	if err != nil {
		return 0, err
	}
	return checkPositive(v)
}

// maxMinutes is the largest minute count that still converts to a
// time.Duration without overflow.
const maxMinutes = float64(math.MaxInt64 / int64(time.Minute))

func checkPositive(v float64) (float64, error) {
	// strconv accepts "nan" and "inf" spellings; neither is a timer length,
	// and huge finite values would overflow the countdown duration.
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNoNumber
	}
	if v <= 0 || v > maxMinutes {
		return 0, ErrNoNumber
	}
	return v, nil
}

// wordsToNumber converts a spoken-word number to a float. Hyphens join
// compound words ("twenty-five"); "and" is filler ("one hundred and five");
// "point" switches to digit-by-digit fraction words ("two point five").
func wordsToNumber(s string) (float64, error) {
	s = strings.ReplaceAll(s, "-", " ")
	words := strings.Fields(s)

	var (
		whole    float64 // completed scale groups (e.g. thousands)
		current  float64 // group under construction
		seen     bool
		fraction bool
		place    = 0.1
	)

	for _, w := range words {
		if w == "and" {
			continue
		}

		if fraction {
			u, ok := units[w]
			if !ok || u > 9 {
				return 0, ErrNoNumber
			}
			whole += u * place
			place /= 10
			continue
		}

		switch {
		case w == "point":
			if !seen {
				return 0, ErrNoNumber
			}
			whole += current
			current = 0
			fraction = true
		case units[w] != 0 || w == "zero":
			current += units[w]
			seen = true
		case tens[w] != 0:
			current += tens[w]
			seen = true
		case scales[w] != 0:
			if !seen {
				return 0, ErrNoNumber
			}
			if current == 0 {
				current = 1
			}
			current *= scales[w]
			// thousand and above closes the group; hundred can still
			// be followed by tens/units within the same group.
			if scales[w] >= 1000 {
				whole += current
				current = 0
			}
		default:
			return 0, ErrNoNumber
		}
	}

	if !seen {
		return 0, ErrNoNumber
	}
	return whole + current, nil
}
