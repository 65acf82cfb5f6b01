// Package extract pulls a JSON object out of free-form model output such as
// "Sure! ```json {...} ``` hope this helps".
package extract

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrMalformed is wrapped by every failure: no object, unbalanced braces, or
// a payload that does not decode.
var ErrMalformed = errors.New("malformed response")

// ErrNoObject means no balanced {...} region parsed as a JSON object.
var ErrNoObject = fmt.Errorf("%w: no JSON object found", ErrMalformed)

// ErrTooComplex means validation gave up before finding an object.
var ErrTooComplex = fmt.Errorf("%w: too many candidate objects", ErrMalformed)

const validateBudget = 8

// Object returns the first balanced {...} region of text that is a valid JSON
// object, ordered by where the region opens. Regions that are not valid JSON
// (prose like "{name}") are skipped. Braces inside JSON string literals are
// not counted, and a '{' inside a string never opens a candidate.
//
// Each byte is scanned once. Validation stops with ErrTooComplex once it has
// examined validateBudget times the input length.
func Object(text string) (string, error) {
	budget := validateBudget * len(text)
	for start := 0; start < len(text); {
		i := strings.IndexByte(text[start:], '{')
		if i < 0 {
			break
		}
		found, end := regions(text, start+i)
		for _, r := range found {
			candidate := text[r.open : r.close+1]
			if budget -= len(candidate); budget < 0 {
				return "", ErrTooComplex
			}
			if json.Valid([]byte(candidate)) {
				return candidate, nil
			}
		}
		if end < 0 {
			// Ran off the end unbalanced; every later '{' was already seen.
			break
		}
		start = end + 1
	}
	return "", ErrNoObject
}

// Decode locates the JSON object in text and unmarshals it into v.
func Decode(text string, v any) error {
	obj, err := Object(text)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(obj), v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

type region struct{ open, close int }

// regions scans from the '{' at open until it is closed and returns every
// balanced region seen on the way, sorted by opening index, with the index of
// the closing '}'. end is -1 when text ends first. Inside a double-quoted
// string, braces and escaped quotes are ignored.
func regions(text string, open int) (found []region, end int) {
	var stack []int
	inString := false
	escaped := false
	end = -1
	for i := open; i < len(text) && end < 0; i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, i)
		case '}':
			top := len(stack) - 1
			found = append(found, region{open: stack[top], close: i})
			stack = stack[:top]
			if top == 0 {
				end = i
			}
		}
	}
	slices.SortFunc(found, func(a, b region) int { return cmp.Compare(a.open, b.open) })
	return found, end
}
