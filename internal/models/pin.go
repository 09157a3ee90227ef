package models

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// ReadingKind tags the wire shape a pin value arrived in.
type ReadingKind int

const (
	// ReadingAbsent means no usable value: the read failed or the body was empty.
	ReadingAbsent ReadingKind = iota
	// ReadingScalar is a bare value such as 1, "1" or 342.
	ReadingScalar
	// ReadingSequence is an ordered list such as ["1"].
	ReadingSequence
)

func (k ReadingKind) String() string {
	switch k {
	case ReadingScalar:
		return "scalar"
	case ReadingSequence:
		return "sequence"
	default:
		return "absent"
	}
}

// PinReading is the value of one virtual pin as returned by the cloud API.
// The API answers either with a scalar or with a sequence of scalars; the
// shape is resolved once by ParsePinReading and consumers only call Int.
type PinReading struct {
	Kind   ReadingKind
	Scalar string
	Seq    []string
}

// Absent is the reading used for failed reads.
func Absent() PinReading { return PinReading{Kind: ReadingAbsent} }

// ParsePinReading decodes a raw response body. JSON arrays become sequences,
// JSON strings/numbers/bools become scalars, and anything that is not valid
// JSON is kept verbatim as a scalar (the API also answers in plain text).
func ParsePinReading(body []byte) PinReading {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return Absent()
	}

	if body[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(body, &items); err == nil {
			seq := make([]string, 0, len(items))
			for _, it := range items {
				seq = append(seq, scalarText(it))
			}
			return PinReading{Kind: ReadingSequence, Seq: seq}
		}
	}

	var v any
	if err := json.Unmarshal(body, &v); err == nil {
		if v == nil {
			return Absent()
		}
		return PinReading{Kind: ReadingScalar, Scalar: scalarText(body)}
	}
	return PinReading{Kind: ReadingScalar, Scalar: string(body)}
}

// scalarText renders one JSON value as text: strings are unquoted, numbers and
// other literals keep their JSON form.
func scalarText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

// Raw returns the value that Int interprets: the scalar, or the first element
// of a sequence. ok is false for absent readings and empty sequences.
func (r PinReading) Raw() (string, bool) {
	switch r.Kind {
	case ReadingScalar:
		return r.Scalar, true
	case ReadingSequence:
		if len(r.Seq) == 0 {
			return "", false
		}
		return r.Seq[0], true
	default:
		return "", false
	}
}

// Int coerces the reading to an integer, defaulting to 0.
func (r PinReading) Int() int {
	raw, ok := r.Raw()
	if !ok {
		return 0
	}
	return LeadingInt(raw)
}

// Value returns the reading in its original shape for diagnostics output.
func (r PinReading) Value() any {
	switch r.Kind {
	case ReadingScalar:
		return r.Scalar
	case ReadingSequence:
		return r.Seq
	default:
		return nil
	}
}

// LeadingInt parses the decimal integer prefix of s: leading whitespace, an
// optional sign and digits. Trailing characters are ignored ("3.7" is 3,
// "342abc" is 342). Strings without a digit prefix, or whose prefix does not
// fit in an int, yield 0.
func LeadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\r\n")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
