package roll

import (
	"sort"
	"strings"
)

// Field identifies a canonical record field extracted from a roll block.
type Field string

const (
	FieldSerial     Field = "serial_no"
	FieldName       Field = "name"
	FieldVoterNo    Field = "voter_no"
	FieldFather     Field = "father_name"
	FieldMother     Field = "mother_name"
	FieldOccupation Field = "occupation"
	FieldBirthDate  Field = "birth_date"
	FieldAddress    Field = "address"
)

// Lexicon maps the label tokens used by a roll's source language to
// canonical fields. It is a pure lookup table with no state.
type Lexicon struct {
	labels map[string]Field
	// sorted longest-first so "পিতার নাম" wins over a shorter label that
	// happens to share a prefix
	ordered []string
}

// NewLexicon builds a lexicon from a label-to-field table.
func NewLexicon(labels map[string]Field) *Lexicon {
	lex := &Lexicon{labels: labels}
	for l := range labels {
		lex.ordered = append(lex.ordered, l)
	}
	sort.Slice(lex.ordered, func(i, j int) bool {
		if len(lex.ordered[i]) != len(lex.ordered[j]) {
			return len(lex.ordered[i]) > len(lex.ordered[j])
		}
		return lex.ordered[i] < lex.ordered[j]
	})
	return lex
}

// DefaultLexicon returns the label vocabulary of the Bengali voter rolls the
// registry ingests.
func DefaultLexicon() *Lexicon {
	return NewLexicon(map[string]Field{
		"ক্রমিক নং":   FieldSerial,
		"ক্রমিক":      FieldSerial,
		"নাম":         FieldName,
		"ভোটার নং":    FieldVoterNo,
		"ভোটার নম্বর": FieldVoterNo,
		"পিতার নাম":   FieldFather,
		"পিতা":        FieldFather,
		"মাতার নাম":   FieldMother,
		"মাতা":        FieldMother,
		"পেশা":        FieldOccupation,
		"জন্ম তারিখ":  FieldBirthDate,
		"ঠিকানা":      FieldAddress,
	})
}

// separators accepted between a label and its value.
const labelSeparators = ":：ঃ-–—.।= \t"

// Match checks whether line starts with a known label and, if so, returns
// the canonical field and the value after the label, trimmed of separator
// punctuation and surrounding whitespace.
func (l *Lexicon) Match(line string) (Field, string, bool) {
	trimmed := strings.TrimSpace(line)
	for _, label := range l.ordered {
		if !strings.HasPrefix(trimmed, label) {
			continue
		}
		rest := trimmed[len(label):]
		// The label must be a whole token: end of line or a separator
		// must follow, otherwise a longer word merely shares the prefix.
		if rest != "" && !strings.ContainsRune(labelSeparators, firstRune(rest)) {
			continue
		}
		value := strings.TrimLeft(rest, labelSeparators)
		return l.labels[label], strings.TrimSpace(value), true
	}
	return "", "", false
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}
