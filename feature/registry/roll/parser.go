package roll

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ParsedRecord is the canonical output of parsing one roll block. A field
// absent from the block is an empty string; Age is derived from the birth
// date when it normalizes, nil otherwise.
type ParsedRecord struct {
	SerialNo   string
	Name       string
	VoterNo    string
	FatherName string
	MotherName string
	Occupation string
	BirthDate  string
	Address    string
	Age        *int
}

// Warning records a single block that failed to parse. Block numbers are
// 1-based in roll order.
type Warning struct {
	Block  int    `json:"block"`
	Reason string `json:"reason"`
}

// Whole-input failures. Per-block problems become Warnings instead.
var (
	// ErrEmptyInput means the input was empty or whitespace only.
	ErrEmptyInput = errors.New("roll text is empty")
	// ErrInvalidEncoding means the payload is not valid UTF-8 text.
	ErrInvalidEncoding = errors.New("roll text is not valid UTF-8")
	// ErrNoUsableBlocks means non-empty input contained no block with any
	// recognizable roll label.
	ErrNoUsableBlocks = errors.New("roll text contains no usable blocks")
)

// Parser converts raw roll text into canonical parsed records.
// It is pure and safe for concurrent use.
type Parser struct {
	lexicon *Lexicon
}

// NewParser creates a parser over the given label vocabulary.
// A nil lexicon selects the default Bengali roll vocabulary.
func NewParser(lex *Lexicon) *Parser {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Parser{lexicon: lex}
}

// Parse splits text into per-person blocks and extracts labeled fields from
// each. ref is the reference date for age derivation, injected so parsing
// the same text twice yields identical output.
//
// Segmentation rule: a new block begins at a line whose leading label is the
// serial-number label; a blank line also terminates the current block. Lines
// matching no label are ignored. A block is usable when at least one of its
// lines carries a known label.
//
// Blocks missing the mandatory name field are excluded and reported as
// warnings; only empty input, invalid encoding, or zero usable blocks fail
// the whole parse.
func (p *Parser) Parse(text string, ref time.Time) ([]ParsedRecord, []Warning, error) {
	if !utf8.ValidString(text) {
		return nil, nil, ErrInvalidEncoding
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil, ErrEmptyInput
	}

	blocks := p.segment(text)
	if len(blocks) == 0 {
		return nil, nil, ErrNoUsableBlocks
	}

	var records []ParsedRecord
	var warnings []Warning
	for i, block := range blocks {
		rec, ok := p.extract(block)
		if !ok {
			warnings = append(warnings, Warning{
				Block:  i + 1,
				Reason: "missing mandatory name field",
			})
			continue
		}

		if rec.BirthDate != "" {
			// An unparsable date never fails the block; the record simply
			// carries no derived age.
			if d, err := NormalizeDate(rec.BirthDate); err == nil {
				if age, err := AgeInYears(d, ref); err == nil {
					rec.Age = &age
				}
			}
		}

		records = append(records, rec)
	}

	return records, warnings, nil
}

// segment splits the text into blocks of labeled lines.
func (p *Parser) segment(text string) [][]string {
	var blocks [][]string
	var current []string
	usable := false

	flush := func() {
		if usable {
			blocks = append(blocks, current)
		}
		current = nil
		usable = false
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" {
			flush()
			continue
		}

		if f, _, ok := p.lexicon.Match(line); ok {
			if f == FieldSerial && len(current) > 0 {
				flush()
			}
			usable = true
		}
		current = append(current, line)
	}
	flush()

	return blocks
}

// extract pulls labeled fields out of one block. The first occurrence of a
// field wins; unrecognized lines are skipped. ok is false when the block
// has no name.
func (p *Parser) extract(block []string) (ParsedRecord, bool) {
	seen := make(map[Field]bool, 8)
	var rec ParsedRecord

	for _, line := range block {
		field, value, ok := p.lexicon.Match(line)
		if !ok || seen[field] {
			continue
		}
		seen[field] = true

		switch field {
		case FieldSerial:
			rec.SerialNo = value
		case FieldName:
			rec.Name = value
		case FieldVoterNo:
			rec.VoterNo = value
		case FieldFather:
			rec.FatherName = value
		case FieldMother:
			rec.MotherName = value
		case FieldOccupation:
			rec.Occupation = value
		case FieldBirthDate:
			rec.BirthDate = value
		case FieldAddress:
			rec.Address = value
		}
	}

	if rec.Name == "" {
		return ParsedRecord{}, false
	}
	return rec, true
}

// ParseBytes decodes payload as UTF-8 text and parses it.
func (p *Parser) ParseBytes(payload []byte, ref time.Time) ([]ParsedRecord, []Warning, error) {
	if !utf8.Valid(payload) {
		return nil, nil, fmt.Errorf("%w (%d bytes)", ErrInvalidEncoding, len(payload))
	}
	return p.Parse(string(payload), ref)
}
