package roll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLexicon_Match(t *testing.T) {
	lex := DefaultLexicon()

	tests := []struct {
		name  string
		line  string
		field Field
		value string
	}{
		{"Name with colon", "নাম: আব্দুল করিম", FieldName, "আব্দুল করিম"},
		{"Serial", "ক্রমিক নং: ১", FieldSerial, "১"},
		{"Father over shorter label", "পিতার নাম: রহিম উদ্দিন", FieldFather, "রহিম উদ্দিন"},
		{"Short father label", "পিতা - রহিম উদ্দিন", FieldFather, "রহিম উদ্দিন"},
		{"Voter number", "ভোটার নং: ১৯৯০৩৩১০০০১", FieldVoterNo, "১৯৯০৩৩১০০০১"},
		{"Dash separator", "পেশা - কৃষি", FieldOccupation, "কৃষি"},
		{"No separator spacing", "ঠিকানা:গ্রাম শান্তিপুর", FieldAddress, "গ্রাম শান্তিপুর"},
		{"Leading whitespace", "   জন্ম তারিখ : ১৫/০৩/১৯৯০", FieldBirthDate, "১৫/০৩/১৯৯০"},
		{"Empty value", "মাতার নাম:", FieldMother, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field, value, ok := lex.Match(tt.line)
			assert.True(t, ok)
			assert.Equal(t, tt.field, field)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestLexicon_Match_Unrecognized(t *testing.T) {
	lex := DefaultLexicon()

	for _, line := range []string{"", "random text", "Page 3 of 12", "-----"} {
		_, _, ok := lex.Match(line)
		assert.False(t, ok, "line %q", line)
	}
}
