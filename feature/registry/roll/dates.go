package roll

import (
	"fmt"
	"strings"
	"time"
)

// bengaliDigits maps Bengali numerals to their ASCII equivalents.
var bengaliDigits = strings.NewReplacer(
	"০", "0", "১", "1", "২", "2", "৩", "3", "৪", "4",
	"৫", "5", "৬", "6", "৭", "7", "৮", "8", "৯", "9",
)

// bengaliMonths maps Bengali month names to the English names time.Parse
// understands.
var bengaliMonths = map[string]string{
	"জানুয়ারি":  "January",
	"জানুয়ারী":  "January",
	"ফেব্রুয়ারি": "February",
	"ফেব্রুয়ারী": "February",
	"মার্চ":     "March",
	"এপ্রিল":    "April",
	"মে":        "May",
	"জুন":       "June",
	"জুলাই":     "July",
	"আগস্ট":     "August",
	"অগাস্ট":    "August",
	"সেপ্টেম্বর": "September",
	"অক্টোবর":   "October",
	"নভেম্বর":   "November",
	"ডিসেম্বর":  "December",
}

// dateLayouts are the day-first variants seen on the source rolls.
var dateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"2 January, 2006",
	"January 2, 2006",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2006-01-02",
}

// NormalizeDate parses a heterogeneous date-like string into a calendar
// date. Bengali digits are folded to ASCII and Bengali month names are
// translated before matching against the known day-first layouts.
// Unrecognized formats fail cleanly.
func NormalizeDate(text string) (time.Time, error) {
	s := strings.TrimSpace(bengaliDigits.Replace(text))
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	for bn, en := range bengaliMonths {
		if strings.Contains(s, bn) {
			s = strings.ReplaceAll(s, bn, en)
			break
		}
	}

	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", text)
}

// AgeInYears returns the whole years elapsed from birth to ref. The
// reference date is always injected by the caller; this function never
// reads the wall clock. A birth date after ref is an error.
func AgeInYears(birth, ref time.Time) (int, error) {
	if birth.After(ref) {
		return 0, fmt.Errorf("birth date %s is after reference date %s",
			birth.Format("2006-01-02"), ref.Format("2006-01-02"))
	}

	years := ref.Year() - birth.Year()
	// Not yet had this year's birthday
	if ref.Month() < birth.Month() ||
		(ref.Month() == birth.Month() && ref.Day() < birth.Day()) {
		years--
	}
	return years, nil
}
