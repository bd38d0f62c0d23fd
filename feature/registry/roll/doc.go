// Package roll parses human-authored voter roll dumps into canonical
// records.
//
// A roll is plain UTF-8 text listing one person per labeled-field block:
//
//	ক্রমিক নং: ১
//	নাম: আব্দুল করিম
//	ভোটার নং: ১৯৯০৩৩১০০০১
//	পিতার নাম: রহিম উদ্দিন
//	জন্ম তারিখ: ১৫ মার্চ ১৯৯০
//	ঠিকানা: গ্রাম: শান্তিপুর
//
// Blocks are delimited by the serial-number label or by blank lines.
// Spacing and separator punctuation vary between source files, so matching
// is label-prefix based and values are trimmed aggressively.
//
// Parsing is deterministic and pure: the reference date for age derivation
// is injected, nothing reads the wall clock, and per-block failures are
// returned as Warnings rather than aborting the file. Blocks can therefore
// be parsed from any number of goroutines without coordination.
package roll
