// Package core provides the normalization logic for CSV files.
//
// This package contains all domain logic independent of any file chooser or
// terminal UI. It can be driven by the CLI, tests, or any other caller that
// has two literal paths.
//
// # Column Rules
//
// Rules are bound to zero-based column positions in a fixed table. Every
// body field is trimmed; some positions are then reduced further:
//
//	3, 5, 17, 18, 19   digits only (phone, SSN, postal code, rent, balance)
//	4, 6, 7, 8, 9      date, rewritten as MM/DD/YYYY when it parses
//	everything else    trim only
//
// Use [RuleFor] to look up a position and [Rules] to list the table.
//
// # Processing
//
// [Process] streams the input row by row with O(buffer) memory:
//
//  1. The input is opened and a UTF-8 BOM, if any, is skipped
//  2. The header row is copied to the output unchanged
//  3. Each body row is normalized in place and written, keeping its field count
//  4. The output is flushed periodically and once more at the end
//
// A parse or I/O error aborts the run. Output written up to that point is
// left on disk.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a unique code for support reference:
//
//   - FILE002-FILE007: File errors (format, encoding, missing, access)
//   - UPL004-UPL005: Run errors (cancelled, timed out)
package core
