// Package calendar renders fixtures as an RFC 5545 iCalendar file.
//
// GenerateICS builds the VCALENDAR envelope and one VEVENT per fixture, escaping
// text values and folding long lines at 75 octets. Verify parses the result back
// with golang-ical as a check before anything is written, and WriteFile replaces the
// output atomically.
package calendar
