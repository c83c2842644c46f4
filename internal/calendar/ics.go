package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/fixtures-ics/internal/fixture"
)

const maxLineOctets = 75

// Link is a labelled URL appended to event descriptions
type Link struct {
	Label string
	URL   string
}

// Options controls how fixtures are rendered
type Options struct {
	Club        string
	Season      string
	HomeAddress string
	// Timezone is written to X-WR-TIMEZONE only.
	Timezone string
	// UTCOffset is the fixed offset of kick-off wall clock times.
	UTCOffset time.Duration
	Duration  time.Duration
	Links     []Link
	// Now stamps fixtures without last_updated. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// GenerateICS generates an iCalendar (.ics) file for a season of fixtures.
// Fixtures must be validated and carry UIDs; events keep the input order.
func GenerateICS(fixtures []*fixture.Fixture, opts Options) (string, error) {
	var ics strings.Builder
	w := &lineWriter{b: &ics}

	w.line("BEGIN:VCALENDAR")
	w.line("VERSION:2.0")
	w.line(fmt.Sprintf("PRODID:-//%s//Fixtures Calendar//%s//EN", opts.Club, opts.Season))
	w.line("CALSCALE:GREGORIAN")
	w.line("METHOD:PUBLISH")
	w.line("X-WR-CALNAME:" + escapeICS(fmt.Sprintf("%s Fixtures %s", opts.Club, opts.Season)))
	w.line("X-WR-CALDESC:" + escapeICS(fmt.Sprintf("All %s football fixtures for the %s season", opts.Club, opts.Season)))
	if opts.Timezone != "" {
		w.line("X-WR-TIMEZONE:" + opts.Timezone)
	}

	generated := opts.now()
	for i, f := range fixtures {
		if err := writeEvent(w, f, opts, generated); err != nil {
			return "", fmt.Errorf("fixture %d (%s): %w", i, f.UID, err)
		}
	}

	w.line("END:VCALENDAR")
	return ics.String(), nil
}

func writeEvent(w *lineWriter, f *fixture.Fixture, opts Options, generated time.Time) error {
	if f.UID == "" {
		return fmt.Errorf("missing UID")
	}

	start, err := f.Kickoff(opts.UTCOffset)
	if err != nil {
		return err
	}
	end := start.Add(opts.Duration)

	// DTSTAMP - when this version of the fixture was published
	stamp, err := f.Updated()
	if err != nil {
		return err
	}
	if stamp.IsZero() {
		stamp = generated
	}

	w.line("BEGIN:VEVENT")
	w.line("UID:" + f.UID)
	w.line("DTSTAMP:" + formatICSTime(stamp))
	w.line("DTSTART:" + formatICSTime(start))
	w.line("DTEND:" + formatICSTime(end))
	w.line("SUMMARY:" + escapeICS(Summary(f, opts.Club)))
	w.line("DESCRIPTION:" + escapeICS(Description(f, opts.Club, opts.Links)))
	w.line("LOCATION:" + escapeICS(Location(f, opts.HomeAddress)))
	w.line("STATUS:CONFIRMED")
	w.line(fmt.Sprintf("SEQUENCE:%d", f.Version))
	// Matches are shown as free time
	w.line("TRANSP:TRANSPARENT")
	w.line("END:VEVENT")
	return nil
}

// Summary returns the event title, home side first
func Summary(f *fixture.Fixture, club string) string {
	if f.Home() {
		return fmt.Sprintf("👕 %s v %s", club, f.Opponent)
	}
	return fmt.Sprintf("%s v 👕 %s", f.Opponent, club)
}

// Location returns the club's ground for home fixtures and the away ground otherwise
func Location(f *fixture.Fixture, homeAddress string) string {
	if f.Home() {
		return homeAddress
	}
	return f.AwayLocation()
}

// Description returns the event body followed by one paragraph per link
func Description(f *fixture.Fixture, club string, links []Link) string {
	var d strings.Builder
	fmt.Fprintf(&d, "⚽ Watch %s take on %s in the %s.", club, f.Opponent, f.Competition)
	for _, l := range links {
		d.WriteString("\n\n")
		if l.Label != "" {
			d.WriteString(l.Label)
			d.WriteString("\n")
		}
		d.WriteString(l.URL)
	}
	return d.String()
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// lineWriter writes content lines terminated by CRLF, folded at 75 octets
type lineWriter struct {
	b *strings.Builder
}

func (w *lineWriter) line(s string) {
	for _, part := range fold(s) {
		w.b.WriteString(part)
		w.b.WriteString("\r\n")
	}
}

// fold splits a content line into pieces of at most 75 octets. Continuation
// pieces start with a space that counts toward their length. UTF-8 sequences are
// never split.
func fold(s string) []string {
	if len(s) <= maxLineOctets {
		return []string{s}
	}

	var parts []string
	limit := maxLineOctets
	prefix := ""
	for len(s) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(s[cut]) {
			cut--
		}
		parts = append(parts, prefix+s[:cut])
		s = s[cut:]
		prefix = " "
		limit = maxLineOctets - 1
	}
	return append(parts, prefix+s)
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
