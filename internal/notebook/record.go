// Package notebook implements readiness polling for a notebook server and
// parsing of its self-reported status listing.
//
// The status listing is free-form text, one line per running server, with no
// schema guarantee beyond substring conventions: a URL-like substring with an
// optional token= query parameter and a :<port>/ path marker. Parsing is kept
// in pure functions so it can be tested against fixed literal inputs.
package notebook

import (
	"fmt"
	"regexp"
	"strings"
)

// tokenPattern captures the substring following "token=" up to the next
// whitespace or end of string.
var tokenPattern = regexp.MustCompile(`token=([^\s]+)`)

// ServiceRecord is one parsed line of the server's status listing.
type ServiceRecord struct {
	Raw   string // the matched status line, verbatim
	Port  int    // the target port the line matched on
	Token string // connection token, empty when authentication is disabled
}

// PortMarker returns the substring that identifies a status line for port.
// The trailing slash is the boundary delimiter: without it, port 5000 would
// also match a line about port 50001. The marker is a heuristic; a custom
// path containing the same literal substring would still collide.
func PortMarker(port int) string {
	return fmt.Sprintf(":%d/", port)
}

// ParseLine parses a single status line against a target port. Returns the
// record and true if the line contains the port marker. A missing token is a
// valid outcome (password-protected or auth-disabled servers), not an error.
func ParseLine(line string, port int) (ServiceRecord, bool) {
	if !strings.Contains(line, PortMarker(port)) {
		return ServiceRecord{}, false
	}
	return ServiceRecord{
		Raw:   line,
		Port:  port,
		Token: ExtractToken(line),
	}, true
}

// MatchFirst scans lines in listing order and returns the first record
// matching the target port. At most one record is authoritative per scan;
// ties resolve to the top of the listing.
func MatchFirst(lines []string, port int) (ServiceRecord, bool) {
	for _, line := range lines {
		if rec, ok := ParseLine(line, port); ok {
			return rec, true
		}
	}
	return ServiceRecord{}, false
}

// ExtractToken extracts the connection token from a status line.
// Returns empty string when no token= marker is present.
func ExtractToken(line string) string {
	matches := tokenPattern.FindStringSubmatch(line)
	if len(matches) == 2 {
		return matches[1]
	}
	return ""
}

// LocalURL returns a browser-ready URL for the record, with the host
// rewritten to localhost. The server typically binds 0.0.0.0 and reports
// that address; localhost is what the operator actually opens.
func (r ServiceRecord) LocalURL() string {
	if r.Token == "" {
		return fmt.Sprintf("http://localhost:%d/", r.Port)
	}
	return fmt.Sprintf("http://localhost:%d/?token=%s", r.Port, r.Token)
}
