package object

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Identity is the author/committer/tagger value of a commit or tag
// header: a display name, an email, a Unix timestamp, and the UTC
// offset that was in effect ("+0200", "-0500", ...).
type Identity struct {
	Name  string
	Email string
	When  int64
	TZ    string
}

// String renders the identity in wire form: "Name <email> 1700000000 +0000".
func (id Identity) String() string {
	return fmt.Sprintf("%s <%s> %d %s", id.Name, id.Email, id.When, id.TZ)
}

// Time returns the identity's timestamp in its recorded zone.
func (id Identity) Time() time.Time {
	offset := parseZoneOffset(id.TZ)
	return time.Unix(id.When, 0).In(time.FixedZone(id.TZ, offset))
}

// ParseIdentity parses the wire form back into an Identity.
func ParseIdentity(raw string) (Identity, error) {
	open := strings.Index(raw, "<")
	close := strings.Index(raw, ">")
	if open < 0 || close < open {
		return Identity{}, fmt.Errorf("parse identity %q: missing <email>", raw)
	}

	id := Identity{
		Name:  strings.TrimSpace(raw[:open]),
		Email: raw[open+1 : close],
	}

	rest := strings.Fields(raw[close+1:])
	if len(rest) >= 1 {
		when, err := strconv.ParseInt(rest[0], 10, 64)
		if err != nil {
			return Identity{}, fmt.Errorf("parse identity %q: bad timestamp: %w", raw, err)
		}
		id.When = when
	}
	if len(rest) >= 2 {
		id.TZ = rest[1]
	}
	return id, nil
}

// NewIdentity stamps name/email with the current time and local zone.
func NewIdentity(name, email string, now time.Time) Identity {
	return Identity{
		Name:  name,
		Email: email,
		When:  now.Unix(),
		TZ:    formatZoneOffset(now),
	}
}

func formatZoneOffset(t time.Time) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	hours := offset / 3600
	minutes := (offset % 3600) / 60
	return fmt.Sprintf("%s%02d%02d", sign, hours, minutes)
}

func parseZoneOffset(tz string) int {
	if len(tz) != 5 {
		return 0
	}
	hours, err1 := strconv.Atoi(tz[1:3])
	minutes, err2 := strconv.Atoi(tz[3:5])
	if err1 != nil || err2 != nil {
		return 0
	}
	offset := hours*3600 + minutes*60
	if tz[0] == '-' {
		offset = -offset
	}
	return offset
}
