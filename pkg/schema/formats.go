package schema

import (
	"net"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FormatFunc reports whether a string value satisfies a named format.
type FormatFunc func(value string) bool

var formats = map[string]FormatFunc{
	"uuid":      matchUUID,
	"email":     matchEmail,
	"date":      matchDate,
	"date-time": matchDateTime,
	"datetime":  matchDateTime,
	"uri":       matchURI,
	"url":       matchURI,
	"ipv4":      matchIPv4,
	"ipv6":      matchIPv6,
	"hostname":  matchHostname,
}

// MatchFormat reports whether value satisfies the named format. Unknown
// formats pass: a catalog written against a newer apivet must not start
// failing responses on an older one.
func MatchFormat(format, value string) bool {
	fn, ok := formats[strings.ToLower(format)]
	if !ok {
		return true
	}
	return fn(value)
}

// RegisterFormat installs a custom format matcher. Call before any schemas
// are validated; the format table is not synchronized.
func RegisterFormat(name string, fn FormatFunc) {
	formats[strings.ToLower(name)] = fn
}

func matchUUID(value string) bool {
	_, err := uuid.Parse(value)
	return err == nil
}

func matchEmail(value string) bool {
	if _, err := mail.ParseAddress(value); err != nil {
		return false
	}
	// mail.ParseAddress accepts bare local domains; partners mean real ones.
	parts := strings.Split(value, "@")
	return len(parts) == 2 && strings.Contains(parts[1], ".")
}

func matchDate(value string) bool {
	_, err := time.Parse("2006-01-02", value)
	return err == nil
}

func matchDateTime(value string) bool {
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if _, err := time.Parse(layout, value); err == nil {
			return true
		}
	}
	return false
}

func matchURI(value string) bool {
	u, err := url.Parse(value)
	return err == nil && u.Scheme != "" && u.Host != ""
}

func matchIPv4(value string) bool {
	ip := net.ParseIP(value)
	return ip != nil && ip.To4() != nil
}

func matchIPv6(value string) bool {
	ip := net.ParseIP(value)
	return ip != nil && ip.To4() == nil
}

func matchHostname(value string) bool {
	if value == "" || len(value) > 253 {
		return false
	}
	for _, label := range strings.Split(value, ".") {
		if label == "" || len(label) > 63 {
			return false
		}
		if strings.HasPrefix(label, "-") || strings.HasSuffix(label, "-") {
			return false
		}
		for _, c := range label {
			if !(c >= 'a' && c <= 'z') && !(c >= 'A' && c <= 'Z') && !(c >= '0' && c <= '9') && c != '-' {
				return false
			}
		}
	}
	return true
}
