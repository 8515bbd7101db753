package utils

import (
	"time"
)

// jstLocation is a fixed UTC+9 zone. Japan has no DST, so no tzdata lookup is needed.
var jstLocation = time.FixedZone("JST", 9*60*60)

// ISOMillisLayout is the ISO-8601 layout used for every timestamp the API emits.
const ISOMillisLayout = "2006-01-02T15:04:05.000Z07:00"

// GetJSTTimeLocation returns the fixed UTC+9 location.
func GetJSTTimeLocation() *time.Location {
	return jstLocation
}

// FormatISO renders t in UTC with millisecond precision, e.g. 2024-01-01T09:00:00.000Z.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOMillisLayout)
}

// BeforeDayJST reports whether a falls on an earlier JST calendar day than b.
func BeforeDayJST(a, b time.Time) bool {
	ay, am, ad := a.In(jstLocation).Date()
	by, bm, bd := b.In(jstLocation).Date()
	if ay != by {
		return ay < by
	}
	if am != bm {
		return am < bm
	}
	return ad < bd
}
