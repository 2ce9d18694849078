// Package tzdb exposes the timezone name corpus used for completion and the
// location lookup used for timezone math. The zone database is compiled into
// the binary so plugins behave the same on hosts without /usr/share/zoneinfo.
package tzdb

import (
	"time"

	_ "time/tzdata"
)

// Names returns the zone name corpus in its stable enumeration order. The
// returned slice is a copy; callers may keep or reorder it.
func Names() []string {
	return append([]string(nil), zoneNames...)
}

// Count reports the corpus size without copying.
func Count() int {
	return len(zoneNames)
}

// Load resolves a zone name against the embedded database.
func Load(name string) (*time.Location, error) {
	return time.LoadLocation(name)
}
