package utils

import (
	"time"
	_ "time/tzdata"
)

// DisplayLoc is where dates are shown. It defaults to the machine's zone.
var DisplayLoc = time.Local

// FormatLocal returns the provided time formatted in the display location.
func FormatLocal(t time.Time) string {
	return t.In(DisplayLoc).Format("Jan 2 2006 15:04")
}

// SetDisplayZone switches DisplayLoc to the named IANA zone.
func SetDisplayZone(name string) error {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return err
	}
	DisplayLoc = loc
	return nil
}
