// Package system provides a real clock implementation.
package system

import "time"

// Clock implements crawler.Clock using time.Now.
type Clock struct{}

// New creates a new Clock.
func New() *Clock {
	return &Clock{}
}

// Now returns the current local time. Sitemap lastmod dates and snapshot
// filenames reflect the operator's wall clock.
func (Clock) Now() time.Time {
	return time.Now()
}
