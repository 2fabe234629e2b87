package sched

import (
	"time"

	"newsbot/internal/feed"
	"newsbot/internal/format"
)

// Topic binds one content category to its source, schedule and cosmetic
// profile. Each topic owns exactly one of each.
type Topic struct {
	Name     string
	Source   feed.Source
	Profile  format.Profile
	Schedule Schedule
}

// topicState is the per-topic mutable scheduling state. It is only written
// by the loop goroutine; the mutex in Loop guards snapshot reads.
type topicState struct {
	topic     Topic
	lastFired time.Time
}

// TopicStatus is a point-in-time view of one topic for logs and diagnostics.
type TopicStatus struct {
	Name      string
	Schedule  string
	LastFired time.Time // zero if never fired
}
