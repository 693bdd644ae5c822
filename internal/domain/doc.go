// Package domain defines the core business entities of the mentorship
// engine: mentors with capacity tracking, mentorship requests with their
// match list and lifecycle, and sessions with two-sided feedback.
package domain
