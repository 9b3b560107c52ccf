package catalog

import "errors"

// Domain errors returned by the catalog service. Controllers map these to
// HTTP status codes; a course hidden by the visibility rule reports the same
// ErrCourseNotFound as a missing one so unpublished courses do not leak.
var (
	ErrCourseNotFound     = errors.New("course not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
	ErrAlreadyEnrolled    = errors.New("user already enrolled in this course")
	ErrUnknownCategory    = errors.New("category does not exist")
)
