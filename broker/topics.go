package broker

import "strings"

const (
	// BlockSubjectPrefix prefixes every subject carrying block events.
	BlockSubjectPrefix = "blocks"
	// BlockSubject matches every block event subject.
	BlockSubject = BlockSubjectPrefix + ".>"
)

// SubjectFor maps an event name such as "block.updated" to the subject it is
// published on, "blocks.updated". Names outside the block resource keep
// their own prefix under "blocks.other".
func SubjectFor(event string) string {
	resource, action, ok := strings.Cut(event, ".")
	if !ok || action == "" {
		return BlockSubjectPrefix + ".other." + event
	}
	if resource != "block" {
		return BlockSubjectPrefix + ".other." + event
	}
	return BlockSubjectPrefix + "." + action
}

// EventFor is the inverse of SubjectFor for block subjects.
func EventFor(subject string) string {
	rest, ok := strings.CutPrefix(subject, BlockSubjectPrefix+".")
	if !ok {
		return ""
	}
	if other, ok := strings.CutPrefix(rest, "other."); ok {
		return other
	}
	return "block." + rest
}
