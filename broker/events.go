package broker

type EventType string

const (
	// Event types in format: <resource>.<action>
	BlockCreated          EventType = "block.created"
	BlockUpdated          EventType = "block.updated"
	BlockArchived         EventType = "block.archived"
	BlockChildrenAppended EventType = "block.children_appended"
)

func (e EventType) String() string { return string(e) }
