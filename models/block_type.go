package models

// BlockType is the discriminant tag of a block. The set is closed: adding a
// kind means adding a constant here, a case in decodeBlock and the variant.
type BlockType string

const (
	ParagraphBlock        BlockType = "paragraph"
	Heading1Block         BlockType = "heading_1"
	Heading2Block         BlockType = "heading_2"
	Heading3Block         BlockType = "heading_3"
	ToggleBlock           BlockType = "toggle"
	QuoteBlock            BlockType = "quote"
	BulletedListItemBlock BlockType = "bulleted_list_item"
	NumberedListItemBlock BlockType = "numbered_list_item"
	ToDoBlock             BlockType = "to_do"
	CodeBlock             BlockType = "code"
	DividerBlock          BlockType = "divider"
)

// BlockTypes lists every known block type.
func BlockTypes() []BlockType {
	return []BlockType{
		ParagraphBlock,
		Heading1Block,
		Heading2Block,
		Heading3Block,
		ToggleBlock,
		QuoteBlock,
		BulletedListItemBlock,
		NumberedListItemBlock,
		ToDoBlock,
		CodeBlock,
		DividerBlock,
	}
}

func (t BlockType) IsKnown() bool {
	switch t {
	case ParagraphBlock, Heading1Block, Heading2Block, Heading3Block,
		ToggleBlock, QuoteBlock, BulletedListItemBlock, NumberedListItemBlock,
		ToDoBlock, CodeBlock, DividerBlock:
		return true
	}
	return false
}

func (t BlockType) String() string { return string(t) }

// ParseBlockType converts a wire tag into a BlockType.
func ParseBlockType(tag string) (BlockType, error) {
	t := BlockType(tag)
	if !t.IsKnown() {
		return "", &UnknownBlockTypeError{Type: tag}
	}
	return t, nil
}

// AcceptsChildren reports whether blocks of type t own a children list.
func (t BlockType) AcceptsChildren() bool {
	switch t {
	case CodeBlock, DividerBlock:
		return false
	}
	return t.IsKnown()
}
