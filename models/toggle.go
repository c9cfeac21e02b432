package models

// Toggle is a line of rich text that can be expanded to reveal its children.
//
// A Toggle is immutable: every update method returns a new Toggle and leaves
// the receiver untouched. Use NewToggle, ToggleFromString or
// ToggleFromStructure to build one; the zero value is not a valid block.
// Metadata().HasChildren() can be true while Children() is empty: the
// children exist but were not loaded.
type Toggle struct {
	metadata BlockMetadata
	text     []RichText
	children []Block
}

// newToggle is the only place a Toggle is assembled.
func newToggle(metadata BlockMetadata, text []RichText, children []Block) (Toggle, error) {
	if err := metadata.CheckType(ToggleBlock); err != nil {
		return Toggle{}, err
	}
	if err := checkChildren(metadata, children); err != nil {
		return Toggle{}, err
	}
	return Toggle{metadata: metadata, text: text, children: children}, nil
}

// rebuild assembles a copy from parts of a valid Toggle. The metadata type
// cannot change through the update methods, so a failure here is a bug.
func (t Toggle) rebuild(metadata BlockMetadata, text []RichText, children []Block) Toggle {
	out, err := newToggle(metadata, text, children)
	if err != nil {
		panic(err)
	}
	return out
}

// NewToggle returns an empty, never persisted toggle.
func NewToggle() Toggle {
	return Toggle{}.rebuild(NewBlockMetadata(ToggleBlock), nil, nil)
}

// ToggleFromString returns a toggle holding content as a single span.
func ToggleFromString(content string) Toggle {
	return Toggle{}.rebuild(NewBlockMetadata(ToggleBlock), []RichText{RichTextFromString(content)}, nil)
}

// ToggleFromStructure decodes a toggle and, recursively, its children.
func ToggleFromStructure(data Structure) (Toggle, error) {
	return decodeToggle(data, newDecodeState(DefaultMaxDepth))
}

func decodeToggle(data map[string]interface{}, st decodeState) (Toggle, error) {
	metadata, err := metadataFromObject(data)
	if err != nil {
		return Toggle{}, err
	}
	if err := metadata.CheckType(ToggleBlock); err != nil {
		return Toggle{}, err
	}

	body, err := requiredObject(data, string(ToggleBlock))
	if err != nil {
		return Toggle{}, err
	}
	text, err := decodeRichTextField(body, "rich_text")
	if err != nil {
		return Toggle{}, PrefixPath(err, string(ToggleBlock))
	}
	children, err := decodeChildren(body, st)
	if err != nil {
		return Toggle{}, PrefixPath(err, string(ToggleBlock))
	}

	return newToggle(metadata, text, children)
}

func (Toggle) isBlock() {}

func (t Toggle) Metadata() BlockMetadata { return t.metadata }

// Text returns a copy of the toggle's spans.
func (t Toggle) Text() []RichText { return copySpans(t.text) }

// Children returns a copy of the toggle's child list.
func (t Toggle) Children() []Block { return copyBlocks(t.children) }

func (t Toggle) ToStructure() Structure {
	out := t.metadata.ToStructure()
	out[string(ToggleBlock)] = textBody(t.text, t.children)
	return out
}

func (t Toggle) ToPartialUpdateStructure() Structure {
	return Structure{
		string(ToggleBlock): map[string]interface{}{
			"rich_text": encodeRichTexts(t.text),
		},
		"archived": t.metadata.Archived(),
	}
}

func (t Toggle) ToPlainText() string { return plainText(t.text) }

// ChangeText replaces the whole text of the toggle.
func (t Toggle) ChangeText(text ...RichText) Toggle {
	return t.rebuild(t.metadata, copySpans(text), t.children)
}

// AddText appends one span to the text of the toggle.
func (t Toggle) AddText(text RichText) Toggle {
	return t.rebuild(t.metadata, appendSpan(t.text, text), t.children)
}

// ChangeChildren replaces the child list. has_children follows the new list.
func (t Toggle) ChangeChildren(children ...Block) Toggle {
	return t.rebuild(t.metadata.UpdateHasChildren(len(children) > 0), t.text, copyBlocks(children))
}

// AddChild appends one child and marks the toggle as having children.
func (t Toggle) AddChild(child Block) Toggle {
	return t.rebuild(t.metadata.UpdateHasChildren(true), t.text, appendBlock(t.children, child))
}

func (t Toggle) Archive() Block {
	return t.rebuild(t.metadata.Archive(), t.text, t.children)
}
