package models

import "fmt"

// Heading covers the three heading levels. The level is part of the block
// type tag (heading_1, heading_2, heading_3). A toggleable heading folds its
// children like a Toggle does.
type Heading struct {
	metadata   BlockMetadata
	text       []RichText
	toggleable bool
	children   []Block
}

func headingType(level int) (BlockType, error) {
	switch level {
	case 1:
		return Heading1Block, nil
	case 2:
		return Heading2Block, nil
	case 3:
		return Heading3Block, nil
	}
	return "", fmt.Errorf("invalid heading level %d", level)
}

func headingLevel(t BlockType) int {
	switch t {
	case Heading1Block:
		return 1
	case Heading2Block:
		return 2
	case Heading3Block:
		return 3
	}
	return 0
}

func newHeading(metadata BlockMetadata, text []RichText, toggleable bool, children []Block) (Heading, error) {
	if headingLevel(metadata.Type()) == 0 {
		return Heading{}, &TypeMismatchError{Expected: Heading1Block, Actual: metadata.Type()}
	}
	if err := checkChildren(metadata, children); err != nil {
		return Heading{}, err
	}
	return Heading{metadata: metadata, text: text, toggleable: toggleable, children: children}, nil
}

func (h Heading) rebuild(metadata BlockMetadata, text []RichText, toggleable bool, children []Block) Heading {
	if err := metadata.CheckType(h.metadata.Type()); err != nil {
		panic(err)
	}
	out, err := newHeading(metadata, text, toggleable, children)
	if err != nil {
		panic(err)
	}
	return out
}

// NewHeading returns an empty heading of the given level (1 to 3).
func NewHeading(level int) (Heading, error) {
	t, err := headingType(level)
	if err != nil {
		return Heading{}, err
	}
	return newHeading(NewBlockMetadata(t), nil, false, nil)
}

func HeadingFromString(level int, content string) (Heading, error) {
	h, err := NewHeading(level)
	if err != nil {
		return Heading{}, err
	}
	return h.ChangeText(RichTextFromString(content)), nil
}

// HeadingFromStructure decodes any of the three heading levels.
func HeadingFromStructure(data Structure) (Heading, error) {
	return decodeHeading(data, newDecodeState(DefaultMaxDepth))
}

func decodeHeading(data map[string]interface{}, st decodeState) (Heading, error) {
	metadata, err := metadataFromObject(data)
	if err != nil {
		return Heading{}, err
	}
	tag := metadata.Type()
	if headingLevel(tag) == 0 {
		return Heading{}, &TypeMismatchError{Expected: Heading1Block, Actual: tag}
	}

	body, err := requiredObject(data, string(tag))
	if err != nil {
		return Heading{}, err
	}
	text, err := decodeRichTextField(body, "rich_text")
	if err != nil {
		return Heading{}, PrefixPath(err, string(tag))
	}
	toggleable, err := optionalBool(body, "is_toggleable")
	if err != nil {
		return Heading{}, PrefixPath(err, string(tag))
	}
	children, err := decodeChildren(body, st)
	if err != nil {
		return Heading{}, PrefixPath(err, string(tag))
	}

	return newHeading(metadata, text, toggleable, children)
}

func (Heading) isBlock() {}

func (h Heading) Metadata() BlockMetadata { return h.metadata }
func (h Heading) Level() int              { return headingLevel(h.metadata.Type()) }
func (h Heading) IsToggleable() bool      { return h.toggleable }
func (h Heading) Text() []RichText        { return copySpans(h.text) }
func (h Heading) Children() []Block       { return copyBlocks(h.children) }

func (h Heading) ToStructure() Structure {
	body := textBody(h.text, h.children)
	body["is_toggleable"] = h.toggleable

	out := h.metadata.ToStructure()
	out[string(h.metadata.Type())] = body
	return out
}

func (h Heading) ToPartialUpdateStructure() Structure {
	return Structure{
		string(h.metadata.Type()): map[string]interface{}{
			"rich_text":     encodeRichTexts(h.text),
			"is_toggleable": h.toggleable,
		},
		"archived": h.metadata.Archived(),
	}
}

func (h Heading) ToPlainText() string { return plainText(h.text) }

func (h Heading) ChangeText(text ...RichText) Heading {
	return h.rebuild(h.metadata, copySpans(text), h.toggleable, h.children)
}

func (h Heading) AddText(text RichText) Heading {
	return h.rebuild(h.metadata, appendSpan(h.text, text), h.toggleable, h.children)
}

func (h Heading) ChangeToggleable(toggleable bool) Heading {
	return h.rebuild(h.metadata, h.text, toggleable, h.children)
}

func (h Heading) ChangeChildren(children ...Block) Heading {
	return h.rebuild(h.metadata.UpdateHasChildren(len(children) > 0), h.text, h.toggleable, copyBlocks(children))
}

func (h Heading) AddChild(child Block) Heading {
	return h.rebuild(h.metadata.UpdateHasChildren(true), h.text, h.toggleable, appendBlock(h.children, child))
}

func (h Heading) Archive() Block {
	return h.rebuild(h.metadata.Archive(), h.text, h.toggleable, h.children)
}
