package models

// NumberedListItem is one item of an ordered list; the API numbers consecutive
// items itself.
type NumberedListItem struct {
	metadata BlockMetadata
	text     []RichText
	children []Block
}

func newNumberedListItem(metadata BlockMetadata, text []RichText, children []Block) (NumberedListItem, error) {
	if err := metadata.CheckType(NumberedListItemBlock); err != nil {
		return NumberedListItem{}, err
	}
	if err := checkChildren(metadata, children); err != nil {
		return NumberedListItem{}, err
	}
	return NumberedListItem{metadata: metadata, text: text, children: children}, nil
}

func (n NumberedListItem) rebuild(metadata BlockMetadata, text []RichText, children []Block) NumberedListItem {
	out, err := newNumberedListItem(metadata, text, children)
	if err != nil {
		panic(err)
	}
	return out
}

func NewNumberedListItem() NumberedListItem {
	return NumberedListItem{}.rebuild(NewBlockMetadata(NumberedListItemBlock), nil, nil)
}

func NumberedListItemFromString(content string) NumberedListItem {
	return NumberedListItem{}.rebuild(NewBlockMetadata(NumberedListItemBlock), []RichText{RichTextFromString(content)}, nil)
}

func NumberedListItemFromStructure(data Structure) (NumberedListItem, error) {
	return decodeNumberedListItem(data, newDecodeState(DefaultMaxDepth))
}

func decodeNumberedListItem(data map[string]interface{}, st decodeState) (NumberedListItem, error) {
	metadata, err := metadataFromObject(data)
	if err != nil {
		return NumberedListItem{}, err
	}
	if err := metadata.CheckType(NumberedListItemBlock); err != nil {
		return NumberedListItem{}, err
	}

	body, err := requiredObject(data, string(NumberedListItemBlock))
	if err != nil {
		return NumberedListItem{}, err
	}
	text, err := decodeRichTextField(body, "rich_text")
	if err != nil {
		return NumberedListItem{}, PrefixPath(err, string(NumberedListItemBlock))
	}
	children, err := decodeChildren(body, st)
	if err != nil {
		return NumberedListItem{}, PrefixPath(err, string(NumberedListItemBlock))
	}

	return newNumberedListItem(metadata, text, children)
}

func (NumberedListItem) isBlock() {}

func (n NumberedListItem) Metadata() BlockMetadata { return n.metadata }
func (n NumberedListItem) Text() []RichText        { return copySpans(n.text) }
func (n NumberedListItem) Children() []Block       { return copyBlocks(n.children) }

func (n NumberedListItem) ToStructure() Structure {
	out := n.metadata.ToStructure()
	out[string(NumberedListItemBlock)] = textBody(n.text, n.children)
	return out
}

func (n NumberedListItem) ToPartialUpdateStructure() Structure {
	return Structure{
		string(NumberedListItemBlock): map[string]interface{}{
			"rich_text": encodeRichTexts(n.text),
		},
		"archived": n.metadata.Archived(),
	}
}

func (n NumberedListItem) ToPlainText() string { return plainText(n.text) }

func (n NumberedListItem) ChangeText(text ...RichText) NumberedListItem {
	return n.rebuild(n.metadata, copySpans(text), n.children)
}

func (n NumberedListItem) AddText(text RichText) NumberedListItem {
	return n.rebuild(n.metadata, appendSpan(n.text, text), n.children)
}

func (n NumberedListItem) ChangeChildren(children ...Block) NumberedListItem {
	return n.rebuild(n.metadata.UpdateHasChildren(len(children) > 0), n.text, copyBlocks(children))
}

func (n NumberedListItem) AddChild(child Block) NumberedListItem {
	return n.rebuild(n.metadata.UpdateHasChildren(true), n.text, appendBlock(n.children, child))
}

func (n NumberedListItem) Archive() Block {
	return n.rebuild(n.metadata.Archive(), n.text, n.children)
}
