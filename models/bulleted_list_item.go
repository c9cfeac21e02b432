package models

// BulletedListItem is one item of an unordered list. Nested items are children.
type BulletedListItem struct {
	metadata BlockMetadata
	text     []RichText
	children []Block
}

func newBulletedListItem(metadata BlockMetadata, text []RichText, children []Block) (BulletedListItem, error) {
	if err := metadata.CheckType(BulletedListItemBlock); err != nil {
		return BulletedListItem{}, err
	}
	if err := checkChildren(metadata, children); err != nil {
		return BulletedListItem{}, err
	}
	return BulletedListItem{metadata: metadata, text: text, children: children}, nil
}

func (b BulletedListItem) rebuild(metadata BlockMetadata, text []RichText, children []Block) BulletedListItem {
	out, err := newBulletedListItem(metadata, text, children)
	if err != nil {
		panic(err)
	}
	return out
}

func NewBulletedListItem() BulletedListItem {
	return BulletedListItem{}.rebuild(NewBlockMetadata(BulletedListItemBlock), nil, nil)
}

func BulletedListItemFromString(content string) BulletedListItem {
	return BulletedListItem{}.rebuild(NewBlockMetadata(BulletedListItemBlock), []RichText{RichTextFromString(content)}, nil)
}

func BulletedListItemFromStructure(data Structure) (BulletedListItem, error) {
	return decodeBulletedListItem(data, newDecodeState(DefaultMaxDepth))
}

func decodeBulletedListItem(data map[string]interface{}, st decodeState) (BulletedListItem, error) {
	metadata, err := metadataFromObject(data)
	if err != nil {
		return BulletedListItem{}, err
	}
	if err := metadata.CheckType(BulletedListItemBlock); err != nil {
		return BulletedListItem{}, err
	}

	body, err := requiredObject(data, string(BulletedListItemBlock))
	if err != nil {
		return BulletedListItem{}, err
	}
	text, err := decodeRichTextField(body, "rich_text")
	if err != nil {
		return BulletedListItem{}, PrefixPath(err, string(BulletedListItemBlock))
	}
	children, err := decodeChildren(body, st)
	if err != nil {
		return BulletedListItem{}, PrefixPath(err, string(BulletedListItemBlock))
	}

	return newBulletedListItem(metadata, text, children)
}

func (BulletedListItem) isBlock() {}

func (b BulletedListItem) Metadata() BlockMetadata { return b.metadata }
func (b BulletedListItem) Text() []RichText        { return copySpans(b.text) }
func (b BulletedListItem) Children() []Block       { return copyBlocks(b.children) }

func (b BulletedListItem) ToStructure() Structure {
	out := b.metadata.ToStructure()
	out[string(BulletedListItemBlock)] = textBody(b.text, b.children)
	return out
}

func (b BulletedListItem) ToPartialUpdateStructure() Structure {
	return Structure{
		string(BulletedListItemBlock): map[string]interface{}{
			"rich_text": encodeRichTexts(b.text),
		},
		"archived": b.metadata.Archived(),
	}
}

func (b BulletedListItem) ToPlainText() string { return plainText(b.text) }

func (b BulletedListItem) ChangeText(text ...RichText) BulletedListItem {
	return b.rebuild(b.metadata, copySpans(text), b.children)
}

func (b BulletedListItem) AddText(text RichText) BulletedListItem {
	return b.rebuild(b.metadata, appendSpan(b.text, text), b.children)
}

func (b BulletedListItem) ChangeChildren(children ...Block) BulletedListItem {
	return b.rebuild(b.metadata.UpdateHasChildren(len(children) > 0), b.text, copyBlocks(children))
}

func (b BulletedListItem) AddChild(child Block) BulletedListItem {
	return b.rebuild(b.metadata.UpdateHasChildren(true), b.text, appendBlock(b.children, child))
}

func (b BulletedListItem) Archive() Block {
	return b.rebuild(b.metadata.Archive(), b.text, b.children)
}
