package models

// Paragraph is the default text block.
type Paragraph struct {
	metadata BlockMetadata
	text     []RichText
	children []Block
}

func newParagraph(metadata BlockMetadata, text []RichText, children []Block) (Paragraph, error) {
	if err := metadata.CheckType(ParagraphBlock); err != nil {
		return Paragraph{}, err
	}
	if err := checkChildren(metadata, children); err != nil {
		return Paragraph{}, err
	}
	return Paragraph{metadata: metadata, text: text, children: children}, nil
}

func (p Paragraph) rebuild(metadata BlockMetadata, text []RichText, children []Block) Paragraph {
	out, err := newParagraph(metadata, text, children)
	if err != nil {
		panic(err)
	}
	return out
}

func NewParagraph() Paragraph {
	return Paragraph{}.rebuild(NewBlockMetadata(ParagraphBlock), nil, nil)
}

func ParagraphFromString(content string) Paragraph {
	return Paragraph{}.rebuild(NewBlockMetadata(ParagraphBlock), []RichText{RichTextFromString(content)}, nil)
}

func ParagraphFromStructure(data Structure) (Paragraph, error) {
	return decodeParagraph(data, newDecodeState(DefaultMaxDepth))
}

func decodeParagraph(data map[string]interface{}, st decodeState) (Paragraph, error) {
	metadata, err := metadataFromObject(data)
	if err != nil {
		return Paragraph{}, err
	}
	if err := metadata.CheckType(ParagraphBlock); err != nil {
		return Paragraph{}, err
	}

	body, err := requiredObject(data, string(ParagraphBlock))
	if err != nil {
		return Paragraph{}, err
	}
	text, err := decodeRichTextField(body, "rich_text")
	if err != nil {
		return Paragraph{}, PrefixPath(err, string(ParagraphBlock))
	}
	children, err := decodeChildren(body, st)
	if err != nil {
		return Paragraph{}, PrefixPath(err, string(ParagraphBlock))
	}

	return newParagraph(metadata, text, children)
}

func (Paragraph) isBlock() {}

func (p Paragraph) Metadata() BlockMetadata { return p.metadata }
func (p Paragraph) Text() []RichText        { return copySpans(p.text) }
func (p Paragraph) Children() []Block       { return copyBlocks(p.children) }

func (p Paragraph) ToStructure() Structure {
	out := p.metadata.ToStructure()
	out[string(ParagraphBlock)] = textBody(p.text, p.children)
	return out
}

func (p Paragraph) ToPartialUpdateStructure() Structure {
	return Structure{
		string(ParagraphBlock): map[string]interface{}{
			"rich_text": encodeRichTexts(p.text),
		},
		"archived": p.metadata.Archived(),
	}
}

func (p Paragraph) ToPlainText() string { return plainText(p.text) }

func (p Paragraph) ChangeText(text ...RichText) Paragraph {
	return p.rebuild(p.metadata, copySpans(text), p.children)
}

func (p Paragraph) AddText(text RichText) Paragraph {
	return p.rebuild(p.metadata, appendSpan(p.text, text), p.children)
}

func (p Paragraph) ChangeChildren(children ...Block) Paragraph {
	return p.rebuild(p.metadata.UpdateHasChildren(len(children) > 0), p.text, copyBlocks(children))
}

func (p Paragraph) AddChild(child Block) Paragraph {
	return p.rebuild(p.metadata.UpdateHasChildren(true), p.text, appendBlock(p.children, child))
}

func (p Paragraph) Archive() Block {
	return p.rebuild(p.metadata.Archive(), p.text, p.children)
}
