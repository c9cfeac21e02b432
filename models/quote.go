package models

// Quote is a block of quoted rich text.
type Quote struct {
	metadata BlockMetadata
	text     []RichText
	children []Block
}

func newQuote(metadata BlockMetadata, text []RichText, children []Block) (Quote, error) {
	if err := metadata.CheckType(QuoteBlock); err != nil {
		return Quote{}, err
	}
	if err := checkChildren(metadata, children); err != nil {
		return Quote{}, err
	}
	return Quote{metadata: metadata, text: text, children: children}, nil
}

func (q Quote) rebuild(metadata BlockMetadata, text []RichText, children []Block) Quote {
	out, err := newQuote(metadata, text, children)
	if err != nil {
		panic(err)
	}
	return out
}

func NewQuote() Quote {
	return Quote{}.rebuild(NewBlockMetadata(QuoteBlock), nil, nil)
}

func QuoteFromString(content string) Quote {
	return Quote{}.rebuild(NewBlockMetadata(QuoteBlock), []RichText{RichTextFromString(content)}, nil)
}

func QuoteFromStructure(data Structure) (Quote, error) {
	return decodeQuote(data, newDecodeState(DefaultMaxDepth))
}

func decodeQuote(data map[string]interface{}, st decodeState) (Quote, error) {
	metadata, err := metadataFromObject(data)
	if err != nil {
		return Quote{}, err
	}
	if err := metadata.CheckType(QuoteBlock); err != nil {
		return Quote{}, err
	}

	body, err := requiredObject(data, string(QuoteBlock))
	if err != nil {
		return Quote{}, err
	}
	text, err := decodeRichTextField(body, "rich_text")
	if err != nil {
		return Quote{}, PrefixPath(err, string(QuoteBlock))
	}
	children, err := decodeChildren(body, st)
	if err != nil {
		return Quote{}, PrefixPath(err, string(QuoteBlock))
	}

	return newQuote(metadata, text, children)
}

func (Quote) isBlock() {}

func (q Quote) Metadata() BlockMetadata { return q.metadata }
func (q Quote) Text() []RichText        { return copySpans(q.text) }
func (q Quote) Children() []Block       { return copyBlocks(q.children) }

func (q Quote) ToStructure() Structure {
	out := q.metadata.ToStructure()
	out[string(QuoteBlock)] = textBody(q.text, q.children)
	return out
}

func (q Quote) ToPartialUpdateStructure() Structure {
	return Structure{
		string(QuoteBlock): map[string]interface{}{
			"rich_text": encodeRichTexts(q.text),
		},
		"archived": q.metadata.Archived(),
	}
}

func (q Quote) ToPlainText() string { return plainText(q.text) }

func (q Quote) ChangeText(text ...RichText) Quote {
	return q.rebuild(q.metadata, copySpans(text), q.children)
}

func (q Quote) AddText(text RichText) Quote {
	return q.rebuild(q.metadata, appendSpan(q.text, text), q.children)
}

func (q Quote) ChangeChildren(children ...Block) Quote {
	return q.rebuild(q.metadata.UpdateHasChildren(len(children) > 0), q.text, copyBlocks(children))
}

func (q Quote) AddChild(child Block) Quote {
	return q.rebuild(q.metadata.UpdateHasChildren(true), q.text, appendBlock(q.children, child))
}

func (q Quote) Archive() Block {
	return q.rebuild(q.metadata.Archive(), q.text, q.children)
}
