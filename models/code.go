package models

// DefaultCodeLanguage is the language the API assigns to unlabelled code.
const DefaultCodeLanguage = "plain text"

// Code is a block of source code. It has no children.
type Code struct {
	metadata BlockMetadata
	text     []RichText
	caption  []RichText
	language string
}

func newCode(metadata BlockMetadata, text, caption []RichText, language string) (Code, error) {
	if err := metadata.CheckType(CodeBlock); err != nil {
		return Code{}, err
	}
	if err := checkLeaf(metadata); err != nil {
		return Code{}, err
	}
	if language == "" {
		return Code{}, &SchemaError{Path: "language", Reason: "must not be empty"}
	}
	return Code{metadata: metadata, text: text, caption: caption, language: language}, nil
}

func (c Code) rebuild(metadata BlockMetadata, text, caption []RichText, language string) Code {
	out, err := newCode(metadata, text, caption, language)
	if err != nil {
		panic(err)
	}
	return out
}

func NewCode() Code {
	return Code{}.rebuild(NewBlockMetadata(CodeBlock), nil, nil, DefaultCodeLanguage)
}

func CodeFromString(content, language string) Code {
	if language == "" {
		language = DefaultCodeLanguage
	}
	return Code{}.rebuild(NewBlockMetadata(CodeBlock), []RichText{RichTextFromString(content)}, nil, language)
}

func CodeFromStructure(data Structure) (Code, error) {
	return decodeCode(data)
}

func decodeCode(data map[string]interface{}) (Code, error) {
	metadata, err := metadataFromObject(data)
	if err != nil {
		return Code{}, err
	}
	if err := metadata.CheckType(CodeBlock); err != nil {
		return Code{}, err
	}

	body, err := requiredObject(data, string(CodeBlock))
	if err != nil {
		return Code{}, err
	}
	if err := rejectChildren(CodeBlock, body); err != nil {
		return Code{}, err
	}
	text, err := decodeRichTextField(body, "rich_text")
	if err != nil {
		return Code{}, PrefixPath(err, string(CodeBlock))
	}
	var caption []RichText
	if items, ok, err := optionalArray(body, "caption"); err != nil {
		return Code{}, PrefixPath(err, string(CodeBlock))
	} else if ok {
		if caption, err = decodeRichTexts(items); err != nil {
			return Code{}, PrefixPath(err, string(CodeBlock)+".caption")
		}
	}
	language, err := requiredString(body, "language")
	if err != nil {
		return Code{}, PrefixPath(err, string(CodeBlock))
	}

	if err := checkLeaf(metadata); err != nil {
		return Code{}, err
	}
	code, err := newCode(metadata, text, caption, language)
	if err != nil {
		return Code{}, PrefixPath(err, string(CodeBlock))
	}
	return code, nil
}

func (Code) isBlock() {}

func (c Code) Metadata() BlockMetadata { return c.metadata }
func (c Code) Language() string        { return c.language }
func (c Code) Text() []RichText        { return copySpans(c.text) }
func (c Code) Caption() []RichText     { return copySpans(c.caption) }

func (c Code) ToStructure() Structure {
	out := c.metadata.ToStructure()
	out[string(CodeBlock)] = c.body()
	return out
}

func (c Code) ToPartialUpdateStructure() Structure {
	return Structure{
		string(CodeBlock): c.body(),
		"archived":        c.metadata.Archived(),
	}
}

func (c Code) body() map[string]interface{} {
	return map[string]interface{}{
		"rich_text": encodeRichTexts(c.text),
		"caption":   encodeRichTexts(c.caption),
		"language":  c.language,
	}
}

func (c Code) ToPlainText() string { return plainText(c.text) }

func (c Code) ChangeText(text ...RichText) Code {
	return c.rebuild(c.metadata, copySpans(text), c.caption, c.language)
}

func (c Code) AddText(text RichText) Code {
	return c.rebuild(c.metadata, appendSpan(c.text, text), c.caption, c.language)
}

func (c Code) ChangeCaption(caption ...RichText) Code {
	return c.rebuild(c.metadata, c.text, copySpans(caption), c.language)
}

// ChangeLanguage sets the highlighting language; an empty string resets it
// to DefaultCodeLanguage.
func (c Code) ChangeLanguage(language string) Code {
	if language == "" {
		language = DefaultCodeLanguage
	}
	return c.rebuild(c.metadata, c.text, c.caption, language)
}

func (c Code) Archive() Block {
	return c.rebuild(c.metadata.Archive(), c.text, c.caption, c.language)
}
