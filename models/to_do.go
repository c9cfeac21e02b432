package models

// ToDo is a checklist item.
type ToDo struct {
	metadata BlockMetadata
	text     []RichText
	checked  bool
	children []Block
}

func newToDo(metadata BlockMetadata, text []RichText, checked bool, children []Block) (ToDo, error) {
	if err := metadata.CheckType(ToDoBlock); err != nil {
		return ToDo{}, err
	}
	if err := checkChildren(metadata, children); err != nil {
		return ToDo{}, err
	}
	return ToDo{metadata: metadata, text: text, checked: checked, children: children}, nil
}

func (t ToDo) rebuild(metadata BlockMetadata, text []RichText, checked bool, children []Block) ToDo {
	out, err := newToDo(metadata, text, checked, children)
	if err != nil {
		panic(err)
	}
	return out
}

func NewToDo() ToDo {
	return ToDo{}.rebuild(NewBlockMetadata(ToDoBlock), nil, false, nil)
}

func ToDoFromString(content string) ToDo {
	return ToDo{}.rebuild(NewBlockMetadata(ToDoBlock), []RichText{RichTextFromString(content)}, false, nil)
}

func ToDoFromStructure(data Structure) (ToDo, error) {
	return decodeToDo(data, newDecodeState(DefaultMaxDepth))
}

func decodeToDo(data map[string]interface{}, st decodeState) (ToDo, error) {
	metadata, err := metadataFromObject(data)
	if err != nil {
		return ToDo{}, err
	}
	if err := metadata.CheckType(ToDoBlock); err != nil {
		return ToDo{}, err
	}

	body, err := requiredObject(data, string(ToDoBlock))
	if err != nil {
		return ToDo{}, err
	}
	text, err := decodeRichTextField(body, "rich_text")
	if err != nil {
		return ToDo{}, PrefixPath(err, string(ToDoBlock))
	}
	checked, err := optionalBool(body, "checked")
	if err != nil {
		return ToDo{}, PrefixPath(err, string(ToDoBlock))
	}
	children, err := decodeChildren(body, st)
	if err != nil {
		return ToDo{}, PrefixPath(err, string(ToDoBlock))
	}

	return newToDo(metadata, text, checked, children)
}

func (ToDo) isBlock() {}

func (t ToDo) Metadata() BlockMetadata { return t.metadata }
func (t ToDo) IsChecked() bool         { return t.checked }
func (t ToDo) Text() []RichText        { return copySpans(t.text) }
func (t ToDo) Children() []Block       { return copyBlocks(t.children) }

func (t ToDo) ToStructure() Structure {
	body := textBody(t.text, t.children)
	body["checked"] = t.checked

	out := t.metadata.ToStructure()
	out[string(ToDoBlock)] = body
	return out
}

func (t ToDo) ToPartialUpdateStructure() Structure {
	return Structure{
		string(ToDoBlock): map[string]interface{}{
			"rich_text": encodeRichTexts(t.text),
			"checked":   t.checked,
		},
		"archived": t.metadata.Archived(),
	}
}

func (t ToDo) ToPlainText() string { return plainText(t.text) }

func (t ToDo) ChangeText(text ...RichText) ToDo {
	return t.rebuild(t.metadata, copySpans(text), t.checked, t.children)
}

func (t ToDo) AddText(text RichText) ToDo {
	return t.rebuild(t.metadata, appendSpan(t.text, text), t.checked, t.children)
}

func (t ToDo) Check() ToDo   { return t.rebuild(t.metadata, t.text, true, t.children) }
func (t ToDo) Uncheck() ToDo { return t.rebuild(t.metadata, t.text, false, t.children) }

func (t ToDo) ChangeChildren(children ...Block) ToDo {
	return t.rebuild(t.metadata.UpdateHasChildren(len(children) > 0), t.text, t.checked, copyBlocks(children))
}

func (t ToDo) AddChild(child Block) ToDo {
	return t.rebuild(t.metadata.UpdateHasChildren(true), t.text, t.checked, appendBlock(t.children, child))
}

func (t ToDo) Archive() Block {
	return t.rebuild(t.metadata.Archive(), t.text, t.checked, t.children)
}
