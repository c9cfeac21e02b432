package models

// Divider is a horizontal rule. It carries no content.
type Divider struct {
	metadata BlockMetadata
}

func newDivider(metadata BlockMetadata) (Divider, error) {
	if err := metadata.CheckType(DividerBlock); err != nil {
		return Divider{}, err
	}
	if err := checkLeaf(metadata); err != nil {
		return Divider{}, err
	}
	return Divider{metadata: metadata}, nil
}

func NewDivider() Divider {
	return Divider{metadata: NewBlockMetadata(DividerBlock)}
}

func DividerFromStructure(data Structure) (Divider, error) {
	return decodeDivider(data)
}

func decodeDivider(data map[string]interface{}) (Divider, error) {
	metadata, err := metadataFromObject(data)
	if err != nil {
		return Divider{}, err
	}
	if err := metadata.CheckType(DividerBlock); err != nil {
		return Divider{}, err
	}
	body, err := requiredObject(data, string(DividerBlock))
	if err != nil {
		return Divider{}, err
	}
	if err := rejectChildren(DividerBlock, body); err != nil {
		return Divider{}, err
	}
	return newDivider(metadata)
}

func (Divider) isBlock() {}

func (d Divider) Metadata() BlockMetadata { return d.metadata }
func (d Divider) ToPlainText() string     { return "" }

func (d Divider) ToStructure() Structure {
	out := d.metadata.ToStructure()
	out[string(DividerBlock)] = map[string]interface{}{}
	return out
}

func (d Divider) ToPartialUpdateStructure() Structure {
	return Structure{
		string(DividerBlock): map[string]interface{}{},
		"archived":           d.metadata.Archived(),
	}
}

func (d Divider) Archive() Block {
	out, err := newDivider(d.metadata.Archive())
	if err != nil {
		panic(err)
	}
	return out
}
