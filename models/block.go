package models

// Block is the capability set shared by every block variant. The unexported
// marker keeps the set of implementations closed to this package.
type Block interface {
	Metadata() BlockMetadata
	// ToStructure encodes the block and its whole subtree.
	ToStructure() Structure
	// ToPartialUpdateStructure encodes only what an update request may
	// overwrite: the variant content and the archived flag. It never carries
	// children, has_children, id or timestamps.
	ToPartialUpdateStructure() Structure
	// ToPlainText concatenates the plain text of the block's own spans.
	ToPlainText() string
	Archive() Block

	isBlock()
}

// Parent is implemented by variants that own child blocks. Loaded children
// always imply has_children, but has_children may be true with no children
// loaded when the subtree was not fetched.
type Parent interface {
	Block
	Children() []Block
}

// TextBlock is implemented by variants whose content is a rich text sequence.
type TextBlock interface {
	Block
	Text() []RichText
}

// ChildrenOf returns the children of b, or nil for variants without any.
func ChildrenOf(b Block) []Block {
	if p, ok := b.(Parent); ok {
		return p.Children()
	}
	return nil
}
