package models

import "fmt"

// Decoder builds blocks from decoded structures. The zero value uses
// DefaultMaxDepth.
type Decoder struct {
	// MaxDepth is the deepest level of nested children accepted. Values
	// below one mean DefaultMaxDepth.
	MaxDepth int
}

// Decode dispatches data to the decoder of the variant named by its type tag
// and decodes the whole subtree. The first error anywhere in the tree aborts
// the decode.
func (d Decoder) Decode(data Structure) (Block, error) {
	return decodeBlock(data, newDecodeState(d.MaxDepth))
}

// BlockFromStructure decodes data with the default depth limit.
func BlockFromStructure(data Structure) (Block, error) {
	return Decoder{}.Decode(data)
}

func decodeBlock(data map[string]interface{}, st decodeState) (Block, error) {
	raw, ok := data["type"]
	if !ok || raw == nil {
		return nil, &SchemaError{Path: "type", Reason: "missing required field"}
	}
	tag, ok := raw.(string)
	if !ok {
		return nil, &SchemaError{Path: "type", Reason: fmt.Sprintf("expected string, got %T", raw)}
	}

	switch BlockType(tag) {
	case ParagraphBlock:
		b, err := decodeParagraph(data, st)
		if err != nil {
			return nil, err
		}
		return b, nil
	case Heading1Block, Heading2Block, Heading3Block:
		b, err := decodeHeading(data, st)
		if err != nil {
			return nil, err
		}
		return b, nil
	case ToggleBlock:
		b, err := decodeToggle(data, st)
		if err != nil {
			return nil, err
		}
		return b, nil
	case QuoteBlock:
		b, err := decodeQuote(data, st)
		if err != nil {
			return nil, err
		}
		return b, nil
	case BulletedListItemBlock:
		b, err := decodeBulletedListItem(data, st)
		if err != nil {
			return nil, err
		}
		return b, nil
	case NumberedListItemBlock:
		b, err := decodeNumberedListItem(data, st)
		if err != nil {
			return nil, err
		}
		return b, nil
	case ToDoBlock:
		b, err := decodeToDo(data, st)
		if err != nil {
			return nil, err
		}
		return b, nil
	case CodeBlock:
		b, err := decodeCode(data)
		if err != nil {
			return nil, err
		}
		return b, nil
	case DividerBlock:
		b, err := decodeDivider(data)
		if err != nil {
			return nil, err
		}
		return b, nil
	}
	return nil, &UnknownBlockTypeError{Type: tag}
}
