package models

import (
	"fmt"
	"strings"
)

// DefaultMaxDepth bounds how deeply nested children are decoded. Input trees
// come from outside the process and are not trusted to be shallow.
const DefaultMaxDepth = 64

type decodeState struct {
	depth    int
	maxDepth int
}

func newDecodeState(maxDepth int) decodeState {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return decodeState{maxDepth: maxDepth}
}

func (s decodeState) descend() (decodeState, error) {
	if s.depth >= s.maxDepth {
		return s, &SchemaError{Reason: fmt.Sprintf("maximum nesting depth %d exceeded", s.maxDepth)}
	}
	return decodeState{depth: s.depth + 1, maxDepth: s.maxDepth}, nil
}

func decodeRichTexts(items []interface{}) ([]RichText, error) {
	spans := make([]RichText, 0, len(items))
	for i, item := range items {
		span, err := RichTextFromStructure(item)
		if err != nil {
			return nil, PrefixPath(err, indexed("", i))
		}
		spans = append(spans, span)
	}
	return spans, nil
}

func decodeRichTextField(body map[string]interface{}, key string) ([]RichText, error) {
	items, err := requiredArray(body, key)
	if err != nil {
		return nil, err
	}
	spans, err := decodeRichTexts(items)
	if err != nil {
		return nil, PrefixPath(err, key)
	}
	return spans, nil
}

func encodeRichTexts(spans []RichText) []interface{} {
	out := make([]interface{}, len(spans))
	for i, span := range spans {
		out[i] = span.ToStructure()
	}
	return out
}

// decodeChildren reads the optional children list of a variant body,
// dispatching every element through the factory.
func decodeChildren(body map[string]interface{}, st decodeState) ([]Block, error) {
	items, ok, err := optionalArray(body, "children")
	if err != nil || !ok {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	next, err := st.descend()
	if err != nil {
		return nil, PrefixPath(err, "children")
	}
	children := make([]Block, 0, len(items))
	for i, item := range items {
		obj, ok := objectOf(item)
		if !ok {
			return nil, &SchemaError{Path: indexed("children", i), Reason: fmt.Sprintf("expected block object, got %T", item)}
		}
		child, err := decodeBlock(obj, next)
		if err != nil {
			return nil, PrefixPath(err, indexed("children", i))
		}
		children = append(children, child)
	}
	return children, nil
}

func encodeChildren(children []Block) []interface{} {
	out := make([]interface{}, len(children))
	for i, child := range children {
		out[i] = child.ToStructure()
	}
	return out
}

// textBody encodes the common {rich_text, children} sub-structure. children
// is always present, so absent and empty lists both encode as [].
func textBody(text []RichText, children []Block) map[string]interface{} {
	return map[string]interface{}{
		"rich_text": encodeRichTexts(text),
		"children":  encodeChildren(children),
	}
}

// rejectChildren fails when the body of a block type without children
// carries a non-empty children list.
func rejectChildren(tag BlockType, body map[string]interface{}) error {
	items, _, err := optionalArray(body, "children")
	if err != nil {
		return PrefixPath(err, string(tag))
	}
	if len(items) > 0 {
		return &SchemaError{Path: string(tag) + ".children", Reason: "block type cannot have children"}
	}
	return nil
}

// checkLeaf rejects has_children on a block type that cannot have children.
func checkLeaf(metadata BlockMetadata) error {
	if metadata.HasChildren() {
		return &SchemaError{Path: "has_children", Reason: "block type cannot have children"}
	}
	return nil
}

// checkChildren enforces that loaded children are reflected in has_children.
// has_children without loaded children is allowed: the API reports the flag
// without embedding the subtree.
func checkChildren(metadata BlockMetadata, children []Block) error {
	if len(children) > 0 && !metadata.HasChildren() {
		return &SchemaError{Path: "has_children", Reason: "false while children are present"}
	}
	return nil
}

func plainText(spans []RichText) string {
	var b strings.Builder
	for _, span := range spans {
		b.WriteString(span.PlainText())
	}
	return b.String()
}

func copySpans(spans []RichText) []RichText {
	if len(spans) == 0 {
		return nil
	}
	out := make([]RichText, len(spans))
	copy(out, spans)
	return out
}

func appendSpan(spans []RichText, span RichText) []RichText {
	out := make([]RichText, len(spans), len(spans)+1)
	copy(out, spans)
	return append(out, span)
}

func copyBlocks(blocks []Block) []Block {
	if len(blocks) == 0 {
		return nil
	}
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}

func appendBlock(blocks []Block, block Block) []Block {
	out := make([]Block, len(blocks), len(blocks)+1)
	copy(out, blocks)
	return append(out, block)
}
