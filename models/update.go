package models

import (
	"fmt"
	"sort"
)

// ApplyPartialUpdate reads a body in the shape produced by
// ToPartialUpdateStructure and returns b with the named fields replaced.
// Fields left out of the body keep their current value. Children and the
// envelope other than archived cannot be changed this way.
func ApplyPartialUpdate(b Block, update Structure) (Block, error) {
	tag := b.Metadata().Type()
	if err := checkUpdateKeys(tag, update); err != nil {
		return nil, err
	}

	body, _, err := optionalObject(update, string(tag))
	if err != nil {
		return nil, err
	}
	if body == nil {
		body = map[string]interface{}{}
	}
	out, err := applyContent(b, body)
	if err != nil {
		return nil, PrefixPath(err, string(tag))
	}

	if _, ok := update["archived"]; ok {
		archived, err := optionalBool(update, "archived")
		if err != nil {
			return nil, err
		}
		switch {
		case archived:
			out = out.Archive()
		case out.Metadata().Archived():
			return nil, &SchemaError{Path: "archived", Reason: "archived blocks cannot be restored"}
		}
	}
	return out, nil
}

// checkUpdateKeys rejects keys that do not belong to a partial update of tag.
// A key naming another block type is reported as a type mismatch.
func checkUpdateKeys(tag BlockType, update Structure) error {
	keys := make([]string, 0, len(update))
	for key := range update {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch {
		case key == "archived" || key == string(tag):
		case key == "type":
			if s, ok := update[key].(string); !ok || s != string(tag) {
				return &TypeMismatchError{Path: "type", Expected: tag, Actual: BlockType(fmt.Sprint(update[key]))}
			}
		case BlockType(key).IsKnown():
			return &TypeMismatchError{Expected: tag, Actual: BlockType(key)}
		default:
			return &SchemaError{Path: key, Reason: "field cannot be updated"}
		}
	}
	return nil
}

func applyContent(b Block, body map[string]interface{}) (Block, error) {
	text, hasText, err := updatedSpans(body, "rich_text")
	if err != nil {
		return nil, err
	}

	switch v := b.(type) {
	case Paragraph:
		if hasText {
			v = v.ChangeText(text...)
		}
		return v, nil
	case Toggle:
		if hasText {
			v = v.ChangeText(text...)
		}
		return v, nil
	case Quote:
		if hasText {
			v = v.ChangeText(text...)
		}
		return v, nil
	case BulletedListItem:
		if hasText {
			v = v.ChangeText(text...)
		}
		return v, nil
	case NumberedListItem:
		if hasText {
			v = v.ChangeText(text...)
		}
		return v, nil
	case Heading:
		if hasText {
			v = v.ChangeText(text...)
		}
		if toggleable, ok, err := updatedBool(body, "is_toggleable"); err != nil {
			return nil, err
		} else if ok {
			v = v.ChangeToggleable(toggleable)
		}
		return v, nil
	case ToDo:
		if hasText {
			v = v.ChangeText(text...)
		}
		if checked, ok, err := updatedBool(body, "checked"); err != nil {
			return nil, err
		} else if ok && checked {
			v = v.Check()
		} else if ok {
			v = v.Uncheck()
		}
		return v, nil
	case Code:
		if hasText {
			v = v.ChangeText(text...)
		}
		caption, ok, err := updatedSpans(body, "caption")
		if err != nil {
			return nil, err
		}
		if ok {
			v = v.ChangeCaption(caption...)
		}
		language, ok, err := optionalString(body, "language")
		if err != nil {
			return nil, err
		}
		if ok {
			v = v.ChangeLanguage(language)
		}
		return v, nil
	case Divider:
		return v, nil
	}
	return nil, fmt.Errorf("unsupported block %T", b)
}

func updatedSpans(body map[string]interface{}, key string) ([]RichText, bool, error) {
	items, ok, err := optionalArray(body, key)
	if err != nil || !ok {
		return nil, false, err
	}
	spans, err := decodeRichTexts(items)
	if err != nil {
		return nil, false, PrefixPath(err, key)
	}
	return spans, true, nil
}

func updatedBool(body map[string]interface{}, key string) (bool, bool, error) {
	if v, ok := body[key]; !ok || v == nil {
		return false, false, nil
	}
	value, err := optionalBool(body, key)
	if err != nil {
		return false, false, err
	}
	return value, true, nil
}
