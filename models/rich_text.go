package models

import "fmt"

type RichTextType string

const (
	RichTextText     RichTextType = "text"
	RichTextEquation RichTextType = "equation"
)

const DefaultColor = "default"

// Annotations hold the styling of a rich text span.
type Annotations struct {
	Bold          bool
	Italic        bool
	Strikethrough bool
	Underline     bool
	Code          bool
	Color         string
}

func DefaultAnnotations() Annotations {
	return Annotations{Color: DefaultColor}
}

func (a Annotations) toStructure() map[string]interface{} {
	return map[string]interface{}{
		"bold":          a.Bold,
		"italic":        a.Italic,
		"strikethrough": a.Strikethrough,
		"underline":     a.Underline,
		"code":          a.Code,
		"color":         a.Color,
	}
}

func annotationsFromStructure(obj map[string]interface{}) (Annotations, error) {
	a := DefaultAnnotations()
	var err error
	if a.Bold, err = optionalBool(obj, "bold"); err != nil {
		return a, err
	}
	if a.Italic, err = optionalBool(obj, "italic"); err != nil {
		return a, err
	}
	if a.Strikethrough, err = optionalBool(obj, "strikethrough"); err != nil {
		return a, err
	}
	if a.Underline, err = optionalBool(obj, "underline"); err != nil {
		return a, err
	}
	if a.Code, err = optionalBool(obj, "code"); err != nil {
		return a, err
	}
	color, ok, err := optionalString(obj, "color")
	if err != nil {
		return a, err
	}
	if ok {
		a.Color = color
	}
	return a, nil
}

// RichText is one immutable span of styled text.
type RichText struct {
	kind        RichTextType
	plainText   string
	href        string
	annotations Annotations
	content     string
	link        string
	expression  string
}

// RichTextFromString returns an unstyled text span.
func RichTextFromString(content string) RichText {
	return RichText{
		kind:        RichTextText,
		plainText:   content,
		annotations: DefaultAnnotations(),
		content:     content,
	}
}

// NewEquation returns an inline equation span.
func NewEquation(expression string) RichText {
	return RichText{
		kind:        RichTextEquation,
		plainText:   expression,
		annotations: DefaultAnnotations(),
		expression:  expression,
	}
}

func (r RichText) Type() RichTextType       { return r.kind }
func (r RichText) PlainText() string        { return r.plainText }
func (r RichText) Href() string             { return r.href }
func (r RichText) Link() string             { return r.link }
func (r RichText) Annotations() Annotations { return r.annotations }

// WithLink points a text span at url.
func (r RichText) WithLink(url string) RichText {
	r.link = url
	r.href = url
	return r
}

func (r RichText) WithAnnotations(a Annotations) RichText {
	if a.Color == "" {
		a.Color = DefaultColor
	}
	r.annotations = a
	return r
}

func (r RichText) ToStructure() Structure {
	out := Structure{
		"type":        string(r.kind),
		"plain_text":  r.plainText,
		"href":        nullableString(r.href),
		"annotations": r.annotations.toStructure(),
	}
	switch r.kind {
	case RichTextEquation:
		out["equation"] = map[string]interface{}{"expression": r.expression}
	default:
		var link interface{}
		if r.link != "" {
			link = map[string]interface{}{"url": r.link}
		}
		out["text"] = map[string]interface{}{"content": r.content, "link": link}
	}
	return out
}

// RichTextFromStructure decodes one span. plain_text is derived from the
// content when the input omits it, as request bodies usually do.
func RichTextFromStructure(data interface{}) (RichText, error) {
	obj, ok := objectOf(data)
	if !ok {
		return RichText{}, &SchemaError{Reason: fmt.Sprintf("expected rich text object, got %T", data)}
	}
	kind, err := requiredString(obj, "type")
	if err != nil {
		return RichText{}, err
	}

	r := RichText{kind: RichTextType(kind), annotations: DefaultAnnotations()}
	switch r.kind {
	case RichTextText:
		text, err := requiredObject(obj, "text")
		if err != nil {
			return RichText{}, err
		}
		if r.content, err = requiredString(text, "content"); err != nil {
			return RichText{}, PrefixPath(err, "text")
		}
		link, ok, err := optionalObject(text, "link")
		if err != nil {
			return RichText{}, PrefixPath(err, "text")
		}
		if ok {
			if r.link, err = requiredString(link, "url"); err != nil {
				return RichText{}, PrefixPath(err, "text.link")
			}
		}
		r.plainText = r.content
	case RichTextEquation:
		equation, err := requiredObject(obj, "equation")
		if err != nil {
			return RichText{}, err
		}
		if r.expression, err = requiredString(equation, "expression"); err != nil {
			return RichText{}, PrefixPath(err, "equation")
		}
		r.plainText = r.expression
	default:
		return RichText{}, &SchemaError{Path: "type", Reason: fmt.Sprintf("unsupported rich text type %q", kind)}
	}

	plain, ok, err := optionalString(obj, "plain_text")
	if err != nil {
		return RichText{}, err
	}
	if ok {
		r.plainText = plain
	}
	if r.href, _, err = optionalString(obj, "href"); err != nil {
		return RichText{}, err
	}
	annotations, ok, err := optionalObject(obj, "annotations")
	if err != nil {
		return RichText{}, err
	}
	if ok {
		if r.annotations, err = annotationsFromStructure(annotations); err != nil {
			return RichText{}, PrefixPath(err, "annotations")
		}
	}
	return r, nil
}

func nullableString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
