package modality

import (
	"bytes"
	"encoding/json"
	"strings"
)

// envelopeKey is the single field used to wrap text that is not valid JSON.
const envelopeKey = "text"

const jsonIndent = "  "

// orderedObject is a JSON object that remembers key insertion order.
// A repeated key keeps its first position and takes the last value.
type orderedObject struct {
	keys   []string
	values map[string]any
}

func newOrderedObject() *orderedObject {
	return &orderedObject{values: make(map[string]any)}
}

func (o *orderedObject) set(key string, v any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

// ParseJSON parses raw as a single JSON document. The returned value keeps
// object key order; numbers are kept as json.Number literals.
func ParseJSON(raw string) (any, bool) {
	if !json.Valid([]byte(raw)) {
		return nil, false
	}
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	v, err := decodeOrdered(dec)
	if err != nil {
		return nil, false
	}
	return v, true
}

func decodeOrdered(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		obj := newOrderedObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			v, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	default:
		items := make([]any, 0)
		for dec.More() {
			v, err := decodeOrdered(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	}
}

// FormatJSON re-serializes raw with two-space indentation when it parses as
// JSON. ok is false, and doc empty, when raw is not a JSON document.
func FormatJSON(raw string) (doc string, ok bool) {
	v, ok := ParseJSON(raw)
	if !ok {
		return "", false
	}
	return renderJSON(v), true
}

// Envelope wraps text in a single-field {"text": ...} object.
func Envelope(text string) string {
	obj := newOrderedObject()
	obj.set(envelopeKey, text)
	return renderJSON(obj)
}

// NormalizeJSON returns the formatted document, or the envelope of raw when
// raw is not JSON. The result is always valid JSON.
func NormalizeJSON(raw string) string {
	if doc, ok := FormatJSON(raw); ok {
		return doc
	}
	return Envelope(raw)
}

func renderJSON(v any) string {
	var buf bytes.Buffer
	writeJSON(&buf, v, 0)
	return buf.String()
}

func writeJSON(buf *bytes.Buffer, v any, depth int) {
	switch val := v.(type) {
	case *orderedObject:
		if len(val.keys) == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteByte('{')
		for i, key := range val.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeNewline(buf, depth+1)
			writeJSONString(buf, key)
			buf.WriteString(": ")
			writeJSON(buf, val.values[key], depth+1)
		}
		writeNewline(buf, depth)
		buf.WriteByte('}')
	case []any:
		if len(val) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeNewline(buf, depth+1)
			writeJSON(buf, item, depth+1)
		}
		writeNewline(buf, depth)
		buf.WriteByte(']')
	case string:
		writeJSONString(buf, val)
	case json.Number:
		buf.WriteString(val.String())
	case bool:
		if val {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case nil:
		buf.WriteString("null")
	}
}

func writeNewline(buf *bytes.Buffer, depth int) {
	buf.WriteByte('\n')
	for i := 0; i < depth; i++ {
		buf.WriteString(jsonIndent)
	}
}

// writeJSONString quotes s without escaping non-ASCII or HTML characters.
func writeJSONString(buf *bytes.Buffer, s string) {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte{'\n'}))
}
