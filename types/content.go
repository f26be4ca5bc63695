package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"unicode/utf8"
)

// Content is the payload body: either a byte sequence or a decoded string.
// Exactly one branch is present. The zero value is the empty string.
type Content struct {
	data    []byte
	text    string
	isBytes bool
}

// TextContent wraps a decoded string.
func TextContent(s string) Content {
	return Content{text: s}
}

// BytesContent wraps a byte sequence. The slice is copied.
func BytesContent(b []byte) Content {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Content{data: cp, isBytes: true}
}

// IsBytes reports whether the byte branch is present.
func (c Content) IsBytes() bool {
	return c.isBytes
}

// Bytes returns a copy of the byte branch, or the UTF-8 encoding of the string branch.
func (c Content) Bytes() []byte {
	if c.isBytes {
		cp := make([]byte, len(c.data))
		copy(cp, c.data)
		return cp
	}
	return []byte(c.text)
}

// Text returns the string branch, or the byte branch decoded as UTF-8 with
// invalid sequences replaced by U+FFFD.
func (c Content) Text() string {
	if !c.isBytes {
		return c.text
	}
	return DecodeLossy(c.data)
}

// Len returns the length in bytes of the present branch.
func (c Content) Len() int {
	if c.isBytes {
		return len(c.data)
	}
	return len(c.text)
}

// Equal reports whether both values carry the same branch and the same bytes.
func (c Content) Equal(other Content) bool {
	if c.isBytes != other.isBytes {
		return false
	}
	if c.isBytes {
		return bytes.Equal(c.data, other.data)
	}
	return c.text == other.text
}

// String implements fmt.Stringer.
func (c Content) String() string {
	return c.Text()
}

type contentJSON struct {
	Text  *string `json:"text,omitempty"`
	Bytes []byte  `json:"bytes,omitempty"`
}

// MarshalJSON encodes the present branch; bytes are base64 encoded.
func (c Content) MarshalJSON() ([]byte, error) {
	if c.isBytes {
		data := c.data
		if data == nil {
			data = []byte{}
		}
		return json.Marshal(struct {
			Bytes []byte `json:"bytes"`
		}{Bytes: data})
	}
	text := c.text
	return json.Marshal(contentJSON{Text: &text})
}

// UnmarshalJSON decodes a value produced by MarshalJSON.
func (c *Content) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode content: %w", err)
	}
	if b, ok := raw["bytes"]; ok {
		var decoded []byte
		if err := json.Unmarshal(b, &decoded); err != nil {
			return fmt.Errorf("decode content bytes: %w", err)
		}
		*c = BytesContent(decoded)
		return nil
	}
	var s string
	if t, ok := raw["text"]; ok {
		if err := json.Unmarshal(t, &s); err != nil {
			return fmt.Errorf("decode content text: %w", err)
		}
	}
	*c = TextContent(s)
	return nil
}

// DecodeLossy decodes b as UTF-8, replacing each invalid sequence with U+FFFD.
func DecodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return string(bytes.ToValidUTF8(b, []byte(string(utf8.RuneError))))
}
