package modality

import (
	"strings"
	"unicode"

	"github.com/BaSui01/modality/types"
)

// Router dispatches inputs to the handler for their declared modality and
// classifies raw content.
type Router struct {
	registry *Registry
}

// NewRouter creates a router. Without options it owns a fresh default registry.
func NewRouter(opts ...Option) *Router {
	o := buildOptions(opts)
	return &Router{registry: o.registry}
}

// Registry returns the registry the router reads from.
func (r *Router) Registry() *Registry {
	return r.registry
}

// Route hands in to the handler registered for in.Modality.
func (r *Router) Route(in types.Input) (types.Output, error) {
	h, ok := r.registry.Lookup(in.Modality)
	if !ok {
		return types.Output{}, types.NewUnregisteredError(in.Modality)
	}
	return h.Handle(in), nil
}

// Detect classifies raw content. See the package-level Detect.
func (r *Router) Detect(raw types.Content) types.Modality {
	return Detect(raw)
}

// DetectBytes classifies a raw byte sequence.
func (r *Router) DetectBytes(raw []byte) types.Modality {
	return DetectText(types.DecodeLossy(raw))
}

// DetectString classifies an already decoded string.
func (r *Router) DetectString(raw string) types.Modality {
	return DetectText(raw)
}

// Detect 启发式检测原始内容的模态
//
// 规则（按顺序）：
//  1. 字节内容按 UTF-8 宽松解码（非法序列替换为 U+FFFD）
//  2. 去除首尾空白（含 \x1c-\x1f 分隔符）；若非空且首字符为 { 或 [，尝试完整 JSON 解析
//  3. 解析成功 → structured
//  4. 其余情况 → text
//
// 检测永远不会返回 voice、image 或 video。
func Detect(raw types.Content) types.Modality {
	return DetectText(raw.Text())
}

// DetectText applies the detection rules to decoded text.
func DetectText(text string) types.Modality {
	stripped := strings.TrimFunc(text, isDetectSpace)
	if stripped != "" && (stripped[0] == '{' || stripped[0] == '[') {
		if _, ok := ParseJSON(stripped); ok {
			return types.ModalityStructured
		}
	}
	return types.ModalityText
}

// isDetectSpace reports Unicode white space plus the ASCII file, group,
// record and unit separators, which also count as blank around a document.
func isDetectSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}
