// MockHandler 的模态处理器测试模拟实现。
//
// 支持固定转写结果、自定义合成与调用记录。
package mocks

import (
	"sync"

	"github.com/BaSui01/modality/types"
)

// MockHandler 是 modality.Handler 的模拟实现
type MockHandler struct {
	mu sync.Mutex

	modality   types.Modality
	transcript string
	mimeType   string
	fromText   func(text string) types.Output

	handleCalls   int
	toTextCalls   int
	fromTextCalls []string
}

// NewMockHandler 创建指定模态的 MockHandler
// 默认 ToText 返回空串，FromText 把文本编码为字节内容
func NewMockHandler(m types.Modality) *MockHandler {
	return &MockHandler{
		modality: m,
		mimeType: "application/octet-stream",
	}
}

// WithTranscript 设置 ToText 的固定返回值
func (h *MockHandler) WithTranscript(text string) *MockHandler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.transcript = text
	return h
}

// WithMimeType 设置输出的 MIME 类型
func (h *MockHandler) WithMimeType(mime string) *MockHandler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.mimeType = mime
	return h
}

// WithFromText 自定义 FromText 行为
func (h *MockHandler) WithFromText(fn func(text string) types.Output) *MockHandler {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.fromText = fn
	return h
}

// Modality 实现 modality.Handler
func (h *MockHandler) Modality() types.Modality {
	return h.modality
}

// Handle 原样透传内容
func (h *MockHandler) Handle(in types.Input) types.Output {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handleCalls++
	return types.Output{Modality: h.modality, Content: in.Content, MimeType: h.mimeType}
}

// ToText 返回固定转写结果
func (h *MockHandler) ToText(types.Input) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.toTextCalls++
	return h.transcript
}

// FromText 记录文本并生成输出
func (h *MockHandler) FromText(text string) types.Output {
	h.mu.Lock()
	h.fromTextCalls = append(h.fromTextCalls, text)
	fn := h.fromText
	mime := h.mimeType
	h.mu.Unlock()

	if fn != nil {
		return fn(text)
	}
	return types.Output{Modality: h.modality, Content: types.BytesContent([]byte(text)), MimeType: mime}
}

// --- 调用记录 ---

// HandleCalls 返回 Handle 调用次数
func (h *MockHandler) HandleCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.handleCalls
}

// ToTextCalls 返回 ToText 调用次数
func (h *MockHandler) ToTextCalls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.toTextCalls
}

// FromTextCalls 返回 FromText 收到的文本
func (h *MockHandler) FromTextCalls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.fromTextCalls...)
}
