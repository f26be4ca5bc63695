package types

import (
	"fmt"
	"math"
)

// Default MIME types.
const (
	MimeTextPlain       = "text/plain"
	MimeApplicationJSON = "application/json"
)

// Input is a payload in a specific modality, built by the caller before routing
// or conversion. The core never mutates it.
type Input struct {
	Modality Modality       `json:"modality"`
	Content  Content        `json:"content"`
	MimeType string         `json:"mime_type"`
	Metadata map[string]any `json:"metadata"`
}

// InputOption customizes NewInput.
type InputOption func(*Input)

// WithMimeType overrides the default "text/plain" MIME type.
func WithMimeType(mime string) InputOption {
	return func(in *Input) {
		if mime != "" {
			in.MimeType = mime
		}
	}
}

// WithMetadata attaches caller metadata. The map is copied; the core never reads it.
func WithMetadata(md map[string]any) InputOption {
	return func(in *Input) {
		for k, v := range md {
			in.Metadata[k] = v
		}
	}
}

// NewInput 创建输入载荷并校验模态
func NewInput(modality Modality, content Content, opts ...InputOption) (Input, error) {
	if !modality.IsValid() {
		return Input{}, NewError(ErrValidation, "invalid input modality "+quote(string(modality))).
			WithField("modality")
	}
	in := Input{
		Modality: modality,
		Content:  content,
		MimeType: MimeTextPlain,
		Metadata: make(map[string]any),
	}
	for _, opt := range opts {
		opt(&in)
	}
	return in, nil
}

// Output is a payload produced by a handler.
type Output struct {
	Modality Modality `json:"modality"`
	Content  Content  `json:"content"`
	MimeType string   `json:"mime_type"`
}

// ConversionResult is the outcome of a single Convert call.
type ConversionResult struct {
	SourceModality Modality `json:"source_modality"`
	TargetModality Modality `json:"target_modality"`
	Output         Output   `json:"output"`
	QualityScore   float64  `json:"quality_score"`
}

// NewConversionResult 构造转换结果，quality 超出 [0, 1] 时立即返回校验错误
func NewConversionResult(source, target Modality, out Output, quality float64) (ConversionResult, error) {
	r := ConversionResult{
		SourceModality: source,
		TargetModality: target,
		Output:         out,
		QualityScore:   quality,
	}
	if err := r.Validate(); err != nil {
		return ConversionResult{}, err
	}
	return r, nil
}

// Validate checks the field constraints of r.
func (r ConversionResult) Validate() error {
	if math.IsNaN(r.QualityScore) || r.QualityScore < 0 || r.QualityScore > 1 {
		return NewError(ErrValidation,
			fmt.Sprintf("quality_score %v outside [0.0, 1.0]", r.QualityScore)).
			WithField("quality_score")
	}
	if !r.SourceModality.IsValid() {
		return NewError(ErrValidation, "invalid source modality "+quote(string(r.SourceModality))).
			WithField("source_modality")
	}
	if !r.TargetModality.IsValid() {
		return NewError(ErrValidation, "invalid target modality "+quote(string(r.TargetModality))).
			WithField("target_modality")
	}
	return nil
}

func quote(s string) string {
	return fmt.Sprintf("%q", s)
}
