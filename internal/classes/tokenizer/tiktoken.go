// Package tokenizer provides text tokenizers producing int32 token vectors.
package tokenizer

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/born-ml/shogun/internal/errors"
	"github.com/born-ml/shogun/internal/object"
	"github.com/born-ml/shogun/internal/sg"
)

// TikTokenName is the registered class name of TikToken.
const TikTokenName = "TikTokenizer"

// Supported encodings.
const (
	CL100kBase = "cl100k_base" // GPT-4, GPT-3.5-turbo
	P50kBase   = "p50k_base"   // GPT-3, Codex
	R50kBase   = "r50k_base"   // davinci, babbage
)

// TikToken tokenizes with an OpenAI BPE encoding from pkoukk/tiktoken-go.
// The encoding is loaded on first use and reloaded when the "encoding"
// parameter changes.
type TikToken struct {
	object.Base

	encoding string

	mu     sync.Mutex
	codec  *tiktoken.Tiktoken
	loaded string
}

// NewTikToken returns a tokenizer using cl100k_base.
func NewTikToken() *TikToken {
	return NewTikTokenWith(CL100kBase)
}

// NewTikTokenWith returns a tokenizer using the named encoding.
func NewTikTokenWith(encoding string) *TikToken {
	t := &TikToken{encoding: encoding}
	t.Init(t, TikTokenName)
	object.Register(&t.Base, "encoding", &t.encoding, "tiktoken encoding name", object.Hyperparameter)
	object.RegisterFunc(&t.Base, "vocab_size", t.VocabSize, "vocabulary size of the encoding")
	object.RegisterFunc(&t.Base, "eos_token", t.EOSToken, "end-of-text token id, -1 if unknown")
	return t
}

func (t *TikToken) codecFor() (*tiktoken.Tiktoken, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.codec != nil && t.loaded == t.encoding {
		return t.codec, nil
	}
	codec, err := tiktoken.GetEncoding(t.encoding)
	if err != nil {
		return nil, errors.Wrapf(err, "load tiktoken encoding %q", t.encoding)
	}
	t.codec, t.loaded = codec, t.encoding
	return codec, nil
}

// Load resolves the encoding without tokenizing anything.
func (t *TikToken) Load() error {
	_, err := t.codecFor()
	return err
}

// Encode converts text to token ids.
func (t *TikToken) Encode(text string) (*sg.Vector[int32], error) {
	codec, err := t.codecFor()
	if err != nil {
		return nil, err
	}
	ids := codec.Encode(text, nil, nil)
	v, err := sg.NewVector[int32](len(ids))
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return v, nil
	}
	data := v.Data()
	for i, id := range ids {
		data[i] = int32(id) //nolint:gosec // G115: vocabularies are far below 2^31.
	}
	return v, nil
}

// Decode converts token ids back to text.
func (t *TikToken) Decode(tokens *sg.Vector[int32]) (string, error) {
	codec, err := t.codecFor()
	if err != nil {
		return "", err
	}
	if tokens == nil || tokens.Len() == 0 {
		return "", nil
	}
	ids := make([]int, tokens.Len())
	for i, id := range tokens.Data() {
		ids[i] = int(id)
	}
	return codec.Decode(ids), nil
}

// VocabSize returns the number of ordinary tokens of the encoding.
func (t *TikToken) VocabSize() int {
	switch t.encoding {
	case CL100kBase:
		return 100256
	case P50kBase, R50kBase:
		return 50257
	default:
		return 0
	}
}

// EOSToken returns the <|endoftext|> id, or -1 for unknown encodings.
func (t *TikToken) EOSToken() int32 {
	switch t.encoding {
	case CL100kBase:
		return 100257
	case P50kBase, R50kBase:
		return 50256
	default:
		return -1
	}
}

// Register adds the tokenizer classes to r.
func Register(r *object.Registry) error {
	return r.Register(TikTokenName, func() object.Object { return NewTikToken() })
}

func init() {
	if err := Register(object.DefaultRegistry()); err != nil {
		panic(err)
	}
}
