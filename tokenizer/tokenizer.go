// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tokenizer provides text tokenizers producing int32 vectors.
//
// Example:
//
//	tok := tokenizer.NewTikToken()
//	defer tok.Unref()
//
//	ids, err := tok.Encode("Hello, world!")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ids.Release()
//	text, err := tok.Decode(ids)
package tokenizer

import internaltokenizer "github.com/born-ml/shogun/internal/classes/tokenizer"

// TikTokenName is the registered class name of TikToken.
const TikTokenName = internaltokenizer.TikTokenName

// Supported encodings.
const (
	CL100kBase = internaltokenizer.CL100kBase
	P50kBase   = internaltokenizer.P50kBase
	R50kBase   = internaltokenizer.R50kBase
)

// TikToken tokenizes with an OpenAI BPE encoding.
type TikToken = internaltokenizer.TikToken

// NewTikToken returns a cl100k_base tokenizer.
func NewTikToken() *TikToken { return internaltokenizer.NewTikToken() }

// NewTikTokenWith returns a tokenizer for the named encoding.
func NewTikTokenWith(encoding string) *TikToken { return internaltokenizer.NewTikTokenWith(encoding) }
