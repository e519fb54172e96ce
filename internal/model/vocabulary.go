package model

import (
	"fmt"
	"strings"
)

// Vocabulary 一个维度的固定有序类别集合
type Vocabulary struct {
	Name       string
	Categories []string
	// Mapping 原始答案 -> 规范类别
	Mapping map[string]string
	// CatchAll 未映射答案的兜底类别；为空表示无兜底，未映射行被排除
	CatchAll string
}

// MustVocabulary 构造并校验词表，映射目标必须属于类别集合
func MustVocabulary(name string, categories []string, mapping map[string]string, catchAll string) *Vocabulary {
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c] = true
	}
	for raw, c := range mapping {
		if !known[c] {
			panic(fmt.Sprintf("vocabulary %s: %q maps to unknown category %q", name, raw, c))
		}
	}
	if catchAll != "" && !known[catchAll] {
		panic(fmt.Sprintf("vocabulary %s: catch-all %q not in categories", name, catchAll))
	}
	return &Vocabulary{Name: name, Categories: categories, Mapping: mapping, CatchAll: catchAll}
}

// IdentityVocabulary 类别即原始答案
func IdentityVocabulary(name string, categories []string) *Vocabulary {
	mapping := make(map[string]string, len(categories))
	for _, c := range categories {
		mapping[c] = c
	}
	return &Vocabulary{Name: name, Categories: categories, Mapping: mapping}
}

// Map 原始答案映射到规范类别
func (v *Vocabulary) Map(raw string) (string, bool) {
	if c, ok := v.Mapping[strings.TrimSpace(raw)]; ok {
		return c, true
	}
	if v.CatchAll != "" {
		return v.CatchAll, true
	}
	return "", false
}

// Has 是否为本词表类别
func (v *Vocabulary) Has(category string) bool {
	for _, c := range v.Categories {
		if c == category {
			return true
		}
	}
	return false
}
