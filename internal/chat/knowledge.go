package chat

import (
	_ "embed"
	"fmt"

	"mediaplanner/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed data/knowledge.yaml
var knowledgeYAML []byte

type categoryEntry struct {
	Focus   string   `yaml:"focus"`
	Context []string `yaml:"context"`
	Answer  string   `yaml:"answer"`
}

// Knowledge holds prompt fragments and the canned knowledge base
type Knowledge struct {
	SystemPrompt       string                               `yaml:"systemPrompt"`
	SummaryInstruction string                               `yaml:"summaryPrompt"`
	AdviceFallback     string                               `yaml:"adviceFallback"`
	Categories         map[model.ChatCategory]categoryEntry `yaml:"categories"`
}

// LoadKnowledge parses the embedded knowledge base
func LoadKnowledge() (*Knowledge, error) {
	var k Knowledge
	if err := yaml.Unmarshal(knowledgeYAML, &k); err != nil {
		return nil, fmt.Errorf("parse knowledge: %w", err)
	}
	if _, ok := k.Categories[model.CategoryGeneral]; !ok {
		return nil, fmt.Errorf("knowledge base has no %s category", model.CategoryGeneral)
	}
	return &k, nil
}

func MustLoadKnowledge() *Knowledge {
	k, err := LoadKnowledge()
	if err != nil {
		panic(err)
	}
	return k
}

func (k *Knowledge) entry(c model.ChatCategory) categoryEntry {
	if e, ok := k.Categories[c]; ok {
		return e
	}
	return k.Categories[model.CategoryGeneral]
}

// Context returns a copy of the reference snippets for a category
func (k *Knowledge) Context(c model.ChatCategory) []string {
	return append([]string(nil), k.entry(c).Context...)
}

// CannedAnswer is served when no generator is configured
func (k *Knowledge) CannedAnswer(c model.ChatCategory) string {
	return k.entry(c).Answer
}
