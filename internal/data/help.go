// Package data loads static lookup tables shipped alongside the binaries.
package data

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// HelpTopic is one entry in the help menu.
type HelpTopic struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Body        string `yaml:"body"`
}

// HelpTable holds all help topics indexed by lowercased name.
type HelpTable struct {
	topics map[string]*HelpTopic
	order  []string
}

// Get returns a topic by name, case-insensitively, or nil if not found.
func (t *HelpTable) Get(name string) *HelpTopic {
	return t.topics[strings.ToLower(strings.TrimSpace(name))]
}

// Names returns topic names in file order.
func (t *HelpTable) Names() []string {
	return t.order
}

// Count returns the number of topics loaded.
func (t *HelpTable) Count() int {
	return len(t.topics)
}

type helpFile struct {
	Topics []HelpTopic `yaml:"topics"`
}

// LoadHelpTable loads the help topics from a YAML file.
func LoadHelpTable(path string) (*HelpTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read help_topics: %w", err)
	}
	var f helpFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse help_topics: %w", err)
	}

	t := &HelpTable{topics: make(map[string]*HelpTopic, len(f.Topics))}
	for i := range f.Topics {
		topic := &f.Topics[i]
		if topic.Name == "" {
			return nil, fmt.Errorf("help_topics entry %d: missing name", i)
		}
		key := strings.ToLower(topic.Name)
		if _, dup := t.topics[key]; dup {
			return nil, fmt.Errorf("help_topics: duplicate topic %q", topic.Name)
		}
		t.topics[key] = topic
		t.order = append(t.order, topic.Name)
	}
	return t, nil
}
