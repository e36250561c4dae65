// Package prompts holds the model instructions used across the service. The
// catalogue is embedded and can be overridden field by field from a YAML file.
package prompts

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultCatalog []byte

// Example is a single few-shot exchange.
type Example struct {
	User  string `yaml:"user"`
	Model string `yaml:"model"`
}

// Catalog is the set of prompts the service sends to models.
type Catalog struct {
	CallSystem       string   `yaml:"call_system"`
	Ticket           string   `yaml:"ticket"`
	TweetSystem      string   `yaml:"tweet_system"`
	TweetExample     Example  `yaml:"tweet_example"`
	Sentiment        string   `yaml:"sentiment"`
	SentimentClasses []string `yaml:"sentiment_classes"`

	ticketTmpl    *template.Template
	sentimentTmpl *template.Template
}

// TranscriptLine is the view of a transcript entry the ticket prompt renders.
type TranscriptLine struct {
	Role string
	Text string
}

// Load returns the embedded catalogue, with any fields set in the YAML file at
// path taking precedence. An empty path loads the defaults only.
func Load(path string) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(defaultCatalog, &c); err != nil {
		return nil, fmt.Errorf("failed to parse embedded prompts: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read prompts file: %w", err)
		}
		// Unmarshalling onto the defaults leaves absent keys untouched.
		if err := yaml.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("failed to parse prompts file %s: %w", path, err)
		}
	}

	var err error
	if c.ticketTmpl, err = template.New("ticket").Parse(c.Ticket); err != nil {
		return nil, fmt.Errorf("invalid ticket prompt: %w", err)
	}
	if c.sentimentTmpl, err = template.New("sentiment").Parse(c.Sentiment); err != nil {
		return nil, fmt.Errorf("invalid sentiment prompt: %w", err)
	}
	return &c, nil
}

// TicketPrompt renders the ticket extraction prompt for a transcript.
func (c *Catalog) TicketPrompt(lines []TranscriptLine) (string, error) {
	var buf bytes.Buffer
	if err := c.ticketTmpl.Execute(&buf, struct{ Entries []TranscriptLine }{lines}); err != nil {
		return "", fmt.Errorf("failed to render ticket prompt: %w", err)
	}
	return buf.String(), nil
}

// SentimentPrompt renders the sentiment classification prompt for a tweet.
func (c *Catalog) SentimentPrompt(text string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Classes []string
		Text    string
	}{c.SentimentClasses, text}
	if err := c.sentimentTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render sentiment prompt: %w", err)
	}
	return buf.String(), nil
}
