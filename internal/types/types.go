package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Palette is the site color theme.
type Palette struct {
	Primary string `json:"primary"`
	Accent  string `json:"accent"`
	Bg      string `json:"bg"`
}

// Typography names the heading and body fonts.
type Typography struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Blueprint is the site structure produced by the LLM or the fallback generator,
// before images, icons and animations are attached.
type Blueprint struct {
	SiteTitle  string                 `json:"siteTitle"`
	Palette    *Palette               `json:"palette,omitempty"`
	Typography *Typography            `json:"typography,omitempty"`
	Sections   map[string]SectionSpec `json:"sections"`
}

// SectionSpec is one content block of a Blueprint.
type SectionSpec struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Keywords    Keywords `json:"keywords"`
}

// Keywords accepts either a JSON array of strings or a single string.
type Keywords []string

func (k *Keywords) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*k = nil
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var single string
		if err := json.Unmarshal(data, &single); err != nil {
			return err
		}
		single = strings.TrimSpace(single)
		if single == "" {
			*k = nil
		} else {
			*k = Keywords{single}
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("keywords must be a string or a list of strings: %w", err)
	}
	*k = list
	return nil
}

// SocialIcon is a presentational link shown in the contact section.
type SocialIcon struct {
	Icon string `json:"icon"`
	Link string `json:"link"`
}

// SectionResult is a fully enriched section, ready for the client.
type SectionResult struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Images      []string     `json:"images"`
	Keywords    []string     `json:"keywords"`
	Icon        string       `json:"icon"`
	Animation   string       `json:"animation"`
	SocialIcons []SocialIcon `json:"socialIcons,omitempty"`
}

// NamedSection pairs a section key with its result.
type NamedSection struct {
	Key     string
	Section SectionResult
}

// Sections is an ordered set of sections. It marshals as a JSON object whose
// members keep insertion order.
type Sections []NamedSection

// Keys returns the section keys in order.
func (s Sections) Keys() []string {
	keys := make([]string, 0, len(s))
	for _, ns := range s {
		keys = append(keys, ns.Key)
	}
	return keys
}

// Get returns the section stored under key.
func (s Sections) Get(key string) (SectionResult, bool) {
	for _, ns := range s {
		if ns.Key == key {
			return ns.Section, true
		}
	}
	return SectionResult{}, false
}

func (s Sections) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, ns := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(ns.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(ns.Section)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON keeps the member order of the encoded object.
func (s *Sections) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("sections must be a JSON object")
	}

	var out Sections
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected section key %v", tok)
		}
		var section SectionResult
		if err := dec.Decode(&section); err != nil {
			return fmt.Errorf("section %q: %w", key, err)
		}
		out = append(out, NamedSection{Key: key, Section: section})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*s = out
	return nil
}

// Payload is the response of the prototype endpoint.
type Payload struct {
	SiteTitle  string     `json:"siteTitle"`
	Theme      Palette    `json:"theme"`
	Typography Typography `json:"typography"`
	Sections   Sections   `json:"sections"`
}
