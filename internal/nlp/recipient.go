// internal/nlp/recipient.go
package nlp

import (
	"regexp"
	"strings"
)

// Entity is a named entity produced by an external recognizer.
type Entity struct {
	Text  string
	Label string
}

// EntityLabelPerson tags entities recognized as person names.
const EntityLabelPerson = "PER"

// Recognizer extracts named entities from text. It is an optional
// collaborator: the recipient extractor works without one, it just loses the
// person-name strategy.
type Recognizer interface {
	Entities(text string) []Entity
	Available() bool
}

var (
	phonePattern       = regexp.MustCompile(`(\d{8})`)
	prepositionPattern = regexp.MustCompile(`\bto\s+([A-Za-z][A-Za-z\s'-]*)`)
)

// ExtractRecipient pulls a transfer recipient out of free-form text. The
// strategies run in order: an 8-digit contiguous sequence returned as a phone
// reference, then the first person-tagged entity, then the word run following
// the preposition "to". Returns false when none match.
func ExtractRecipient(text string, entities []Entity) (string, bool) {
	if m := phonePattern.FindStringSubmatch(text); m != nil {
		return "Number " + m[1], true
	}

	for _, ent := range entities {
		if ent.Label == EntityLabelPerson {
			return ent.Text, true
		}
	}

	if m := prepositionPattern.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		if len(name) > 1 {
			return name, true
		}
	}

	return "", false
}
