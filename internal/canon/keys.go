package canon

import (
	"fmt"
	"strings"
)

// Canonical key templates, one per entity type. Tag + ordered identity fields
// joined by '|'; optional fields serialize as "" to keep positions stable.

func RootKey(rootNorm string) string {
	return "ROOT|" + rootNorm
}

func TokenKey(lemmaNorm, pos, rootNorm string) string {
	return fmt.Sprintf("TOK|%s|%s|%s", lemmaNorm, pos, rootNorm)
}

func SpanKey(spanType string, tokenIDs []string) string {
	return fmt.Sprintf("SPAN|%s|%s", spanType, strings.Join(tokenIDs, ","))
}

func SentenceKey(kind string, sequence []string) string {
	return fmt.Sprintf("SENT|%s|%s", kind, strings.Join(sequence, ";"))
}

func ValencyKey(verbLemmaNorm, prepTokenID, frameType string) string {
	return fmt.Sprintf("VAL|%s|%s|%s", verbLemmaNorm, prepTokenID, frameType)
}

func LexiconKey(lemmaNorm, pos, rootNorm, valencyID, senseKey string) string {
	return fmt.Sprintf("LEX|%s|%s|%s|%s|%s", lemmaNorm, pos, rootNorm, valencyID, senseKey)
}

func GrammarKey(grammarID string) string {
	return "GRAM|" + grammarID
}

func SynsetKey(synsetKey string) string {
	return "SYN|" + synsetKey
}

func SynsetMemberKey(synsetID, tokenID string) string {
	return fmt.Sprintf("SYNM|%s|%s", synsetID, tokenID)
}

// SentenceOccurrenceSeed identifies one positional instance of a sentence
// within a (container, unit, order) context. Distinct from the sentence's
// content identity.
func SentenceOccurrenceSeed(containerID, unitID string, order int, textNorm string) string {
	return fmt.Sprintf("occ_sentence|%s|%s|%d|%s", containerID, unitID, order, textNorm)
}

// NoteSeed is the stable per-note seed; repeated commits reconcile onto the
// same note row.
func NoteSeed(lessonID, noteUID string) string {
	return fmt.Sprintf("note|%s|%s", lessonID, noteUID)
}
