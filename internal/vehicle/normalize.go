package vehicle

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"faregateway/internal/domain"
	"faregateway/internal/utils"

	"github.com/sirupsen/logrus"
)

var numericIDPattern = regexp.MustCompile(`^\d+$`)

// Normalize collapses a raw vehicle identifier into token form: trimmed,
// lowercased, internal whitespace runs replaced with underscores. Returns ""
// for empty input. Idempotent.
func Normalize(raw string) string {
	s := strings.ToLower(utils.NormalizeSpace(raw))
	return strings.ReplaceAll(s, " ", "_")
}

// Resolver maps the many historical spellings of a vehicle onto the canonical
// vocabulary. It is deliberately conservative: anything it cannot map is
// rejected before a network call is made, never passed through as a guess.
type Resolver struct {
	vocabulary map[string]bool
	numericIDs map[string]string
	aliases    map[string]string
}

func NewResolver(vocabulary []string, numericIDs, aliases map[string]string) *Resolver {
	vocab := make(map[string]bool, len(vocabulary))
	for _, t := range vocabulary {
		vocab[Normalize(t)] = true
	}
	if numericIDs == nil {
		numericIDs = map[string]string{}
	}
	if aliases == nil {
		aliases = map[string]string{}
	}
	return &Resolver{vocabulary: vocab, numericIDs: numericIDs, aliases: aliases}
}

// DefaultResolver carries the compiled-in tables. LoadResolver supersedes it
// when a mapping asset is configured.
func DefaultResolver() *Resolver {
	return NewResolver(defaultVocabulary, defaultNumericIDs, defaultAliases)
}

var defaultVocabulary = []string{
	"sedan", "ertiga", "innova", "innova_crysta", "innova_hycross",
	"tempo", "tempo_traveller", "luxury", "mpv", "toyota", "dzire_cng", "etios",
}

// Legacy numeric row IDs from the old admin tables. Only IDs present here are
// accepted; unmapped numerics are historically ambiguous and rejected.
var defaultNumericIDs = map[string]string{
	"1":    "sedan",
	"2":    "ertiga",
	"3":    "innova",
	"4":    "tempo",
	"5":    "luxury",
	"180":  "etios",
	"592":  "dzire_cng",
	"1266": "innova_crysta",
	"1270": "tempo_traveller",
	"1271": "etios",
	"1272": "mpv",
	"1273": "toyota",
}

// Exact-token aliases only. Multi-word inputs normalize to underscored tokens
// ("Swift Dzire" -> "swift_dzire") and will not match single-token entries;
// that mirrors the behavior the admin tools have always had.
var defaultAliases = map[string]string{
	"dzire":     "sedan",
	"swift":     "sedan",
	"amaze":     "sedan",
	"etios_cab": "etios",
	"crysta":    "innova_crysta",
	"hycross":   "innova_hycross",
	"traveller": "tempo_traveller",
	"winger":    "tempo_traveller",
	"12seater":  "tempo_traveller",
}

// Resolve returns the canonical token for raw, or a ValidationError naming
// the offending input. Decision order: numeric legacy map, vocabulary
// membership, alias table, reject.
func (r *Resolver) Resolve(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", domain.ValidationError{Field: "vehicleId", Msg: "vehicle id is empty"}
	}

	if numericIDPattern.MatchString(trimmed) {
		if mapped, ok := r.numericIDs[trimmed]; ok {
			return mapped, nil
		}
		return "", domain.ValidationError{
			Field: "vehicleId",
			Msg:   fmt.Sprintf("numeric vehicle id %q has no known mapping", trimmed),
		}
	}

	token := Normalize(trimmed)
	if r.vocabulary[token] {
		return token, nil
	}
	if mapped, ok := r.aliases[token]; ok {
		return mapped, nil
	}

	return "", domain.ValidationError{
		Field: "vehicleId",
		Msg:   fmt.Sprintf("unknown vehicle id %q", raw),
	}
}

// Known reports whether token is already canonical.
func (r *Resolver) Known(token string) bool {
	return r.vocabulary[token]
}

type resolverFile struct {
	Vocabulary []string          `json:"vocabulary"`
	NumericIDs map[string]string `json:"numericIds"`
	Aliases    map[string]string `json:"aliases"`
}

// LoadResolver reads the mapping tables from a JSON asset so the vocabulary
// can grow without a code change. Entries merge over the compiled-in defaults.
func LoadResolver(path string) (*Resolver, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f resolverFile
	if err := json.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse vehicle id config %s: %w", path, err)
	}

	vocab := append([]string{}, defaultVocabulary...)
	vocab = append(vocab, f.Vocabulary...)
	known := make(map[string]bool, len(vocab))
	for _, t := range vocab {
		known[Normalize(t)] = true
	}

	// Asset entries must land on a vocabulary token; anything else would
	// launder an unknown ID through the mapping tables.
	numeric := map[string]string{}
	for k, v := range defaultNumericIDs {
		numeric[k] = v
	}
	for k, v := range f.NumericIDs {
		target := Normalize(v)
		if !known[target] {
			logrus.WithFields(logrus.Fields{"numeric_id": k, "target": v}).
				Warn("vehicle id config: numeric mapping target not in vocabulary, skipped")
			continue
		}
		numeric[strings.TrimSpace(k)] = target
	}

	aliases := map[string]string{}
	for k, v := range defaultAliases {
		aliases[k] = v
	}
	for k, v := range f.Aliases {
		target := Normalize(v)
		if !known[target] {
			logrus.WithFields(logrus.Fields{"alias": k, "target": v}).
				Warn("vehicle id config: alias target not in vocabulary, skipped")
			continue
		}
		aliases[Normalize(k)] = target
	}

	return NewResolver(vocab, numeric, aliases), nil
}
