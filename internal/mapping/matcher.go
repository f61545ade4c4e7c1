package mapping

import (
	"sort"

	"masterfile/internal/logger"
)

// Method records how a column match was decided.
type Method int

const (
	MethodAlias Method = iota
	MethodExact
	MethodFuzzy
)

func (m Method) String() string {
	switch m {
	case MethodAlias:
		return "alias"
	case MethodExact:
		return "exact"
	case MethodFuzzy:
		return "fuzzy"
	}
	return "unknown"
}

// Entry maps one onboarding column to a template column.
type Entry struct {
	Source string  // onboarding header as it appears in the workbook
	Target string  // template header the source was matched to
	Column int     // 0-based template column index
	Score  float64 // similarity score, 1.0 for alias/exact matches
	Via    Method
}

// Mapping is the result of matching onboarding headers against template
// headers. It is injective on Column: no two entries share a destination.
type Mapping struct {
	Entries   []Entry
	Unmatched []string // source headers that found no destination
}

// Lookup returns the entry for a source header, if any.
func (m *Mapping) Lookup(source string) (Entry, bool) {
	for _, e := range m.Entries {
		if e.Source == source {
			return e, true
		}
	}
	return Entry{}, false
}

// Scorer computes a similarity score in [0, 1] for two raw headers.
type Scorer func(a, b string) float64

// DefaultThreshold is the minimum similarity accepted for a fuzzy match.
const DefaultThreshold = 0.6

type options struct {
	threshold float64
	scorer    Scorer
	aliases   AliasTable
}

// Option configures the matcher.
type Option func(*options)

// WithThreshold sets the fuzzy acceptance threshold (default 0.6).
func WithThreshold(t float64) Option {
	return func(o *options) { o.threshold = t }
}

// WithScorer replaces the similarity function used by the fuzzy pass.
func WithScorer(s Scorer) Option {
	return func(o *options) { o.scorer = s }
}

// WithAliases supplies an alias table consulted before exact matching.
func WithAliases(a AliasTable) Option {
	return func(o *options) { o.aliases = a }
}

// Match aligns onboarding headers with template headers. Matching runs in
// three passes: alias hits first, then identical normalized forms, then a
// greedy fuzzy pass that repeatedly assigns the highest-scoring remaining
// pair at or above the threshold, breaking ties by leftmost template
// column. Source headers left over are reported in Unmatched.
func Match(sourceHeaders, templateHeaders []string, opts ...Option) *Mapping {
	o := &options{
		threshold: DefaultThreshold,
		scorer:    Similarity,
	}
	for _, opt := range opts {
		opt(o)
	}

	normSrc := make([]string, len(sourceHeaders))
	for i, h := range sourceHeaders {
		normSrc[i] = Normalize(h)
	}
	normTmpl := make([]string, len(templateHeaders))
	for i, h := range templateHeaders {
		normTmpl[i] = Normalize(h)
	}

	assigned := make(map[int]int) // source index -> template column
	usedCol := make(map[int]bool)
	via := make(map[int]Method)
	score := make(map[int]float64)

	// Alias pass: the first alias present among the source headers wins
	// its template column.
	for col, tmplNorm := range normTmpl {
		if tmplNorm == "" || usedCol[col] {
			continue
		}
		for _, alias := range o.aliases.aliasesFor(templateHeaders[col]) {
			aliasNorm := Normalize(alias)
			found := -1
			for si, srcNorm := range normSrc {
				if _, ok := assigned[si]; ok {
					continue
				}
				if srcNorm != "" && srcNorm == aliasNorm {
					found = si
					break
				}
			}
			if found >= 0 {
				assigned[found] = col
				usedCol[col] = true
				via[found] = MethodAlias
				score[found] = 1.0
				break
			}
		}
	}

	// Exact pass: identical normalized forms, leftmost template column wins.
	for si, srcNorm := range normSrc {
		if srcNorm == "" {
			continue
		}
		if _, ok := assigned[si]; ok {
			continue
		}
		for col, tmplNorm := range normTmpl {
			if usedCol[col] || tmplNorm == "" {
				continue
			}
			if srcNorm == tmplNorm {
				assigned[si] = col
				usedCol[col] = true
				via[si] = MethodExact
				score[si] = 1.0
				break
			}
		}
	}

	// Fuzzy pass: greedy over the remaining pairs.
	type pair struct {
		si, col int
		score   float64
	}
	var pairs []pair
	for si, srcNorm := range normSrc {
		if srcNorm == "" {
			continue
		}
		if _, ok := assigned[si]; ok {
			continue
		}
		for col, tmplNorm := range normTmpl {
			if usedCol[col] || tmplNorm == "" {
				continue
			}
			if s := o.scorer(sourceHeaders[si], templateHeaders[col]); s >= o.threshold {
				pairs = append(pairs, pair{si: si, col: col, score: s})
			}
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].score != pairs[j].score {
			return pairs[i].score > pairs[j].score
		}
		if pairs[i].col != pairs[j].col {
			return pairs[i].col < pairs[j].col
		}
		return pairs[i].si < pairs[j].si
	})
	for _, p := range pairs {
		if _, ok := assigned[p.si]; ok {
			continue
		}
		if usedCol[p.col] {
			continue
		}
		assigned[p.si] = p.col
		usedCol[p.col] = true
		via[p.si] = MethodFuzzy
		score[p.si] = p.score
	}

	m := &Mapping{}
	for si, h := range sourceHeaders {
		if normSrc[si] == "" {
			continue
		}
		col, ok := assigned[si]
		if !ok {
			m.Unmatched = append(m.Unmatched, h)
			logger.Warn("No template column for onboarding header", "header", h)
			continue
		}
		m.Entries = append(m.Entries, Entry{
			Source: h,
			Target: templateHeaders[col],
			Column: col,
			Score:  score[si],
			Via:    via[si],
		})
	}

	logger.Info("Column matching completed",
		"matched", len(m.Entries),
		"unmatched", len(m.Unmatched))

	return m
}
