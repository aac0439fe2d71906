// Package reputation provides per-entity reputation records built from
// confidence-weighted trait scores, plus the rumor model that feeds them.
package reputation

import (
	"sort"
	"strings"

	"github.com/talgya/social-fabric/internal/social"
)

// Trait is a named reputation quality.
type Trait string

const (
	TraitHonesty      Trait = "honesty"
	TraitPeacefulness Trait = "peacefulness"
	TraitGenerosity   Trait = "generosity"
	TraitGeneral      Trait = "general"
)

// TraitForContent maps rumor content to the trait it speaks to.
// Unmatched content lands on the general trait.
func TraitForContent(content string) Trait {
	c := strings.ToLower(content)
	switch {
	case strings.Contains(c, "dishonest"):
		return TraitHonesty
	case strings.Contains(c, "aggressive"), strings.Contains(c, "violent"):
		return TraitPeacefulness
	case strings.Contains(c, "generous"), strings.Contains(c, "charitable"):
		return TraitGenerosity
	default:
		return TraitGeneral
	}
}

const (
	baseConfidence   = 40.0
	perSourceBonus   = 5.0
	globalScaleLimit = 0.3
)

// Score is a single trait's value with how certain the world is about it.
type Score struct {
	Value      float64           `json:"value"`      // -100..100
	Confidence float64           `json:"confidence"` // 0..100, non-decreasing with sources
	Sources    []social.EntityID `json:"sources"`
}

// MergeSources adds new corroborating sources (no duplicates) and bumps
// confidence. Confidence never decreases and caps at 100.
func (s *Score) MergeSources(ids []social.EntityID) {
	for _, id := range ids {
		if !containsID(s.Sources, id) {
			s.Sources = append(s.Sources, id)
		}
	}
	conf := baseConfidence + perSourceBonus*float64(len(s.Sources))
	if conf > 100 {
		conf = 100
	}
	if conf > s.Confidence {
		s.Confidence = conf
	}
}

// HasSourceIn reports whether any source belongs to the member set.
func (s *Score) HasSourceIn(members []social.EntityID) bool {
	for _, src := range s.Sources {
		if containsID(members, src) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the score.
func (s *Score) Clone() *Score {
	out := *s
	out.Sources = append([]social.EntityID(nil), s.Sources...)
	return &out
}

// Record is the full reputation state for one entity.
type Record struct {
	EntityID social.EntityID            `json:"entity_id"`
	Global   float64                    `json:"global"`
	Traits   map[Trait]*Score           `json:"traits"`
	Groups   map[social.GroupID]float64 `json:"groups"` // per-group derived scores
}

// NewRecord creates a zero-initialized reputation record.
func NewRecord(id social.EntityID) *Record {
	return &Record{
		EntityID: id,
		Traits:   make(map[Trait]*Score),
		Groups:   make(map[social.GroupID]float64),
	}
}

// ApplyImpact shifts a trait by impact (creating it at confidence 40 when
// new), merges corroborating sources, and recomputes confidence.
func (r *Record) ApplyImpact(trait Trait, impact float64, sources []social.EntityID) {
	score, ok := r.Traits[trait]
	if !ok {
		score = &Score{Confidence: baseConfidence}
		r.Traits[trait] = score
	}
	score.Value = clamp(score.Value+impact, -100, 100)
	score.MergeSources(sources)
}

// Recompute refreshes the global score and the per-group derived scores.
// Global is the confidence-weighted mean of trait values (0 with no traits).
// A group score is the unweighted mean over traits with at least one source
// inside that group, omitted when no trait qualifies.
func (r *Record) Recompute(groups []*social.Group) {
	traits := r.sortedTraits()

	weighted := 0.0
	totalWeight := 0.0
	for _, t := range traits {
		s := r.Traits[t]
		w := s.Confidence / 100
		weighted += s.Value * w
		totalWeight += w
	}
	if totalWeight > 0 {
		r.Global = weighted / totalWeight
	} else {
		r.Global = 0
	}

	r.Groups = make(map[social.GroupID]float64)
	for _, g := range groups {
		sum := 0.0
		count := 0
		for _, t := range traits {
			if r.Traits[t].HasSourceIn(g.Members) {
				sum += r.Traits[t].Value
				count++
			}
		}
		if count > 0 {
			r.Groups[g.ID] = sum / float64(count)
		}
	}
}

// sortedTraits returns trait keys in stable order so float accumulation is
// identical across runs.
func (r *Record) sortedTraits() []Trait {
	out := make([]Trait, 0, len(r.Traits))
	for t := range r.Traits {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() Record {
	out := Record{
		EntityID: r.EntityID,
		Global:   r.Global,
		Traits:   make(map[Trait]*Score, len(r.Traits)),
		Groups:   make(map[social.GroupID]float64, len(r.Groups)),
	}
	for t, s := range r.Traits {
		out.Traits[t] = s.Clone()
	}
	for g, v := range r.Groups {
		out.Groups[g] = v
	}
	return out
}

func containsID(ids []social.EntityID, id social.EntityID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
