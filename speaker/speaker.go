package speaker

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/randalmurphal/distill/transcript"
)

// DefaultPrimaryLabel labels the primary speaker when no profile name is
// enrolled.
const DefaultPrimaryLabel = "You"

// Profile identifies the enrolled primary speaker. The zero Profile is
// valid; the primary speaker is then labeled DefaultPrimaryLabel.
type Profile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// Legend records how raw speaker labels map to canonical ones for a single
// transcript. It is built by Normalize and immutable afterwards.
type Legend struct {
	primary string
	mapping map[string]string
	others  []string
	next    int
}

// Normalize relabels every turn through a canonical legend. The primary
// speaker (matched by profile name, profile email, or the literal "you",
// all case-folded) takes the profile name; labels already shaped like
// S<digits> are preserved upper-cased; every other distinct label becomes
// S1, S2, ... in order of first appearance. Labels that normalize to
// nothing leave the turn unattributed.
//
// Normalize is pure and never fails. The same turns and profile always
// produce the same labeling and the same legend.
func Normalize(turns []transcript.Turn, profile Profile) ([]transcript.Turn, *Legend) {
	legend := newLegend(profile)

	out := make([]transcript.Turn, len(turns))
	for i, t := range turns {
		out[i] = transcript.Turn{
			Speaker: legend.canonicalize(t.Speaker),
			Text:    t.Text,
		}
	}
	return out, legend
}

func newLegend(profile Profile) *Legend {
	primary := strings.TrimSpace(profile.Name)
	if primary == "" {
		primary = DefaultPrimaryLabel
	}

	l := &Legend{
		primary: primary,
		mapping: make(map[string]string),
	}

	for _, alias := range []string{profile.Name, profile.Email, "you"} {
		if key := foldLabel(alias); key != "" {
			l.mapping[key] = primary
		}
	}
	return l
}

// Primary returns the canonical label for the primary speaker.
func (l *Legend) Primary() string {
	return l.primary
}

// Canonical returns the canonical label for a raw speaker label, or ""
// when the label never appeared and matches no primary alias.
func (l *Legend) Canonical(raw string) string {
	return l.mapping[foldLabel(raw)]
}

// Others returns the canonical non-primary labels in order of first
// appearance.
func (l *Legend) Others() []string {
	return append([]string(nil), l.others...)
}

// String renders the labeling convention for inclusion in prompts.
func (l *Legend) String() string {
	return fmt.Sprintf("Speaker labels: [%s] is the primary speaker; other participants are labeled [S1], [S2], and so on in order of first appearance.", l.primary)
}

func (l *Legend) canonicalize(raw string) string {
	key := foldLabel(raw)
	if key == "" {
		return ""
	}
	if canon, ok := l.mapping[key]; ok {
		return canon
	}

	var canon string
	if isAnonymous(key) {
		canon = strings.ToUpper(key)
	} else {
		l.next++
		canon = fmt.Sprintf("S%d", l.next)
	}
	l.mapping[key] = canon
	l.addOther(canon)
	return canon
}

// addOther appends a canonical label once, keeping first-appearance order.
func (l *Legend) addOther(canon string) {
	for _, o := range l.others {
		if o == canon {
			return
		}
	}
	l.others = append(l.others, canon)
}

// foldLabel strips surrounding brackets, trims, and case-folds a raw
// speaker label. An empty result means the label carries no attribution.
func foldLabel(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}

// isAnonymous reports whether a folded label already has the anonymous
// participant shape S<digits>.
func isAnonymous(key string) bool {
	if len(key) < 2 || key[0] != 's' {
		return false
	}
	for i := 1; i < len(key); i++ {
		if key[i] < '0' || key[i] > '9' {
			return false
		}
	}
	return true
}
