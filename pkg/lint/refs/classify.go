package refs

// Kind is the kind of construct a bracket range denotes.
type Kind int

// Reference kinds.
const (
	KindLink Kind = iota
	KindImage
	KindFootnote
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindFootnote:
		return "footnote"
	default:
		return "link"
	}
}

// withArticle returns the kind preceded by its indefinite article.
func (k Kind) withArticle() string {
	if k == KindImage {
		return "an image"
	}
	return "a " + k.String()
}

// Range is a finalized bracket range: offsets of `[`, of one past the first
// `]`, of the second `[` and of one past the second `]`. Only the first N
// are set.
type Range struct {
	Offsets [4]int
	N       int
}

// Start returns the offset of the opening bracket.
func (r Range) Start() int { return r.Offsets[0] }

// End returns the offset just past the last recorded bracket.
func (r Range) End() int { return r.Offsets[r.N-1] }

// Candidate is a range that passed classification.
type Candidate struct {
	Kind     Kind
	Label    string
	Range    Range
	Shortcut bool
}

// Classify decides what a range denotes and which label identifies it.
// It reports false for ranges that carry nothing to check: a lone `[`
// and the empty pair `[]`.
func Classify(source []byte, r Range) (Candidate, bool) {
	if r.N < 2 {
		return Candidate{}, false
	}

	// A dangling `[x][` is checked as the shortcut `[x]`.
	if r.N == 3 {
		r.N = 2
	}

	if r.N == 2 && r.Offsets[0]+2 == r.Offsets[1] {
		return Candidate{}, false
	}

	start := r.Offsets[0]
	kind := KindLink
	switch {
	case start > 0 && source[start-1] == '!':
		kind = KindImage
	case start+1 < len(source) && source[start+1] == '^':
		kind = KindFootnote
	}

	labelStart, labelEnd := r.Offsets[0], r.Offsets[1]
	if r.N == 4 && r.Offsets[2]+2 != r.Offsets[3] {
		labelStart, labelEnd = r.Offsets[2], r.Offsets[3]
	}

	return Candidate{
		Kind:     kind,
		Label:    string(source[labelStart+1 : labelEnd-1]),
		Range:    r,
		Shortcut: r.N == 2,
	}, true
}
