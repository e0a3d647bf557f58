package format

import "golang.org/x/net/html/atom"

// Kind is an element kind known to the serializers.
type Kind int

// Element kinds. KindOther covers every element no format gives markup to.
const (
	KindOther Kind = iota
	KindH1
	KindH2
	KindH3
	KindH4
	KindH5
	KindP
	KindHR
	KindBR
	KindEm
	KindI
	KindStrong
	KindB
	KindBlockquote
)

// KindOf maps an element atom to its Kind.
func KindOf(a atom.Atom) Kind {
	switch a {
	case atom.H1:
		return KindH1
	case atom.H2:
		return KindH2
	case atom.H3:
		return KindH3
	case atom.H4:
		return KindH4
	case atom.H5:
		return KindH5
	case atom.P:
		return KindP
	case atom.Hr:
		return KindHR
	case atom.Br:
		return KindBR
	case atom.Em:
		return KindEm
	case atom.I:
		return KindI
	case atom.Strong:
		return KindStrong
	case atom.B:
		return KindB
	case atom.Blockquote:
		return KindBlockquote
	default:
		return KindOther
	}
}

// String returns the tag name of k.
func (k Kind) String() string {
	switch k {
	case KindH1:
		return "h1"
	case KindH2:
		return "h2"
	case KindH3:
		return "h3"
	case KindH4:
		return "h4"
	case KindH5:
		return "h5"
	case KindP:
		return "p"
	case KindHR:
		return "hr"
	case KindBR:
		return "br"
	case KindEm:
		return "em"
	case KindI:
		return "i"
	case KindStrong:
		return "strong"
	case KindB:
		return "b"
	case KindBlockquote:
		return "blockquote"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// headingLevel returns 1 to 5 for heading kinds and 0 otherwise.
func headingLevel(k Kind) int {
	switch k {
	case KindH1:
		return 1
	case KindH2:
		return 2
	case KindH3:
		return 3
	case KindH4:
		return 4
	case KindH5:
		return 5
	default:
		return 0
	}
}

// KindSet is a set of element kinds.
type KindSet uint32

// Kinds builds a KindSet.
func Kinds(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << uint(k)
	}
	return s
}

// Has reports whether k is in s. KindOther is never a member.
func (s KindSet) Has(k Kind) bool {
	return k != KindOther && s&(1<<uint(k)) != 0
}

// allKinds holds every kind with markup.
var allKinds = Kinds(KindH1, KindH2, KindH3, KindH4, KindH5, KindP, KindHR, KindBR,
	KindEm, KindI, KindStrong, KindB, KindBlockquote)
