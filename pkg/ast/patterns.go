package ast

// Patterns

type Pattern interface {
	Node
	patternNode()
}

type patternMarker struct{}

func (patternMarker) patternNode() {}

// PairHead is the reserved head of a structured pattern that destructures a pair.
const PairHead = "pair"

type WildcardPattern struct {
	nodeImpl
	patternMarker
}

func NewWildcardPattern() *WildcardPattern {
	return &WildcardPattern{nodeImpl: newNodeImpl(NodeWildcardPattern)}
}

// BindingPattern carries the raw text of an atomic pattern. Whether it is a
// literal, a nullary constructor or a fresh name is decided by the match
// package once the known constructors are available.
type BindingPattern struct {
	nodeImpl
	patternMarker

	Text string `json:"text"`
}

func NewBindingPattern(text string) *BindingPattern {
	return &BindingPattern{nodeImpl: newNodeImpl(NodeBindingPattern), Text: text}
}

type StructuredPattern struct {
	nodeImpl
	patternMarker

	Head        string    `json:"head"`
	Subpatterns []Pattern `json:"subpatterns"`
}

func NewStructuredPattern(head string, subpatterns []Pattern) *StructuredPattern {
	return &StructuredPattern{nodeImpl: newNodeImpl(NodeStructuredPattern), Head: head, Subpatterns: subpatterns}
}

// IsPair reports whether the pattern uses the reserved pair head.
func (p *StructuredPattern) IsPair() bool {
	return p.Head == PairHead
}
