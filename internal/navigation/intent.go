package navigation

import "fmt"

// Kind is the shape of a navigation request.
type Kind int

const (
	KindGoToIndex Kind = iota
	KindGoToName
	KindNext
	KindPrevious
	KindToTop
)

func (k Kind) String() string {
	switch k {
	case KindGoToIndex:
		return "goto-index"
	case KindGoToName:
		return "goto-name"
	case KindNext:
		return "next"
	case KindPrevious:
		return "previous"
	case KindToTop:
		return "to-top"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Source is the input channel an intent came from. It decides whether the
// intent is subject to the cooldown gate.
type Source int

const (
	SourceWheel Source = iota
	SourceKeyboard
	SourceClick
	SourceScroll
	SourceURL
	SourceExplicit
)

func (s Source) String() string {
	switch s {
	case SourceWheel:
		return "wheel"
	case SourceKeyboard:
		return "keyboard"
	case SourceClick:
		return "click"
	case SourceScroll:
		return "scroll"
	case SourceURL:
		return "url"
	case SourceExplicit:
		return "explicit"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Gated reports whether intents from this source are dropped during a cooldown.
func (s Source) Gated() bool {
	return s == SourceWheel || s == SourceKeyboard || s == SourceClick
}

// Passive reports whether the source only reports the visible section.
func (s Source) Passive() bool {
	return s == SourceScroll
}

// Forced reports whether the source overrides an in-flight cooldown.
func (s Source) Forced() bool {
	return s == SourceURL || s == SourceExplicit
}

// Intent is a normalized navigation request. It lives for one dispatch.
type Intent struct {
	Kind   Kind
	Index  int
	Name   string
	Source Source
}

func GoToIndex(index int, src Source) Intent {
	return Intent{Kind: KindGoToIndex, Index: index, Source: src}
}

func GoToName(name string, src Source) Intent {
	return Intent{Kind: KindGoToName, Name: name, Source: src}
}

func Next(src Source) Intent {
	return Intent{Kind: KindNext, Source: src}
}

func Previous(src Source) Intent {
	return Intent{Kind: KindPrevious, Source: src}
}

func ToTop(src Source) Intent {
	return Intent{Kind: KindToTop, Source: src}
}

func (in Intent) String() string {
	switch in.Kind {
	case KindGoToIndex:
		return fmt.Sprintf("%s(%d) from %s", in.Kind, in.Index, in.Source)
	case KindGoToName:
		return fmt.Sprintf("%s(%s) from %s", in.Kind, in.Name, in.Source)
	default:
		return fmt.Sprintf("%s from %s", in.Kind, in.Source)
	}
}
