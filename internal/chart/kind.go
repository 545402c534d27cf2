package chart

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedKind = errors.New("unsupported chart kind")

// Kind is the closed set of chart kinds the renderer accepts.
type Kind uint8

const (
	KindLine Kind = iota
	KindBar
	KindRadar
	KindDoughnut
	KindPie
	KindPolarArea
	KindBubble
	KindScatter

	numKinds
)

var kindNames = [numKinds]string{
	KindLine:      "line",
	KindBar:       "bar",
	KindRadar:     "radar",
	KindDoughnut:  "doughnut",
	KindPie:       "pie",
	KindPolarArea: "polarArea",
	KindBubble:    "bubble",
	KindScatter:   "scatter",
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
	return kindNames[k]
}

func (k Kind) Valid() bool {
	return k < numKinds
}

// Paired reports whether the kind plots full {x, y} pairs. Every other kind
// plots the y projection against synthetic point labels.
func (k Kind) Paired() bool {
	switch k {
	case KindBubble, KindScatter:
		return true
	case KindLine, KindBar, KindRadar, KindDoughnut, KindPie, KindPolarArea:
		return false
	default:
		return false
	}
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		out = append(out, k)
	}
	return out
}

func supportedList() string {
	return strings.Join(kindNames[:], ", ")
}

// ParseKind matches the exact kind name.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("%w %q, available kinds: %s", ErrUnsupportedKind, s, supportedList())
}

func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedKind, uint8(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
