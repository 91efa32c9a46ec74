package moderation

import (
	"unicode"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator masks blacklisted words while preserving spacing and length.
// One Aho-Corasick automaton is built per language dictionary; the language
// detected in the content picks the automaton, with a fallback to scanning
// every automaton when detection is not reliable.
type Moderator struct {
	machines     map[string]*goahocorasick.Machine
	censoredChar rune
}

type textMapping struct {
	normalized []rune
	origIdx    []int
}

// NewModerator builds the automatons from per-language word lists.
// Patterns are normalized the same way as scanned content so Leet speak and
// punctuation tricks do not bypass the filter.
func NewModerator(lists []WordList, censoredChar rune) (Moderator, error) {
	machines := make(map[string]*goahocorasick.Machine, len(lists))
	for _, list := range lists {
		patterns := make([][]rune, len(list.Words))
		for i, word := range list.Words {
			patterns[i] = normalizeRunes([]rune(word))
		}
		m := new(goahocorasick.Machine)
		if err := m.Build(patterns); err != nil {
			return Moderator{}, err
		}
		machines[list.Language] = m
	}
	return Moderator{machines: machines, censoredChar: censoredChar}, nil
}

// Censor replaces the original characters of forbidden patterns with the
// replacement rune, keeping surrounding text intact.
func (m *Moderator) Censor(original string) string {
	mapping := normalize(original)
	if len(mapping.normalized) == 0 {
		return original
	}

	origRunes := []rune(original)
	censored := false
	for _, machine := range m.machinesFor(original) {
		spans := machine.MultiPatternSearch(mapping.normalized, false)
		for _, span := range spans {
			normStart := span.Pos
			normEnd := normStart + len(span.Word)
			if normStart < 0 || normEnd > len(mapping.origIdx) {
				continue
			}
			origStart := mapping.origIdx[normStart]
			origEnd := mapping.origIdx[normEnd-1] + 1
			for i := origStart; i < origEnd; i++ {
				origRunes[i] = m.censoredChar
			}
			censored = true
		}
	}

	if !censored {
		return original
	}
	return string(origRunes)
}

// machinesFor picks the automatons to run: the detected language's when the
// detection is reliable, all of them otherwise.
func (m *Moderator) machinesFor(content string) []*goahocorasick.Machine {
	info := whatlanggo.Detect(content)
	if info.IsReliable() {
		if machine, ok := m.machines[whatlanggo.LangToString(info.Lang)]; ok {
			return []*goahocorasick.Machine{machine}
		}
	}
	out := make([]*goahocorasick.Machine, 0, len(m.machines))
	for _, machine := range m.machines {
		out = append(out, machine)
	}
	return out
}

// normalize transforms the input into a searchable format and tracks
// original rune positions.
func normalize(input string) textMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))

	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return textMapping{normalized: norm, origIdx: origIdx}
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common Leet speak characters back to their standard
// alphabet counterparts.
func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

// isNoise identifies characters ignored during the matching phase.
func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
