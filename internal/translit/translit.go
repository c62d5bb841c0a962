// Package translit turns free-text place names written in Chinese characters,
// pinyin or English into a comparable ASCII key.
package translit

import (
	"sort"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
	"golang.org/x/text/unicode/norm"
)

// Transliterator converts text to lazy pinyin and derives normalized keys.
// A Transliterator is immutable and safe for concurrent use.
type Transliterator struct {
	exonyms *strings.Replacer
	args    pinyin.Args
}

// New builds a Transliterator. exonyms maps established Chinese names to their
// Latin spelling and is applied before pinyin conversion; nil disables it.
func New(exonyms map[string]string) *Transliterator {
	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	args.Fallback = func(r rune, _ pinyin.Args) []string {
		return []string{string(r)}
	}

	t := &Transliterator{args: args}
	if len(exonyms) > 0 {
		t.exonyms = strings.NewReplacer(replacerPairs(exonyms)...)
	}
	return t
}

// replacerPairs orders the longest source names first so "北帕默斯顿" is not
// shadowed by a shorter overlapping name.
func replacerPairs(exonyms map[string]string) []string {
	names := make([]string, 0, len(exonyms))
	for zh := range exonyms {
		if zh != "" {
			names = append(names, zh)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	pairs := make([]string, 0, 2*len(names))
	for _, zh := range names {
		pairs = append(pairs, zh, exonyms[zh])
	}
	return pairs
}

// Pinyin returns the tone-free pinyin spelling of text with no syllable
// separators. Characters without a pinyin reading are kept as they are.
func (t *Transliterator) Pinyin(text string) string {
	if text == "" {
		return ""
	}
	return strings.Join(pinyin.LazyPinyin(text, t.args), "")
}

// Key derives the canonical key: fold width and diacritics, substitute known
// exonyms, transliterate, lowercase, then keep only [a-z0-9].
func (t *Transliterator) Key(text string) string {
	if text == "" {
		return ""
	}
	s := fold(text)
	if t.exonyms != nil {
		s = t.exonyms.Replace(s)
	}
	s = strings.ToLower(t.Pinyin(s))

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
}

// fold maps full-width forms to ASCII and removes combining marks.
func fold(s string) string {
	decomposed := norm.NFD.String(norm.NFKC.String(s))
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

var defaultTransliterator = New(NewZealandExonyms())

// Default returns the shared Transliterator configured with NewZealandExonyms.
func Default() *Transliterator { return defaultTransliterator }

// Key is Default().Key.
func Key(text string) string { return defaultTransliterator.Key(text) }

// NewZealandExonyms returns the Chinese names in common use for New Zealand
// regions and cities. The returned map is a fresh copy.
func NewZealandExonyms() map[string]string {
	return map[string]string{
		"奥克兰":    "Auckland",
		"惠灵顿":    "Wellington",
		"基督城":    "Christchurch",
		"克赖斯特彻奇": "Christchurch",
		"坎特伯雷":   "Canterbury",
		"汉密尔顿":   "Hamilton",
		"但尼丁":    "Dunedin",
		"达尼丁":    "Dunedin",
		"陶朗加":    "Tauranga",
		"皇后镇":    "Queenstown",
		"纳尔逊":    "Nelson",
		"北帕默斯顿":  "Palmerston North",
		"怀卡托":    "Waikato",
		"丰盛湾":    "Bay of Plenty",
		"北地":     "Northland",
		"奥塔哥":    "Otago",
		"南地":     "Southland",
		"塔拉纳基":   "Taranaki",
		"霍克斯湾":   "Hawke's Bay",
		"吉斯伯恩":   "Gisborne",
		"马尔堡":    "Marlborough",
		"西海岸":    "West Coast",
		"塔斯曼":    "Tasman",
		"因弗卡吉尔":  "Invercargill",
		"内皮尔":    "Napier",
		"黑斯廷斯":   "Hastings",
		"罗托鲁瓦":   "Rotorua",
		"新普利茅斯":  "New Plymouth",
		"旺格雷":    "Whangarei",
	}
}
