package field

import (
	"fmt"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
)

// fullTermPattern matches terms made of more than one token
var fullTermPattern = regexp2.MustCompile(`^.+\b.+$`, regexp2.None)

// compiled caches the patterns built for term and item counting, keyed
// by pattern and options
var compiled sync.Map

type patternKey struct {
	pattern string
	options regexp2.RegexOptions
}

func compile(pattern string, options regexp2.RegexOptions) (*regexp2.Regexp, error) {
	k := patternKey{pattern, options}
	if re, ok := compiled.Load(k); ok {
		return re.(*regexp2.Regexp), nil
	}
	re, err := regexp2.Compile(pattern, options)
	if err != nil {
		return nil, err
	}
	compiled.Store(k, re)
	return re, nil
}

// IsFullTermPattern returns whether the term spans more than one token
func IsFullTermPattern(term string) bool {
	ok, err := fullTermPattern.MatchString(term)
	return err == nil && ok
}

/*
TermCount takes a text, the forms of a term (the term itself first) and
the analysis options of the text field and returns how many times the
term occurs in the text.

In full_terms_only mode, and in all mode for a multi-token term with no
alternative forms, the count is 1 when the whole text equals the term
and 0 otherwise. In any other case the count is the number of matches
of any of the forms delimited by word or underscore boundaries.
*/
func TermCount(text string, forms []string, analysis TermAnalysis) (int, error) {
	if len(forms) == 0 {
		return 0, nil
	}
	first := forms[0]
	if analysis.TokenMode == FullTermsOnly ||
		(analysis.TokenMode == AllTerms && len(forms) == 1 && IsFullTermPattern(first)) {
		return fullTermCount(text, first, analysis.CaseSensitive), nil
	}
	escaped := make([]string, len(forms))
	for i, f := range forms {
		escaped[i] = regexp2.Escape(f)
	}
	options := regexp2.RegexOptions(regexp2.IgnoreCase)
	if analysis.CaseSensitive {
		options = regexp2.None
	}
	re, err := compile(fmt.Sprintf(`(\b|_)(?:%s)(\b|_)`, strings.Join(escaped, "|")), options)
	if err != nil {
		return 0, err
	}
	return countMatches(re, text)
}

func fullTermCount(text, term string, caseSensitive bool) int {
	if caseSensitive {
		if text == term {
			return 1
		}
		return 0
	}
	if strings.EqualFold(text, term) {
		return 1
	}
	return 0
}

/*
ItemCount takes a text, an item and the analysis options of the items
field and returns how many times the item occurs in the text as a whole
item, that is, delimited by the separator or the ends of the text. The
separator is the separator_regexp option when set or the literal
separator (a space by default) otherwise.
*/
func ItemCount(text, item string, analysis ItemAnalysis) (int, error) {
	separator := analysis.SeparatorRegexp
	if separator == "" {
		s := analysis.Separator
		if s == "" {
			s = " "
		}
		separator = regexp2.Escape(s)
	}
	re, err := compile(fmt.Sprintf(`(?<=^|%s)%s(?=$|%s)`, separator, regexp2.Escape(item), separator), regexp2.None)
	if err != nil {
		return 0, err
	}
	return countMatches(re, text)
}

func countMatches(re *regexp2.Regexp, text string) (int, error) {
	var count int
	m, err := re.FindStringMatch(text)
	for m != nil && err == nil {
		count++
		m, err = re.FindNextMatch(m)
	}
	return count, err
}
