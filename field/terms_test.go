package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTermCount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		forms    []string
		analysis TermAnalysis
		count    int
	}{
		{"tokens", "Great food, great service", []string{"great"}, TermAnalysis{TokenMode: TokensOnly}, 2},
		{"case sensitive", "Great food, great service", []string{"great"}, TermAnalysis{TokenMode: TokensOnly, CaseSensitive: true}, 1},
		{"no partial tokens", "greatness is great", []string{"great"}, TermAnalysis{TokenMode: TokensOnly}, 1},
		{"underscore boundary", "a great_deal", []string{"great"}, TermAnalysis{TokenMode: TokensOnly}, 1},
		{"forms", "greater than the greatest", []string{"great", "greater", "greatest"}, TermAnalysis{TokenMode: TokensOnly}, 2},
		{"escaped forms", "c++ and c", []string{"c++"}, TermAnalysis{TokenMode: TokensOnly}, 0},
		{"full term", "New York", []string{"new york"}, TermAnalysis{TokenMode: FullTermsOnly}, 1},
		{"full term case sensitive", "New York", []string{"new york"}, TermAnalysis{TokenMode: FullTermsOnly, CaseSensitive: true}, 0},
		{"full term mismatch", "I love New York", []string{"new york"}, TermAnalysis{TokenMode: FullTermsOnly}, 0},
		{"all multi token", "I love new york", []string{"new york"}, TermAnalysis{TokenMode: AllTerms}, 0},
		{"all single token", "I love new york", []string{"york"}, TermAnalysis{TokenMode: AllTerms}, 1},
		{"no forms", "anything", nil, TermAnalysis{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := TermCount(tt.text, tt.forms, tt.analysis)
			require.NoError(t, err)
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestItemCount(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		item     string
		analysis ItemAnalysis
		count    int
	}{
		{"default separator", "a b a", "a", ItemAnalysis{}, 2},
		{"consecutive", "a a a", "a", ItemAnalysis{Separator: " "}, 3},
		{"literal separator", "milk,bread,milk", "milk", ItemAnalysis{Separator: ","}, 2},
		{"whole items only", "milkshake,bread", "milk", ItemAnalysis{Separator: ","}, 0},
		{"regexp separator", "milk; bread;milk", "milk", ItemAnalysis{SeparatorRegexp: `;\s*`}, 2},
		{"escaped item", "a.b,axb", "a.b", ItemAnalysis{Separator: ","}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := ItemCount(tt.text, tt.item, tt.analysis)
			require.NoError(t, err)
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestIsFullTermPattern(t *testing.T) {
	assert.True(t, IsFullTermPattern("new york"))
	assert.True(t, IsFullTermPattern("T.T"))
	assert.False(t, IsFullTermPattern("york"))
}
