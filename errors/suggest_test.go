package errors

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSuggestSimilar(t *testing.T) {
	keywords := []string{"success", "failure", "vs", "with", "from", "to", "in"}

	got := SuggestSimilar("sucess", keywords)
	require.Len(t, got, 1)
	require.Equal(t, "success", got[0].Value)
	require.Equal(t, 1, got[0].Distance)

	require.Empty(t, SuggestSimilar("dragon", keywords))
	require.Nil(t, SuggestSimilar("", keywords))
	require.Nil(t, SuggestSimilar("x", nil))

	got = SuggestSimilar("wit", keywords)
	require.Equal(t, "with", got[0].Value)
}

func TestSuggestSkipsExactMatch(t *testing.T) {
	require.Empty(t, SuggestSimilar("with", []string{"with"}))
}

func TestFormatSuggestions(t *testing.T) {
	require.Equal(t, "", FormatSuggestions(nil))
	require.Equal(t, "did you mean 'with'?", FormatSuggestions([]Suggestion{{Value: "with"}}))
	require.Equal(t, "did you mean one of: 'to', 'in'?",
		FormatSuggestions([]Suggestion{{Value: "to"}, {Value: "in"}}))
}

func TestLevenshtein(t *testing.T) {
	require.Equal(t, 0, levenshteinDistance("fn", "fn"))
	require.Equal(t, 3, levenshteinDistance("", "abc"))
	require.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}
