package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var planets = []string{"Malevelon Creek", "Super Earth", "Meridia", "Mars", "Pöpli IX", "Estanu", "Fenrir III"}

func TestCompleteExact(t *testing.T) {
	r := Complete("malevelon creek", planets)
	assert.True(t, r.OK)
	assert.Equal(t, "Malevelon Creek", r.Match)

	r = Complete("pöpli ix", planets)
	assert.True(t, r.OK)
	assert.Equal(t, "Pöpli IX", r.Match)
}

func TestCompleteSubstring(t *testing.T) {
	r := Complete("malevelon", planets)
	assert.True(t, r.OK)
	assert.Equal(t, "Malevelon Creek", r.Match)

	// длина запроса 0.67-0.75 от имени: похожесть ниже порога, но вхождение есть
	harbors := []string{"Widow's Harbor", "New Haven", "Martyr's Bay", "Hydrofall Prime"}
	for query, want := range map[string]string{
		"Hydrofall P": "Hydrofall Prime",
		"Widow's Ha":  "Widow's Harbor",
		"widow's ha":  "Widow's Harbor",
	} {
		assert.Less(t, Score(query, want), float64(Threshold), query)
		r := Complete(query, harbors)
		assert.True(t, r.OK, query)
		assert.Equal(t, want, r.Match, query)
		assert.Empty(t, r.Suggestions, query)
	}
}

func TestCompleteSubstringPrefersClosest(t *testing.T) {
	r := Complete("Hydrofall P", []string{"Hydrofall Prime", "Hydrofall P4"})
	assert.True(t, r.OK)
	assert.Equal(t, "Hydrofall P4", r.Match)

	// равные оценки — порядок кандидатов
	r = Complete("Prime", []string{"Fori Prime", "Hydrofall Prime"})
	assert.True(t, r.OK)
	assert.Equal(t, "Fori Prime", r.Match)
}

func TestCompleteFuzzy(t *testing.T) {
	r := Complete("malevelon crek", planets)
	assert.True(t, r.OK)
	assert.Equal(t, "Malevelon Creek", r.Match)

	r = Complete("super earht", planets)
	assert.True(t, r.OK)
	assert.Equal(t, "Super Earth", r.Match)
}

func TestCompleteSuggestions(t *testing.T) {
	r := Complete("zzz", planets)
	assert.False(t, r.OK)
	assert.Equal(t, []string{"Malevelon Creek", "Super Earth", "Meridia"}, r.Suggestions)
	assert.Equal(t, "Your entry Zzz did not match with anything. Did you mean: Malevelon Creek, Super Earth, or Meridia?", r.Message)

	r = Complete("qqqqqqq", []string{"Mars", "Meridia"})
	assert.Equal(t, "Your entry Qqqqqqq did not match with anything. Did you mean: Mars or Meridia?", r.Message)

	r = Complete("qqqqqqq", []string{"Mars"})
	assert.Equal(t, "Your entry Qqqqqqq did not match with anything. Did you mean: Mars?", r.Message)

	r = Complete("mars", nil)
	assert.False(t, r.OK)
	assert.Empty(t, r.Suggestions)
	assert.Equal(t, "Your entry Mars did not match with anything. Check your spelling!", r.Message)
}

func TestScore(t *testing.T) {
	assert.Equal(t, 100.0, Score("Mars", "mars"))
	assert.Zero(t, Score("", "mars"))
	assert.InDelta(t, 90.0, Score("Creek", "Malevelon Creek"), 1e-9)
	assert.Less(t, Score("Mars", "Super Earth"), float64(Threshold))
}
