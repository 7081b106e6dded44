package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSport(t *testing.T) {
	tests := []struct {
		in     string
		want   Sport
		wantOK bool
	}{
		{"nba", NBA, true},
		{" NBA ", NBA, true},
		{"basketball", NBA, true},
		{"baseball", MLB, true},
		{"football", Soccer, true},
		{"kbo", KBO, true},
		{"curling", Sport("curling"), false},
	}
	for _, tt := range tests {
		got, ok := ParseSport(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
	}
}

func TestSportInfo_Label(t *testing.T) {
	assert.Equal(t, "🏀 NBA", NBA.GetSportInfo().Label())
	assert.Equal(t, "⚾ NPB", NPB.GetSportInfo().Label())
	assert.Equal(t, "⚽ SOCCER", Soccer.GetSportInfo().Label())
	assert.Equal(t, GenericLabel, Sport("curling").GetSportInfo().Label())
}
