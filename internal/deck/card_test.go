package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		input   string
		want    Card
		wantErr string
	}{
		{input: "As", want: NewCard(Spades, Ace)},
		{input: "th", want: NewCard(Hearts, Ten)},
		{input: "10d", want: NewCard(Diamonds, Ten)},
		{input: "K♣", want: NewCard(Clubs, King)},
		{input: " 2S ", want: NewCard(Spades, Two)},
		{input: "1s", wantErr: "unknown rank"},
		{input: "Ax", wantErr: "unknown suit"},
		{input: "Asd", wantErr: `invalid card "Asd"`},
		{input: "", wantErr: "invalid card"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCard(tt.input)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string // stored form of every card, concatenated
		wantErr bool
	}{
		{name: "concatenated", input: "AsKdQcJh", want: "AsKdQcJh"},
		{name: "spaces and commas", input: "A♠, T♥ 2♣", want: "AsTh2c"},
		{name: "ten as 10", input: "10h 9d", want: "Th9d"},
		{name: "mixed case", input: "asKHqDjc", want: "AsKhQdJc"},
		{name: "empty", input: "", want: ""},
		{name: "odd length", input: "AsK", wantErr: true},
		{name: "bad suit", input: "AsKx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			stored := ""
			for _, s := range Strings(got) {
				stored += s
			}
			assert.Equal(t, tt.want, stored)
		})
	}
}

func TestCardForms(t *testing.T) {
	c := NewCard(Hearts, Ten)
	assert.Equal(t, "Th", c.String())
	assert.Equal(t, "T♥", c.Symbol())
	assert.True(t, c.IsRed())
	assert.False(t, NewCard(Clubs, Ace).IsRed())

	assert.Equal(t, "?", Rank(1).String())
	assert.Equal(t, "?", Suit(9).Letter())
}

func TestFindDuplicate(t *testing.T) {
	_, dup := FindDuplicate(MustParseCards("AsKsQs"))
	assert.False(t, dup)

	card, dup := FindDuplicate(MustParseCards("AsKs A♠"))
	require.True(t, dup)
	assert.Equal(t, "As", card.String())
}

func TestMustParseCardsPanics(t *testing.T) {
	assert.Len(t, MustParseCards("AhKh"), 2)
	assert.Panics(t, func() { MustParseCards("Zz") })
}
