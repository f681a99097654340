package game

import (
	"testing"

	"github.com/rredkovich/mafiaengine/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDirectory struct {
	names    map[string]string
	mentions map[string]string
}

func (d *fakeDirectory) ResolveDisplayName(id string) string {
	if name, ok := d.names[id]; ok {
		return name
	}
	return id
}

func (d *fakeDirectory) ResolveID(mention string) (string, bool) {
	id, ok := d.mentions[mention]
	return id, ok
}

func TestResolveTarget(t *testing.T) {
	pool := []*types.Player{
		types.NewPlayer("1", "Michael"),
		types.NewPlayer("2", "Fredo"),
		types.NewPlayer("3", "Sonny"),
		types.NewPlayer("4", "Mike"),
		types.NewPlayer("5", "Mika"),
	}
	dir := &fakeDirectory{mentions: map[string]string{"@fredo_c": "2"}}

	tests := []struct {
		name    string
		text    string
		wantID  string
		wantErr error
	}{
		{"Mention", Mention("3"), "3", nil},
		{"Mention through directory", "@fredo_c", "2", nil},
		{"Mention of a stranger", Mention("99"), "", ErrInvalidTarget},
		{"Exact name beats prefix", "mike", "4", nil},
		{"Case insensitive prefix", "SON", "3", nil},
		{"Leading at sign is ignored", "@sonny", "3", nil},
		{"Substring fallback", "edo", "2", nil},
		{"Ambiguous prefix", "mi", "", ErrAmbiguousTarget},
		{"Ambiguous substring", "k", "", ErrAmbiguousTarget},
		{"Unknown", "Tessio", "", ErrInvalidTarget},
		{"Empty", "   ", "", ErrInvalidTarget},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveTarget(pool, tt.text, dir)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
		})
	}
}

func TestResolveTarget_NilDirectory(t *testing.T) {
	pool := []*types.Player{types.NewPlayer("1", "Luca")}

	got, err := ResolveTarget(pool, "<@!1>", nil)

	require.NoError(t, err)
	assert.Equal(t, "1", got.ID)
}
