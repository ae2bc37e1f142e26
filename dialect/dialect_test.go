package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholderFor(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		want []string
	}{
		{Postgres, []string{"$1", "$2", "$3"}},
		{MySQL, []string{"?", "?", "?"}},
		{SQLite, []string{"?", "?", "?"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ph, err := PlaceholderFor(tt.name)
			require.NoError(t, err)
			for i, want := range tt.want {
				assert.Equal(t, want, ph.Placeholder(i+1))
			}
		})
	}
}

func TestPlaceholderFor_Unsupported(t *testing.T) {
	t.Parallel()
	ph, err := PlaceholderFor("oracle")
	assert.Nil(t, ph)
	assert.EqualError(t, err, `dialect: unsupported dialect "oracle"`)
}

func TestNumbered_CustomPrefix(t *testing.T) {
	t.Parallel()
	assert.Equal(t, ":12", Numbered{Prefix: ":"}.Placeholder(12))
	assert.Equal(t, "@p", Positional{Marker: "@p"}.Placeholder(7))
}

func TestValid(t *testing.T) {
	t.Parallel()
	assert.True(t, Valid(Postgres))
	assert.True(t, Valid(MySQL))
	assert.True(t, Valid(SQLite))
	assert.False(t, Valid("postgresql"))
	assert.False(t, Valid(""))
}
