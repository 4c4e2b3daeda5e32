package commerce

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionValueIDsFromQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []OptionValueID
	}{
		{
			name:  "numeric pairs sorted by option",
			query: "113=7&112=69",
			want: []OptionValueID{
				{OptionEntityID: 112, ValueEntityID: 69},
				{OptionEntityID: 113, ValueEntityID: 7},
			},
		},
		{
			name:  "non-numeric key dropped",
			query: "color=5&112=69",
			want:  []OptionValueID{{OptionEntityID: 112, ValueEntityID: 69}},
		},
		{
			name:  "non-numeric value dropped",
			query: "112=red&113=7",
			want:  []OptionValueID{{OptionEntityID: 113, ValueEntityID: 7}},
		},
		{
			name:  "slug ignored",
			query: "slug=77&112=69",
			want:  []OptionValueID{{OptionEntityID: 112, ValueEntityID: 69}},
		},
		{
			name:  "repeated key dropped",
			query: "112=69&112=70",
			want:  []OptionValueID{},
		},
		{
			name:  "empty value dropped, not read as value 0",
			query: "112=&113=7",
			want:  []OptionValueID{{OptionEntityID: 113, ValueEntityID: 7}},
		},
		{
			name:  "empty and negative dropped",
			query: "112=&113=-1&1.5=2",
			want:  []OptionValueID{},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			q, err := url.ParseQuery(tt.query)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, OptionValueIDsFromQuery(q))
		})
	}
}

func TestOptionValueIDsFromMap(t *testing.T) {
	t.Parallel()

	got := OptionValueIDsFromMap(map[string]string{"9": "3", "x": "1", "2": "y", "1": "4"})
	assert.Equal(t, []OptionValueID{
		{OptionEntityID: 1, ValueEntityID: 4},
		{OptionEntityID: 9, ValueEntityID: 3},
	}, got)
}

func TestSelectionsKey_isOrderIndependent(t *testing.T) {
	t.Parallel()

	a := SelectionsKey([]OptionValueID{{3, 4}, {1, 2}})
	b := SelectionsKey([]OptionValueID{{1, 2}, {3, 4}})
	assert.Equal(t, "1:2,3:4", a)
	assert.Equal(t, a, b)
	assert.Equal(t, "", SelectionsKey(nil))
}

func TestSelectedValue(t *testing.T) {
	t.Parallel()

	sels := []OptionValueID{{OptionEntityID: 1, ValueEntityID: 2}}
	v, ok := SelectedValue(sels, 1)
	assert.True(t, ok)
	assert.Equal(t, int64(2), v)

	_, ok = SelectedValue(sels, 5)
	assert.False(t, ok)
}
