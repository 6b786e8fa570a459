package fileset

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPreservesOrder(t *testing.T) {
	t.Parallel()

	s, err := New("b.txt", "a.txt", "dir/c.bin")
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.Equal(t, []string{"b.txt", "a.txt", "dir/c.bin"}, slices.Collect(s.All()))
	assert.Equal(t, []string{"b.txt", "a.txt", "dir/c.bin"}, s.Paths())
}

func TestNewRejectsDuplicates(t *testing.T) {
	t.Parallel()

	_, err := New("a.txt", "b.txt", "a.txt")
	require.ErrorIs(t, err, ErrDuplicate)
}

func TestAdd(t *testing.T) {
	t.Parallel()

	s, err := New()
	require.NoError(t, err)
	require.NoError(t, s.Add("a.txt"))
	require.ErrorIs(t, s.Add("a.txt"), ErrDuplicate)
	assert.Equal(t, 1, s.Len())
	assert.True(t, s.Contains("a.txt"))
	assert.False(t, s.Contains("b.txt"))
}

func TestOfDropsRepeats(t *testing.T) {
	t.Parallel()

	s := Of(slices.Values([]string{"a", "b", "a", "c", "b"}))
	assert.Equal(t, []string{"a", "b", "c"}, s.Paths())
}

func TestPathsReturnsCopy(t *testing.T) {
	t.Parallel()

	s, err := New("a", "b")
	require.NoError(t, err)
	p := s.Paths()
	p[0] = "z"
	assert.Equal(t, []string{"a", "b"}, s.Paths())
}

func TestIsSubsetOf(t *testing.T) {
	t.Parallel()

	archive, err := New("a.txt", "b.txt", "c.txt")
	require.NoError(t, err)

	tests := []struct {
		name  string
		paths []string
		want  bool
	}{
		{"empty", nil, true},
		{"single present", []string{"b.txt"}, true},
		{"all present", []string{"c.txt", "a.txt", "b.txt"}, true},
		{"one missing", []string{"a.txt", "d.txt"}, false},
		{"none present", []string{"x"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := New(tt.paths...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.IsSubsetOf(archive))
		})
	}
}
