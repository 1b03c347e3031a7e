package symdex_test

import (
	"testing"
	"unicode/utf8"

	"github.com/fwojciec/symdex"
	"github.com/stretchr/testify/assert"
)

func TestSearchID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"t", "t"},
		{"togglePause", "togglepause"},
		{"TEST_CASE", "test_5fcase"},
		{"~Application", "_7eapplication"},
		{"operator==", "operator_3d_3d"},
		{"a b", "a_20b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, symdex.SearchID(tt.name))
		})
	}
}

func TestGroupChar(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 't', symdex.GroupChar("TEST_CASE"))
	assert.Equal(t, '~', symdex.GroupChar("~Application"))
	assert.Equal(t, 'é', symdex.GroupChar("École"))
	assert.Equal(t, utf8.RuneError, symdex.GroupChar(""))
}

func TestSearchKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "tryruntransition", symdex.SearchKey("tryRunTransition"))
}
