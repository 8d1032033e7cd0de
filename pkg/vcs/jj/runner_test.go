package jj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreatedID(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
	}{
		{
			name:   "plain",
			output: "Created new commit kxyzwvut 1a2b3c4d\n",
			want:   "kxyzwvut",
		},
		{
			name: "surrounded by other output",
			output: "Rebased 2 descendant commits\n" +
				"Created new commit qpmnolkj 9f8e7d6c (empty) (no description set)\n" +
				"Working copy now at: abc 123\n",
			want: "qpmnolkj",
		},
		{
			name:   "indented",
			output: "  Created new commit zyxwvuts deadbeef",
			want:   "zyxwvuts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseCreatedID(tt.output)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseCreatedIDMissing(t *testing.T) {
	_, err := parseCreatedID("Working copy now at: abc 123\n")
	assert.Error(t, err)

	_, err = parseCreatedID("Created new commit\n") // truncated, no id field
	assert.Error(t, err)

	_, err = parseCreatedID("")
	assert.Error(t, err)
}

func TestNewDefaultsBinary(t *testing.T) {
	l := New("", "/some/repo")
	assert.Equal(t, "jj", l.bin)
	assert.Equal(t, "/some/repo", l.dir)

	custom := New("/opt/jj/bin/jj", ".")
	assert.Equal(t, "/opt/jj/bin/jj", custom.bin)
}
