package lint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecord(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    Record
	}{
		{
			name:    "subject only",
			message: "Fixed",
			want:    Record{SHA: "sha", Subject: "Fixed"},
		},
		{
			name:    "subject with trailing newline",
			message: "Add the thing\n",
			want:    Record{SHA: "sha", Subject: "Add the thing"},
		},
		{
			name:    "blank separator",
			message: "This is a valid message\n\nBody.",
			want:    Record{SHA: "sha", Subject: "This is a valid message"},
		},
		{
			name:    "missing separator",
			message: "This subject line is fine\nBut then I forgot the empty line.",
			want:    Record{SHA: "sha", Subject: "This subject line is fine", SeparatorMissing: true},
		},
		{
			name:    "crlf blank separator",
			message: "Windows subject\r\n\r\nBody",
			want:    Record{SHA: "sha", Subject: "Windows subject"},
		},
		{
			name:    "lines past the second are ignored",
			message: "Subject here\n\nBody\nmore body",
			want:    Record{SHA: "sha", Subject: "Subject here"},
		},
		{
			name:    "empty message",
			message: "",
			want:    Record{SHA: "sha", Subject: ""},
		},
		{
			name:    "leading newline",
			message: "\nBody without subject",
			want:    Record{SHA: "sha", Subject: "", SeparatorMissing: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewRecord(Commit{SHA: "sha", Message: tt.message})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRecords_PreservesOrder(t *testing.T) {
	records := NewRecords([]Commit{
		{SHA: "a", Message: "First one"},
		{SHA: "b", Message: "Second one"},
	})
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].SHA)
	assert.Equal(t, "b", records[1].SHA)
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{{SHA: "a", Message: "First one"}}
	commits, err := src.Commits(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Commit{{SHA: "a", Message: "First one"}}, commits)
}
