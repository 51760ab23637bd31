package service

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{name: "short string unchanged", in: "hello", max: 10, want: "hello"},
		{name: "exact length unchanged", in: "hello", max: 5, want: "hello"},
		{name: "ascii trimmed", in: "hello world", max: 5, want: "hello"},
		{name: "multibyte runes kept whole", in: "日本語のテスト", max: 4, want: "日本語の"},
		{name: "emoji not split", in: "🙂🙂🙂", max: 2, want: "🙂🙂"},
		{name: "empty", in: "", max: 5, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := excerpt(tt.in, tt.max)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
