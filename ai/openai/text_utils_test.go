package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScrubString(t *testing.T) {
	assert.Equal(t, "hello world", scrubString("  hello \n\t world  "))
	assert.Equal(t, "张三主演电影《A》", scrubString("张三主演电影《A》"))
	assert.Equal(t, "", scrubString("   "))
}

func TestMaskSensitive(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "email masked",
			in:   "contact zhang.san@example.com for details",
			want: "contact [email] for details",
		},
		{
			name: "phone masked",
			in:   "call +86 138-0013-8000 now",
			want: "call [phone] now",
		},
		{
			name: "plain text untouched",
			in:   "张三主演电影《A》",
			want: "张三主演电影《A》",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaskSensitive(tt.in))
		})
	}
}
