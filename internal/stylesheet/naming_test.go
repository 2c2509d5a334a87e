package stylesheet

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/fontfetch/fontfetch/internal/domain"
)

func TestAssetName(t *testing.T) {
	tests := []struct {
		name string
		face domain.FontFace
		want string
	}{
		{
			name: "simple family",
			face: domain.FontFace{Family: "Roboto", Style: "normal", Weight: "400"},
			want: "Roboto_normal_400.ttf",
		},
		{
			name: "spaces in family",
			face: domain.FontFace{Family: "Open Sans", Style: "italic", Weight: "700"},
			want: "Open_Sans_italic_700.ttf",
		},
		{
			name: "tabs and newlines",
			face: domain.FontFace{Family: "Noto\tSans\nJP", Style: "normal", Weight: "300"},
			want: "Noto_Sans_JP_normal_300.ttf",
		},
		{
			name: "path separators",
			face: domain.FontFace{Family: "../etc/passwd", Style: "normal", Weight: "400"},
			want: ".._etc_passwd_normal_400.ttf",
		},
		{
			name: "reserved characters",
			face: domain.FontFace{Family: `A:B*C?"D"<E>|F`, Style: "normal", Weight: "400"},
			want: "A_B_C__D__E__F_normal_400.ttf",
		},
		{
			name: "control characters",
			face: domain.FontFace{Family: "Bad\x00Font\x7f", Style: "normal", Weight: "400"},
			want: "Bad_Font__normal_400.ttf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AssetName(tt.face))
		})
	}
}

func TestAssetName_Deterministic(t *testing.T) {
	face := domain.FontFace{Family: "Source Code Pro", Style: "normal", Weight: "500", SourceURL: "https://x/a.ttf"}
	first := AssetName(face)
	second := AssetName(face)
	assert.Equal(t, first, second)

	face.SourceURL = "https://y/b.ttf"
	assert.Equal(t, first, AssetName(face))
}
