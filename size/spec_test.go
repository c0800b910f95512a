package size

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Spec
		valid bool
	}{
		{
			name:  "alias mode size",
			input: "a:thumb,m:crop,s:100x50",
			want:  Spec{Alias: "thumb", Mode: ModeCrop, Width: 100, Height: 50, Background: DefaultBackground},
			valid: true,
		},
		{
			name:  "default alias",
			input: "s:200x100",
			want:  Spec{Alias: "200x100", Mode: ModeFit, Width: 200, Height: 100, Background: DefaultBackground},
			valid: true,
		},
		{
			name:  "alias after size overrides default",
			input: "s:200x100,a:big",
			want:  Spec{Alias: "big", Mode: ModeFit, Width: 200, Height: 100, Background: DefaultBackground},
			valid: true,
		},
		{
			name:  "second size keeps first alias",
			input: "s:200x100,s:20x10",
			want:  Spec{Alias: "200x100", Mode: ModeFit, Width: 20, Height: 10, Background: DefaultBackground},
			valid: true,
		},
		{
			name:  "pad with background and previous",
			input: "m:pad,b:#000000,u:true,s:64x64",
			want:  Spec{Alias: "64x64", Mode: ModePad, Width: 64, Height: 64, Background: "#000000", UsePrevious: true},
			valid: true,
		},
		{
			name:  "use previous literal only",
			input: "u:yes,s:10x10",
			want:  Spec{Alias: "10x10", Mode: ModeFit, Width: 10, Height: 10, Background: DefaultBackground},
			valid: true,
		},
		{
			name:  "unknown mode",
			input: "m:zoom,s:10x10",
			want:  Spec{Alias: "10x10", Mode: ModeUnknown, Width: 10, Height: 10, Background: DefaultBackground},
			valid: true,
		},
		{
			name:  "zero size",
			input: "s:0x0",
			want:  Spec{Alias: "0x0", Mode: ModeFit, Background: DefaultBackground},
		},
		{
			name:  "non numeric size",
			input: "s:axb",
			want:  Spec{Alias: "axb", Mode: ModeFit, Background: DefaultBackground},
		},
		{
			name:  "malformed size keeps alias",
			input: "s:100",
			want:  Spec{Alias: "100", Mode: ModeFit, Background: DefaultBackground},
		},
		{
			name:  "garbage tokens ignored",
			input: "x,,q:1,a:b:c,s:30x40",
			want:  Spec{Alias: "30x40", Mode: ModeFit, Width: 30, Height: 40, Background: DefaultBackground},
			valid: true,
		},
		{
			name:  "empty",
			input: "",
			want:  Spec{Mode: ModeFit, Background: DefaultBackground},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sp := Parse(tt.input)
			assert.Equal(t, tt.want, sp)
			assert.Equal(t, tt.valid, sp.Valid())
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeFit, ModeStretch, ModePad, ModeCrop} {
		assert.Equal(t, m, ParseMode(m.String()))
	}
	assert.Equal(t, ModeUnknown, ParseMode("Fit"))
	assert.Equal(t, "unknown", ModeUnknown.String())
}

func TestSpecString(t *testing.T) {
	sp := Parse("a:thumb,m:crop,u:true,s:100x50")
	assert.Equal(t, "a:thumb,m:crop,b:#ffffff,u:true,s:100x50", sp.String())
	assert.Equal(t, sp, Parse(sp.String()))
}

func TestList(t *testing.T) {
	var l List
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.Var(&l, "size", "")
	err := fs.Parse([]string{"-size", "a:big,s:800x600", "-size", "u:true,s:400x300"})
	assert.NoError(t, err)
	if assert.Len(t, l, 2) {
		assert.Equal(t, "big", l[0].Alias)
		assert.False(t, l[0].UsePrevious)
		assert.Equal(t, "400x300", l[1].Alias)
		assert.True(t, l[1].UsePrevious)
	}

	var d List
	assert.NoError(t, d.Decode("s:100x100; m:crop,s:50x50 ;"))
	if assert.Len(t, d, 2) {
		assert.Equal(t, ModeCrop, d[1].Mode)
		assert.Equal(t, 50, d[1].Width)
	}
	assert.Equal(t, "a:100x100,m:fit,b:#ffffff,s:100x100;a:50x50,m:crop,b:#ffffff,s:50x50", d.String())
}

func TestParseDimensions(t *testing.T) {
	w, h, ok := ParseDimensions("1920x1080")
	assert.True(t, ok)
	assert.Equal(t, 1920, w)
	assert.Equal(t, 1080, h)

	_, _, ok = ParseDimensions("1920")
	assert.False(t, ok)

	w, h, ok = ParseDimensions("-5xfoo")
	assert.True(t, ok)
	assert.Equal(t, -5, w)
	assert.Equal(t, 0, h)
}
