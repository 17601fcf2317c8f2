package styles

import (
	"testing"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/stretchr/testify/assert"
)

func TestForFallsBackToModern(t *testing.T) {
	assert.Equal(t, Modern, For("").Name)
	assert.Equal(t, Modern, For("brutalist").Name)
	assert.Equal(t, Traditional, For(" Traditional ").Name)
	assert.Equal(t, "#8fbf8f", For(Modern).Primary)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(""))
	assert.NoError(t, Validate("minimal"))
	err := Validate("gothic")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidStyle))
}

func TestWithPrimary(t *testing.T) {
	p := For(Modern)
	assert.Equal(t, "#aabbcc", p.WithPrimary("#abc").Primary)
	assert.Equal(t, "#123456", p.WithPrimary("123456").Primary)
	assert.Equal(t, p.Primary, p.WithPrimary("not-a-color").Primary)
}

func TestExtraFill(t *testing.T) {
	p := For(Modern)
	assert.Equal(t, "#a6d96a", p.ExtraFill(plan.Garden))
	assert.Equal(t, "#dddddd", p.ExtraFill(plan.Parking))
	assert.Equal(t, "#ffdca6", p.ExtraFill(plan.Balcony))
	assert.Equal(t, p.Muted, p.ExtraFill("Pool"))
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b int
		ok      bool
	}{
		{"#b5651d", 0xb5, 0x65, 0x1d, true},
		{"#fff", 255, 255, 255, true},
		{"zzzzzz", 0, 0, 0, false},
		{"#12345", 0, 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, g, b, ok := ParseHex(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, []int{tt.r, tt.g, tt.b}, []int{r, g, b})
		})
	}
	assert.Equal(t, 0xb5651d, Hex24("#b5651d"))
	assert.Equal(t, 0, Hex24("bad"))
}
