package prompt

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dreamhouse/pkg/cache"
	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

func TestParseText(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   plan.Counts
	}{
		{
			name:   "bhk with extras",
			prompt: "3 BHK house with Garden and parking",
			want:   plan.Counts{Bedrooms: 3, Garden: true, Parking: true, Style: "modern"},
		},
		{
			name:   "full description",
			prompt: "2 bedrooms, 2 bathrooms, kitchen and living room",
			want:   plan.Counts{Bedrooms: 2, Bathrooms: 2, Kitchens: 1, Halls: 1, Style: "modern"},
		},
		{
			name:   "studio",
			prompt: "a cozy studio",
			want:   plan.Counts{Bedrooms: 1, Style: "modern"},
		},
		{
			name:   "traditional with garage",
			prompt: "Traditional 1bhk, balcony, garage",
			want:   plan.Counts{Bedrooms: 1, Balcony: true, Parking: true, Style: "traditional"},
		},
		{
			name:   "minimalist counts kitchens",
			prompt: "minimalist home with 2 kitchens and a hall",
			want:   plan.Counts{Kitchens: 2, Halls: 1, Style: "minimal"},
		},
		{
			name:   "loose room count",
			prompt: "need 4 rooms",
			want:   plan.Counts{Bedrooms: 4, Style: "modern"},
		},
		{
			name:   "bhk wins over bedrooms",
			prompt: "2 bhk or maybe 5 bedrooms",
			want:   plan.Counts{Bedrooms: 2, Style: "modern"},
		},
		{
			name:   "empty",
			prompt: "",
			want:   plan.Counts{Style: "modern"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseText(tt.prompt))
		})
	}
}

func TestParseTextHugeNumber(t *testing.T) {
	c := ParseText("99999999999999999999999 bhk")
	assert.Equal(t, 0, c.Bedrooms)
}

func TestBuildLayoutMinimums(t *testing.T) {
	l := BuildLayout("", plan.Counts{})

	assert.Equal(t, plan.DefaultName, l.Name)
	assert.Equal(t, plan.DefaultStyle, l.Style)
	require.Len(t, l.Rooms, 3)

	wantIDs := []string{"Bed1", "Kit1", "Hall1"}
	wantSizes := [][2]float64{{4, 3}, {3, 3}, {4, 4}}
	for i, r := range l.Rooms {
		assert.Equal(t, wantIDs[i], r.ID)
		require.NotNil(t, r.Width)
		require.NotNil(t, r.Depth)
		assert.Equal(t, wantSizes[i][0], *r.Width)
		assert.Equal(t, wantSizes[i][1], *r.Depth)
	}
	assert.Empty(t, l.Extras)
	assert.NoError(t, l.Validate())
}

func TestBuildLayoutCountsAndExtras(t *testing.T) {
	l := BuildLayout("Villa", plan.Counts{
		Bedrooms: 2, Bathrooms: 2, Kitchens: 1, Halls: 2,
		Parking: true, Balcony: true, Garden: true, Style: "minimal",
	})

	var ids []string
	for _, r := range l.Rooms {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []string{"Bed1", "Bed2", "Bath1", "Bath2", "Kit1", "Hall1", "Hall2"}, ids)
	assert.Equal(t, 2.0, *l.Rooms[2].Width)
	assert.Equal(t, []plan.Extra{{Type: plan.Balcony}, {Type: plan.Garden}, {Type: plan.Parking}}, l.Extras)
	assert.Equal(t, "minimal", l.Style)
}

func TestBuildLayoutNegativeCounts(t *testing.T) {
	l := BuildLayout("x", plan.Counts{Bedrooms: -3, Bathrooms: -1})
	assert.Len(t, l.Rooms, 3)
}

func TestGenerate(t *testing.T) {
	res, err := Generate(context.Background(), NewRegexParser(), "2 bhk with 1 bathroom and a garden", "Home")
	require.NoError(t, err)
	assert.Equal(t, 2, res.Parsed.Bedrooms)
	assert.Equal(t, "Home", res.Layout.Name)
	assert.Equal(t, 2+1+1+1, len(res.Layout.Rooms))
	assert.True(t, res.Layout.HasExtra(plan.Garden))
}

func TestGenerateClampsCounts(t *testing.T) {
	res, err := Generate(context.Background(), NewRegexParser(), "5000 bhk", "")
	require.NoError(t, err)
	assert.Equal(t, MaxRoomsPerType, res.Parsed.Bedrooms)
	assert.Equal(t, MaxRoomsPerType, res.Layout.RoomCount(plan.Bedroom))
}

func TestGenerateRejectsLongPrompt(t *testing.T) {
	_, err := Generate(context.Background(), NewRegexParser(), strings.Repeat("a", 5000), "")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

// =============================================================================
// Gemini
// =============================================================================

type fakeGenerator struct {
	answers []string
	errs    []error
	calls   int
	prompts []string
}

func (g *fakeGenerator) GenerateJSON(_ context.Context, prompt string) (string, error) {
	i := g.calls
	g.calls++
	g.prompts = append(g.prompts, prompt)
	var err error
	if i < len(g.errs) {
		err = g.errs[i]
	}
	if err != nil {
		return "", err
	}
	if i < len(g.answers) {
		return g.answers[i], nil
	}
	return g.answers[len(g.answers)-1], nil
}

func fastRetries(t *testing.T) {
	t.Helper()
	d := cache.BaseDelay
	cache.BaseDelay = time.Millisecond
	t.Cleanup(func() { cache.BaseDelay = d })
}

func TestGeminiParser(t *testing.T) {
	gen := &fakeGenerator{answers: []string{"```json\n{\"bedrooms\":3,\"bathrooms\":-1,\"garden\":true,\"style\":\"Gothic\"}\n```"}}
	p := NewGeminiParserWith(gen)

	c, err := p.Parse(context.Background(), "three bedroom gothic house")
	require.NoError(t, err)
	assert.Equal(t, plan.Counts{Bedrooms: 3, Garden: true, Style: "modern"}, c)
	assert.Equal(t, ParserGemini, p.Name())
	require.Len(t, gen.prompts, 1)
	assert.True(t, strings.HasSuffix(gen.prompts[0], "three bedroom gothic house"))
}

func TestGeminiParserRetries(t *testing.T) {
	fastRetries(t)
	gen := &fakeGenerator{
		errs:    []error{cache.Retryable(stderrors.New("503")), nil},
		answers: []string{"", `{"bedrooms":1,"style":"minimal"}`},
	}
	c, err := NewGeminiParserWith(gen).Parse(context.Background(), "x")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.calls)
	assert.Equal(t, "minimal", c.Style)
}

func TestGeminiParserGivesUp(t *testing.T) {
	fastRetries(t)
	boom := cache.Retryable(stderrors.New("unavailable"))
	gen := &fakeGenerator{errs: []error{boom, boom, boom}, answers: []string{""}}
	_, err := NewGeminiParserWith(gen).Parse(context.Background(), "x")
	assert.True(t, errors.Is(err, errors.ErrCodeNetwork))
	assert.Equal(t, 3, gen.calls)
}

func TestGeminiParserBadAnswer(t *testing.T) {
	gen := &fakeGenerator{answers: []string{"I think three bedrooms"}}
	_, err := NewGeminiParserWith(gen).Parse(context.Background(), "x")
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidFormat))
	assert.Equal(t, 1, gen.calls, "malformed answers are not retried")
}

// =============================================================================
// Cache
// =============================================================================

type countingParser struct{ calls int }

func (p *countingParser) Name() string { return "counting" }

func (p *countingParser) Parse(_ context.Context, prompt string) (plan.Counts, error) {
	p.calls++
	return ParseText(prompt), nil
}

func TestCachedParser(t *testing.T) {
	ctx := context.Background()
	mem, err := cache.NewMemoryCache(16)
	require.NoError(t, err)

	inner := &countingParser{}
	p := NewCachedParser(inner, mem)

	first, err := p.Parse(ctx, "2 BHK with garden")
	require.NoError(t, err)
	second, err := p.Parse(ctx, "  2 bhk   WITH garden ")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "counting", p.Name())
}

func TestCachedParserCorruptEntry(t *testing.T) {
	ctx := context.Background()
	mem, err := cache.NewMemoryCache(16)
	require.NoError(t, err)

	inner := &countingParser{}
	k := cache.NewDefaultKeyer()
	require.NoError(t, mem.Set(ctx, k.PromptKey("counting", "1 bhk"), []byte("{"), 0))

	c, err := NewCachedParser(inner, mem, WithKeyer(k)).Parse(ctx, "1 bhk")
	require.NoError(t, err)
	assert.Equal(t, 1, c.Bedrooms)
	assert.Equal(t, 1, inner.calls)
}

func TestNew(t *testing.T) {
	p, err := New(context.Background(), "", "", "", cache.NewNullCache(), nil)
	require.NoError(t, err)
	assert.IsType(t, &RegexParser{}, p)

	_, err = New(context.Background(), "oracle", "", "", nil, nil)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}
