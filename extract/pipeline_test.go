package extract_test

import (
	"bytes"
	"log/slog"
	"testing"

	"menulens"
	"menulens/extract"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Extract(t *testing.T) {
	t.Parallel()

	t.Run("reconciles linked data with inline blob images", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<script type="application/ld+json">
{"@type":"Restaurant","hasMenu":{"hasMenuSection":[
	{"name":"Drinks","hasMenuItem":[{"name":"Latte","description":"Hot","offers":{"price":"4.5"}}]}
]}}
</script>
<script>window.__data = {"__typename":"MenuPageItem","name":"Latte","imgUrl":"https://x/a.jpg?v=2"};</script>
</body></html>`

		p := &extract.Pipeline{}
		result, err := p.Extract(html)

		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, menulens.Record{
			Category:    "Drinks",
			Name:        "Latte",
			Description: "Hot",
			Price:       "4.5",
			ImageURL:    "https://x/a.jpg",
		}, result.Records[0])
		assert.Equal(t, 1, result.Stats.ResolvedFromLookup)
		assert.NotEmpty(t, result.SnapshotHash)
	})

	t.Run("fails when the structured menu block is absent", func(t *testing.T) {
		t.Parallel()

		p := &extract.Pipeline{}
		result, err := p.Extract(`<html><body><p>no menu here</p></body></html>`)

		require.Error(t, err)
		assert.Equal(t, menulens.ENOTFOUND, menulens.ErrorCode(err))
		assert.Nil(t, result)
	})

	t.Run("record count equals named items across flattened sections", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">
{"@type":"Restaurant","hasMenu":{"hasMenuSection":[
	[{"name":"Drinks","hasMenuItem":[{"name":"Latte"},{"name":""},{"name":"Mocha"}]},
	 {"name":"Food","hasMenuItem":[{"name":"Bagel"}]}],
	[{"name":"Desserts","hasMenuItem":[{"name":"Cake"}]}]
]}}
</script>`

		p := &extract.Pipeline{}
		result, err := p.Extract(html)

		require.NoError(t, err)
		// Four named items; the empty-name entry is dropped, nothing else is.
		require.Len(t, result.Records, 4)
		assert.Equal(t, "Drinks", result.Records[0].Category)
		assert.Equal(t, "Food", result.Records[2].Category)
		assert.Equal(t, "Desserts", result.Records[3].Category)
		for _, r := range result.Records {
			assert.Empty(t, r.ImageURL)
			assert.Equal(t, "0", r.Price)
		}
	})

	t.Run("higher priority source wins on name collisions", func(t *testing.T) {
		t.Parallel()

		// The same name appears in a typed blob (source A) and as an img alt
		// (source E) with different URLs; A must win.
		html := `<body>
<script type="application/ld+json">
{"@type":"Restaurant","hasMenu":{"hasMenuSection":[{"name":"Drinks","hasMenuItem":[{"name":"Latte"}]}]}}
</script>
<img alt="Latte" src="https://x/from-img.jpg">
<script>{"__typename":"MenuPageItem","name":"Latte","imgUrl":"https://x/from-blob.jpg"}</script>
</body>`

		p := &extract.Pipeline{}
		result, err := p.Extract(html)

		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "https://x/from-blob.jpg", result.Records[0].ImageURL)
	})

	t.Run("candidates with non-http URLs are discarded, not cached", func(t *testing.T) {
		t.Parallel()

		// The img attribute (higher priority than inline style here) carries
		// a data URI; the inline style must still be able to resolve.
		html := `<body>
<script type="application/ld+json">
{"@type":"Restaurant","hasMenu":{"hasMenuSection":[{"name":"Drinks","hasMenuItem":[{"name":"Latte"}]}]}}
</script>
<img alt="Latte" src="data:image/gif;base64,AAAA">
<div style="background-image: url('https://x/style.jpg')" aria-label="Latte"></div>
</body>`

		p := &extract.Pipeline{}
		result, err := p.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "https://x/style.jpg", result.Records[0].ImageURL)
	})

	t.Run("resolves missing images via alt substring", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<script type="application/ld+json">
{"@type":"Restaurant","hasMenu":{"hasMenuSection":[{"name":"Drinks","hasMenuItem":[{"name":"Iced Latte"}]}]}}
</script>
<img alt="Our Iced Latte Special" src="https://x/special.jpg?w=300">
</body>`

		p := &extract.Pipeline{}
		result, err := p.Extract(html)

		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Equal(t, "https://x/special.jpg", result.Records[0].ImageURL)
		assert.Equal(t, 1, result.Stats.ResolvedByAltText)
		assert.Zero(t, result.Stats.ResolvedFromLookup)
	})

	t.Run("resolves missing images via filename slug", func(t *testing.T) {
		t.Parallel()

		// No alt text anywhere, but the file name carries the item name.
		html := `<body>
<script type="application/ld+json">
{"@type":"Restaurant","hasMenu":{"hasMenuSection":[{"name":"Drinks","hasMenuItem":[{"name":"Iced Latte"}]}]}}
</script>
<img src="https://cdn.x/menu/iced-latte-hero.jpg?v=9">
</body>`

		p := &extract.Pipeline{}
		result, err := p.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "https://cdn.x/menu/iced-latte-hero.jpg", result.Records[0].ImageURL)
		assert.Equal(t, 1, result.Stats.ResolvedByFilename)
	})

	t.Run("unresolved records keep an empty image URL", func(t *testing.T) {
		t.Parallel()

		html := `<script type="application/ld+json">
{"@type":"Restaurant","hasMenu":{"hasMenuSection":[{"name":"Drinks","hasMenuItem":[{"name":"Latte"}]}]}}
</script>`

		p := &extract.Pipeline{}
		result, err := p.Extract(html)

		require.NoError(t, err)
		assert.Empty(t, result.Records[0].ImageURL)
		assert.Equal(t, 1, result.Stats.Unresolved(len(result.Records)))
	})

	t.Run("identical snapshots extract identically", func(t *testing.T) {
		t.Parallel()

		html := `<body>
<script type="application/ld+json">
{"@type":"Restaurant","hasMenu":{"hasMenuSection":[
	{"name":"Drinks","hasMenuItem":[{"name":"Latte","offers":{"price":"4.5"}},{"name":"Mocha","offers":{"price":"5"}}]}
]}}
</script>
<script id="__NEXT_DATA__" type="application/json">{"props":{"apolloState":{
	"b":{"__typename":"MenuPageItem","name":"Latte","imgUrl":"https://x/b.jpg"},
	"a":{"__typename":"MenuPageItem","name":"Latte","imgUrl":"https://x/a.jpg"}
}}}</script>
<img alt="Mocha" src="https://x/mocha.jpg">
</body>`

		p := &extract.Pipeline{}
		first, err := p.Extract(html)
		require.NoError(t, err)
		second, err := p.Extract(html)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		// The balanced scanner sees the hydration entries in document order,
		// so the "b" entry is the first writer for Latte.
		assert.Equal(t, "https://x/b.jpg", first.Records[0].ImageURL)
		assert.Equal(t, "https://x/mocha.jpg", first.Records[1].ImageURL)
	})

	t.Run("degraded hydration payload is logged, not fatal", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		html := `<body>
<script type="application/ld+json">
{"@type":"Restaurant","hasMenu":{"hasMenuSection":[{"name":"Drinks","hasMenuItem":[{"name":"Latte"}]}]}}
</script>
<script id="__NEXT_DATA__">{broken</script>
</body>`

		p := &extract.Pipeline{Logger: logger}
		result, err := p.Extract(html)

		require.NoError(t, err)
		require.Len(t, result.Records, 1)
		assert.Contains(t, buf.String(), "image source degraded")
		assert.Contains(t, buf.String(), "hydration_cache")
	})
}

func TestHash(t *testing.T) {
	t.Parallel()

	a := extract.Hash("<html>same</html>")
	b := extract.Hash("<html>same</html>")
	c := extract.Hash("<html>different</html>")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEmpty(t, a)
}
