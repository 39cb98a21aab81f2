package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"commitscope/models"
)

//go:embed templates/wordcloud.svg.tmpl
var wordcloudTemplate string

var wordcloudTmpl = template.Must(template.New("wordcloud").Parse(wordcloudTemplate))

const (
	minFontSize = 12.0
	maxFontSize = 56.0

	// Rough per-rune advance as a fraction of the font size, enough to
	// pack rows without measuring real glyphs.
	glyphAspect = 0.62

	cloudPadding    = 20.0
	rowSpacing      = 1.3
	wordSpacing     = 14.0
	cloudTitleSpace = 30.0
)

var palette = []string{
	"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728",
	"#9467bd", "#8c564b", "#e377c2", "#17becf",
}

type cloudWord struct {
	X     string
	Y     string
	Size  string
	Color string
	Text  string
}

type wordcloudViewModel struct {
	Width  int
	Height int
	Title  string
	Words  []cloudWord
}

// WordCloud lays the given frequency-ordered terms out on a transparent
// 800x400 canvas, font size proportional to frequency. The layout is a
// deterministic row packing: same input, same image. Words that do not
// fit on the canvas are dropped.
func WordCloud(words []models.WordCount, title string) ([]byte, error) {
	vm := wordcloudViewModel{
		Width:  canvasWidth,
		Height: canvasHeight,
		Title:  title,
		Words:  layoutRows(words),
	}

	var buf bytes.Buffer
	if err := wordcloudTmpl.Execute(&buf, vm); err != nil {
		return nil, fmt.Errorf("render wordcloud svg: %w", err)
	}
	return buf.Bytes(), nil
}

func fontSize(count, minCount, maxCount int) float64 {
	if maxCount == minCount {
		return (minFontSize + maxFontSize) / 2
	}
	frac := float64(count-minCount) / float64(maxCount-minCount)
	return minFontSize + (maxFontSize-minFontSize)*frac
}

type cloudRow struct {
	words  []cloudWord
	widths []float64
	width  float64
	height float64
}

// layoutRows packs words into centered rows, most frequent first, until
// the vertical space runs out.
func layoutRows(words []models.WordCount) []cloudWord {
	if len(words) == 0 {
		return nil
	}
	maxCount := words[0].Count
	minCount := words[len(words)-1].Count
	usableWidth := float64(canvasWidth) - 2*cloudPadding

	var rows []cloudRow
	var row cloudRow
	totalHeight := 0.0

	flush := func() bool {
		if len(row.words) == 0 {
			return true
		}
		if totalHeight+row.height > float64(canvasHeight)-cloudTitleSpace-2*cloudPadding {
			return false
		}
		totalHeight += row.height
		rows = append(rows, row)
		row = cloudRow{}
		return true
	}

	for i, wc := range words {
		size := fontSize(wc.Count, minCount, maxCount)
		width := glyphAspect * size * float64(len([]rune(wc.Word)))

		needed := width
		if len(row.words) > 0 {
			needed += wordSpacing
		}
		if row.width+needed > usableWidth && len(row.words) > 0 {
			if !flush() {
				return placeRows(rows)
			}
			needed = width
		}

		row.words = append(row.words, cloudWord{
			Size:  fmtCoord(size),
			Color: palette[i%len(palette)],
			Text:  wc.Word,
		})
		row.widths = append(row.widths, width)
		row.width += needed
		if h := size * rowSpacing; h > row.height {
			row.height = h
		}
	}
	flush()
	return placeRows(rows)
}

// placeRows centers each row horizontally and the whole block vertically,
// assigning final coordinates. Text anchors are the word centers.
func placeRows(rows []cloudRow) []cloudWord {
	blockHeight := 0.0
	for _, r := range rows {
		blockHeight += r.height
	}
	y := cloudTitleSpace + (float64(canvasHeight)-cloudTitleSpace-blockHeight)/2

	var placed []cloudWord
	for _, r := range rows {
		x := (float64(canvasWidth) - r.width) / 2
		baseline := y + r.height*0.75
		for i, w := range r.words {
			w.X = fmtCoord(x + r.widths[i]/2)
			w.Y = fmtCoord(baseline)
			placed = append(placed, w)
			x += r.widths[i] + wordSpacing
		}
		y += r.height
	}
	return placed
}
