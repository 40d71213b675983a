package indexer

import (
	"strings"
	"unicode/utf8"
)

const (
	// chunkSize is the target fragment size in runes.
	chunkSize = 900
	// chunkOverlap is the approximate overlap carried between consecutive fragments
	// of the same page, so queries landing near a boundary still retrieve complete context.
	chunkOverlap = 150
	// minPageLen is the minimum trimmed page length worth fragmenting.
	minPageLen = 50
	// minFragmentLen filters out noise fragments after splitting.
	minFragmentLen = 20
)

// separators are tried in order: paragraph breaks first, then line breaks,
// then sentence boundaries, then spaces. The empty string means a hard rune cut.
var separators = []string{"\n\n", "\n", ". ", " ", ""}

// Chunker splits page-level text into overlapping fragments suitable for
// embedding and retrieval. It is a pure transformation and never fails;
// empty input yields empty output.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker creates a chunker with the default fragment size and overlap.
func NewChunker() *Chunker {
	return &Chunker{size: chunkSize, overlap: chunkOverlap}
}

// SplitPages splits a sequence of page texts into fragments.
// Pages below the minimum significant length are discarded before splitting,
// and fragments below the minimum fragment length are discarded after.
// Fragment indices are sequential across the whole document.
func (c *Chunker) SplitPages(pages []PageText) []Fragment {
	var fragments []Fragment
	index := 0
	for _, page := range pages {
		text := strings.TrimSpace(page.Text)
		if utf8.RuneCountInString(text) < minPageLen {
			continue
		}
		for _, piece := range c.splitText(text, separators) {
			piece = strings.TrimSpace(piece)
			if utf8.RuneCountInString(piece) < minFragmentLen {
				continue
			}
			fragments = append(fragments, Fragment{
				Text:  piece,
				Page:  page.Page,
				Index: index,
			})
			index++
		}
	}
	return fragments
}

// splitText recursively splits text on the first separator present in it,
// recursing with the remaining separators for pieces that are still too large,
// then merges adjacent pieces back into chunks of at most c.size runes.
func (c *Chunker) splitText(text string, seps []string) []string {
	if text == "" {
		return nil
	}

	sep := seps[len(seps)-1]
	var rest []string
	for i, s := range seps {
		if s == "" {
			sep = s
			rest = nil
			break
		}
		if strings.Contains(text, s) {
			sep = s
			rest = seps[i+1:]
			break
		}
	}

	var pieces []string
	for _, part := range splitKeepSeparator(text, sep) {
		if utf8.RuneCountInString(part) <= c.size {
			pieces = append(pieces, part)
			continue
		}
		if len(rest) == 0 {
			pieces = append(pieces, hardSplit(part, c.size)...)
			continue
		}
		pieces = append(pieces, c.splitText(part, rest)...)
	}

	return c.mergePieces(pieces)
}

// mergePieces greedily joins pieces into chunks no larger than c.size runes.
// When a chunk is emitted, pieces are dropped from the front of the window
// until at most c.overlap runes remain; those trailing pieces become the
// beginning of the next chunk, producing the overlap between neighbors.
func (c *Chunker) mergePieces(pieces []string) []string {
	var chunks []string
	var window []string
	total := 0

	flush := func() {
		if len(window) == 0 {
			return
		}
		chunk := strings.TrimSpace(strings.Join(window, ""))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
	}

	for _, piece := range pieces {
		pieceLen := utf8.RuneCountInString(piece)
		if total+pieceLen > c.size && len(window) > 0 {
			flush()
			for total > c.overlap && len(window) > 0 {
				total -= utf8.RuneCountInString(window[0])
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += pieceLen
	}
	flush()

	return chunks
}

// splitKeepSeparator splits text on sep, keeping the separator attached to the
// end of each piece so that rejoining pieces reproduces the original text.
func splitKeepSeparator(text, sep string) []string {
	if sep == "" {
		return []string{text}
	}
	parts := strings.Split(text, sep)
	pieces := make([]string, 0, len(parts))
	for i, part := range parts {
		if i < len(parts)-1 {
			part += sep
		}
		if part != "" {
			pieces = append(pieces, part)
		}
	}
	return pieces
}

// hardSplit cuts text into size-rune slices with no boundary awareness.
// Last resort when no separator fits.
func hardSplit(text string, size int) []string {
	runes := []rune(text)
	var out []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
