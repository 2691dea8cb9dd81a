package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
	"seehuhn.de/go/pdf/reader"
	"seehuhn.de/go/postscript/cid"

	"smartdoc"
)

func (a *Adapter) Extract(ctx context.Context, fileName string, contents io.ReadSeeker) ([]smartdoc.Passage, error) {
	pages, err := extractPageText(contents)
	if err != nil {
		return nil, fmt.Errorf("extracting text from %s: %w", fileName, err)
	}

	passages := make([]smartdoc.Passage, 0, 100)
	for pageNo, pageText := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, aSentence := range a.tokenizer.Tokenize(pageText) {
			aPassage := smartdoc.Passage{
				Content: strings.TrimSpace(aSentence.Text),
				Page:    pageNo + 1,
			}
			if aPassage.Content == "" {
				continue
			}
			passages = append(passages, aPassage)
		}
	}

	a.logger.Sugar().Infof("extracted %d passages from %d pages of %s", len(passages), len(pages), fileName)

	return passages, nil
}

// extractPageText renders each page's text content into a plain string. Glyphs
// without a unicode mapping are skipped rather than guessed at.
func extractPageText(data io.ReadSeeker) ([]string, error) {
	r, err := pdf.NewReader(data, nil)
	if err != nil {
		return nil, err
	}

	numPages, err := pagetree.NumPages(r)
	if err != nil {
		return nil, err
	}

	var w *bytes.Buffer

	contents := reader.New(r, nil)
	contents.TextEvent = func(op reader.TextEvent, arg float64) {
		switch op {
		case reader.TextEventSpace:
			fmt.Fprint(w, " ")
		case reader.TextEventNL, reader.TextEventMove:
			fmt.Fprintln(w)
		}
	}
	contents.Character = func(cid cid.CID, text string) error {
		fmt.Fprint(w, text)
		return nil
	}

	pages := make([]string, 0, numPages)
	for pageNo := range numPages {
		_, pageDict, err := pagetree.GetPage(r, pageNo)
		if err != nil {
			return nil, err
		}

		w = bytes.NewBuffer(nil)

		if err := contents.ParsePage(pageDict, matrix.Identity); err != nil {
			return nil, fmt.Errorf("error parsing page %d: %w", pageNo+1, err)
		}

		pages = append(pages, w.String())
	}

	return pages, nil
}
