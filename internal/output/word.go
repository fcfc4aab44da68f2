package output

import (
	"context"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	wordFont     = "Calibri"
	wordFontSize = 11
	headingSize  = 14
)

type wordSink struct {
	path string
}

// NewWord creates a sink writing a Word document with the summary followed
// by the transcript.
func NewWord(path string) Sink {
	return &wordSink{path: path}
}

func (s *wordSink) Name() string { return "word" }

func (s *wordSink) Render(ctx context.Context, summary, transcript string, meta Metadata) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return &SinkError{Sink: s.Name(), Err: err}
	}

	addHeading(doc, "Summary of "+meta.SourceFile)
	addBody(doc, summary)

	doc.AddParagraph("")
	addHeading(doc, "Transcription")
	addBody(doc, transcript)

	if err := doc.SaveTo(s.path); err != nil {
		return &SinkError{Sink: s.Name(), Err: err}
	}
	return nil
}

func addHeading(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(wordFont).Size(headingSize).Color("000000").Bold(true)
}

func addBody(doc *docx.RootDoc, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		p := doc.AddParagraph("")
		p.AddText(line).Font(wordFont).Size(wordFontSize).Color("000000")
	}
}
