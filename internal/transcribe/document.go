package transcribe

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Transcript is the parsed result of a completed job: the flat text fed to
// the summarizer, plus a speaker-grouped rendering for file sinks.
type Transcript struct {
	Text        string
	SpeakerText string
}

// document mirrors the transcription service's result JSON: ordered items,
// each carrying one or more alternatives with confidence scores.
type document struct {
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
		Items []item `json:"items"`
	} `json:"results"`
}

type item struct {
	Type         string        `json:"type"`
	SpeakerLabel string        `json:"speaker_label,omitempty"`
	Alternatives []alternative `json:"alternatives"`
}

type alternative struct {
	Confidence string `json:"confidence"`
	Content    string `json:"content"`
}

// best returns the highest-confidence alternative. The first entry wins ties
// and is the fallback when no confidence parses.
func (it item) best() (alternative, bool) {
	if len(it.Alternatives) == 0 {
		return alternative{}, false
	}

	top := it.Alternatives[0]
	topScore := confidence(top)
	for _, alt := range it.Alternatives[1:] {
		if s := confidence(alt); s > topScore {
			top, topScore = alt, s
		}
	}
	return top, true
}

func confidence(a alternative) float64 {
	f, err := strconv.ParseFloat(a.Confidence, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseDocument parses a transcript document into a Transcript.
func ParseDocument(data []byte) (*Transcript, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse transcript document: %w", err)
	}

	text := flatten(doc.Results.Items)
	if text == "" {
		// Jobs without word-level items still carry the full transcript.
		for _, tr := range doc.Results.Transcripts {
			if tr.Transcript != "" {
				text = tr.Transcript
				break
			}
		}
	}
	if text == "" {
		return nil, fmt.Errorf("transcript document contains no text")
	}

	speakerText := speakerTranscript(doc.Results.Items)
	if speakerText == "" {
		speakerText = text
	}

	return &Transcript{Text: text, SpeakerText: speakerText}, nil
}

// flatten concatenates each item's highest-confidence alternative in original
// order. Pronunciation items are joined by single spaces; punctuation items
// attach to the preceding word.
func flatten(items []item) string {
	var b strings.Builder
	for _, it := range items {
		alt, ok := it.best()
		if !ok {
			continue
		}

		switch it.Type {
		case "punctuation":
			b.WriteString(alt.Content)
		default:
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(alt.Content)
		}
	}
	return b.String()
}

// speakerTranscript groups consecutive items by speaker label into
// "spk_N: ..." lines. Returns "" when the document carries no labels.
func speakerTranscript(items []item) string {
	var (
		b       strings.Builder
		speaker string
		current strings.Builder
	)

	flush := func() {
		if speaker != "" && current.Len() > 0 {
			fmt.Fprintf(&b, "%s: %s\n", speaker, strings.TrimSpace(current.String()))
			current.Reset()
		}
	}

	for _, it := range items {
		alt, ok := it.best()
		if !ok {
			continue
		}

		switch it.Type {
		case "punctuation":
			current.WriteString(alt.Content)
		case "pronunciation":
			if it.SpeakerLabel == "" {
				continue
			}
			if speaker != it.SpeakerLabel {
				flush()
				speaker = it.SpeakerLabel
			} else if current.Len() > 0 {
				current.WriteByte(' ')
			}
			current.WriteString(alt.Content)
		}
	}
	flush()

	return b.String()
}
