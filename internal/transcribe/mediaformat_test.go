package transcribe

import "testing"

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		want    MediaFormat
		wantErr bool
	}{
		{"m4a", "/tmp/meeting.m4a", FormatM4A, false},
		{"mp3", "podcast.mp3", FormatMP3, false},
		{"mp4", "recording.mp4", FormatMP4, false},
		{"wav", "take1.wav", FormatWav, false},
		{"flac", "lossless.flac", FormatFlac, false},
		{"opus maps to ogg", "call.opus", FormatOgg, false},
		{"uppercase extension", "MEETING.M4A", FormatM4A, false},
		{"unsupported", "notes.txt", "", true},
		{"no extension", "meeting", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatFromPath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FormatFromPath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("FormatFromPath(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
