// File: services/voice/stt.go
package voice

import (
	"context"
	"fmt"
	"os"

	speech "cloud.google.com/go/speech/apiv1"
	"google.golang.org/api/option"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
)

// Transcriber recovers a transcript from a call recording when the provider
// did not deliver one.
type Transcriber interface {
	TranscribeRecording(ctx context.Context, wavPath string) (string, error)
}

// GoogleTranscriber implements Transcriber with Google Cloud Speech-to-Text.
type GoogleTranscriber struct {
	credentialsFile string
}

// NewGoogleTranscriber builds a transcriber using the given service account.
func NewGoogleTranscriber(credentialsFile string) *GoogleTranscriber {
	return &GoogleTranscriber{credentialsFile: credentialsFile}
}

// TranscribeRecording runs synchronous recognition over a short WAV recording.
func (t *GoogleTranscriber) TranscribeRecording(ctx context.Context, wavPath string) (string, error) {
	data, err := os.ReadFile(wavPath)
	if err != nil {
		return "", fmt.Errorf("failed to read recording: %w", err)
	}

	client, err := speech.NewClient(ctx, option.WithCredentialsFile(t.credentialsFile))
	if err != nil {
		return "", fmt.Errorf("failed to create speech client: %w", err)
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   speechpb.RecognitionConfig_LINEAR16,
			LanguageCode:               "en-IN",
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognition failed: %w", err)
	}

	var out string
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			if out != "" {
				out += "\n"
			}
			out += "speaker: " + result.Alternatives[0].Transcript
		}
	}
	return out, nil
}
