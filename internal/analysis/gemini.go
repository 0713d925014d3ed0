package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"
)

// GeminiAnalyzer drives the Gemini Files + generateContent flow: upload the
// clip, wait until the file is active, then run the forensic prompt with a
// JSON response MIME type so the model answers with the report structure.
type GeminiAnalyzer struct {
	APIKey       string
	Model        string
	PollInterval time.Duration
}

// NewGeminiAnalyzer builds an analyzer for the given key and model name.
func NewGeminiAnalyzer(apiKey, model string) *GeminiAnalyzer {
	if model == "" {
		model = "gemini-1.5-pro"
	}
	return &GeminiAnalyzer{
		APIKey:       apiKey,
		Model:        model,
		PollInterval: 5 * time.Second,
	}
}

// Analyze implements Analyzer.
func (a *GeminiAnalyzer) Analyze(ctx context.Context, videoPath string) (string, error) {
	if a.APIKey == "" {
		return "", errors.New("GOOGLE_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  a.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return "", fmt.Errorf("creating gemini client: %w", err)
	}

	file, err := client.Files.UploadFromPath(ctx, videoPath, &genai.UploadFileConfig{
		MIMEType: "video/mp4",
	})
	if err != nil {
		return "", fmt.Errorf("uploading video: %w", err)
	}
	log.Printf("uploaded %s as %s", videoPath, file.URI)

	file, err = a.waitForActive(ctx, client, file)
	if err != nil {
		return "", err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromURI(file.URI, file.MIMEType),
			genai.NewPartFromText(ForensicAnalysisPrompt),
		}, genai.RoleUser),
	}

	resp, err := client.Models.GenerateContent(ctx, a.Model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("generating analysis: %w", err)
	}

	return resp.Text(), nil
}

// waitForActive polls the Files API until the uploaded clip finishes
// server-side processing. Files that end up in any state other than active
// cannot be analyzed.
func (a *GeminiAnalyzer) waitForActive(ctx context.Context, client *genai.Client, file *genai.File) (*genai.File, error) {
	interval := a.PollInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}

	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(interval):
		}

		var err error
		file, err = client.Files.Get(ctx, file.Name, nil)
		if err != nil {
			return nil, fmt.Errorf("checking file state: %w", err)
		}
	}

	if file.State != genai.FileStateActive {
		return nil, fmt.Errorf("file %s failed server-side processing (state %s)", file.Name, file.State)
	}
	return file, nil
}
