// Package translate resolves translation overlays for document text
// runs.
//
// Translation is an external collaborator of the document model: it
// runs off the model's critical path and hands results back through
// [Apply], which stores the overlay on the run's head element via the
// single mutation path. The shipped backend talks to the DeepL
// translator on RapidAPI.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/tsawler/folio/document"
)

// AutoDetect asks the backend to detect the source language.
const AutoDetect = "AUTO"

// Service translates text between languages. Implementations must be
// safe for concurrent use.
type Service interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// NormalizeTag validates and canonicalizes a language code using BCP 47
// matching ("en", "EN-us", "ko", ...). The AutoDetect sentinel passes
// through unchanged.
func NormalizeTag(code string) (string, error) {
	if strings.EqualFold(code, AutoDetect) {
		return AutoDetect, nil
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", fmt.Errorf("language tag %q: %w", code, err)
	}
	return strings.ToUpper(tag.String()), nil
}

// DeepL is a DeepL translator client going through RapidAPI.
type DeepL struct {
	APIKey string
	Host   string

	// HTTPClient defaults to a client with a 60 second timeout.
	HTTPClient *http.Client

	// baseURL overrides the gateway URL in tests.
	baseURL string
}

// NewDeepL creates a client for the given RapidAPI credentials.
func NewDeepL(apiKey, host string) *DeepL {
	return &DeepL{
		APIKey:     apiKey,
		Host:       host,
		HTTPClient: &http.Client{Timeout: 60 * time.Second},
	}
}

type deeplRequest struct {
	Text   string `json:"text"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// deeplResponse covers the field names the RapidAPI gateway has been
// seen returning.
type deeplResponse struct {
	Text           string `json:"text"`
	TranslatedText string `json:"translatedText"`
}

// Translate sends one text to the translator. Source may be
// [AutoDetect].
func (d *DeepL) Translate(ctx context.Context, text, source, target string) (string, error) {
	body, err := json.Marshal(deeplRequest{Text: text, Source: source, Target: target})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := fmt.Sprintf("https://%s/translate", d.Host)
	if d.baseURL != "" {
		url = d.baseURL + "/translate"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-RapidAPI-Key", d.APIKey)
	req.Header.Set("X-RapidAPI-Host", d.Host)

	client := d.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("translate request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("translate request: status %d: %s", resp.StatusCode, bytes.TrimSpace(payload))
	}

	var decoded deeplResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	result := decoded.Text
	if result == "" {
		result = decoded.TranslatedText
	}
	if result == "" {
		return "", fmt.Errorf("translate request: empty translation")
	}
	return result, nil
}

// Apply translates the logical run the key belongs to and stores the
// result as a translation overlay on the run's head element. Returns
// the translated text.
func Apply(ctx context.Context, svc Service, d *document.Document, key int, source, target string) (string, error) {
	if !d.CanBeTranslated(key) {
		return "", fmt.Errorf("element %d cannot be translated", key)
	}
	run, ok := d.ChainedText(key)
	if !ok {
		return "", fmt.Errorf("element %d not found", key)
	}

	translated, err := svc.Translate(ctx, run.Text, source, target)
	if err != nil {
		return "", err
	}
	if !d.SetTranslated(run.Key, translated) {
		return "", fmt.Errorf("element %d vanished during translation", run.Key)
	}
	return translated, nil
}
