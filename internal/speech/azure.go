package speech

import (
	"bytes"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Synthesizer renders a chunk of recipe text as WAV audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

var _ Synthesizer = (*AzureClient)(nil)

const (
	defaultTTSTimeout = 30 * time.Second
	maxErrorBody      = 2048
	userAgent         = "recipebox/0.1.0"
)

// AzureOption configures an AzureClient.
type AzureOption func(*AzureClient)

// WithVoice picks the neural voice recipes are read in. Empty keeps
// DefaultVoice.
func WithVoice(voice string) AzureOption {
	return func(c *AzureClient) {
		if voice != "" {
			c.voice = voice
		}
	}
}

// WithEndpoint points the client at another synthesis URL, e.g. a test
// server.
func WithEndpoint(url string) AzureOption {
	return func(c *AzureClient) { c.endpoint = url }
}

// AzureClient reads recipes aloud through the Azure Speech REST API. It
// is safe for concurrent use.
type AzureClient struct {
	key      string
	endpoint string
	voice    string
	http     *http.Client
	log      *logger.Logger
}

// NewAzureClient targets the regional endpoint for region.
func NewAzureClient(key, region string, log *logger.Logger, opts ...AzureOption) *AzureClient {
	c := &AzureClient{
		key:      key,
		endpoint: "https://" + region + ".tts.speech.microsoft.com/cognitiveservices/v1",
		voice:    DefaultVoice,
		http:     &http.Client{Timeout: defaultTTSTimeout},
		log:      log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Voice is the voice name; the audio cache is keyed on it.
func (c *AzureClient) Voice() string { return c.voice }

// Synthesize returns the spoken audio for one chunk of a recipe. Every
// failure wraps domain.ErrTransport.
func (c *AzureClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	body, err := c.ssml(text)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build tts request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", DefaultAudioFormat)
	req.Header.Set("User-Agent", userAgent)

	c.log.Debug("synthesizing %d chars as %s", len(text), c.voice)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tts request: %w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("tts status %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(msg)), domain.ErrTransport)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts audio: %w: %w", domain.ErrTransport, err)
	}
	c.log.Debug("received %d bytes of speech", len(audio))
	return audio, nil
}

// ssml escapes recipe text, which routinely carries "&" and "<", and
// wraps it in the voice element.
func (c *AzureClient) ssml(text string) (string, error) {
	var esc bytes.Buffer
	if err := xml.EscapeText(&esc, []byte(text)); err != nil {
		return "", fmt.Errorf("escape ssml: %w", err)
	}
	return "<speak version='1.0' xml:lang='en-US'><voice xml:lang='en-US' name='" +
		c.voice + "'>" + esc.String() + "</voice></speak>", nil
}
