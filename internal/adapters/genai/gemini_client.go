package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"safewalk-service/internal/domain"
	"safewalk-service/internal/metrics"
	"safewalk-service/internal/platform/obs"
	"safewalk-service/internal/ports"
)

// GeminiClient implements Narrator, AreaDescriber, and PlaceFinder against a
// Gemini-style generateContent endpoint.
//
// Replies are free text that the prompts constrain to JSON where structure is
// needed; parsing is defensive and every failure surfaces as an error so
// callers can degrade to their deterministic fallbacks.
// The client is safe for concurrent use.
type GeminiClient struct {
	session *http.Client
	apiKey  string
	baseURL string
	model   string
}

func NewGeminiClient(apiKey, baseURL, model string) *GeminiClient {
	if baseURL == "" {
		baseURL = "https://generativelanguage.googleapis.com"
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	return &GeminiClient{
		session: &http.Client{Timeout: 30 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

type generatePart struct {
	Text string `json:"text,omitempty"`
}

type generateContent struct {
	Parts []generatePart `json:"parts"`
}

type generateTool struct {
	GoogleMaps *struct{} `json:"googleMaps,omitempty"`
}

type generateRequest struct {
	Contents []generateContent `json:"contents"`
	Tools    []generateTool    `json:"tools,omitempty"`
}

type groundingChunk struct {
	Maps *struct {
		Title string `json:"title"`
		URI   string `json:"uri"`
		Text  string `json:"text"`
	} `json:"maps"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generatePart `json:"parts"`
		} `json:"content"`
		GroundingMetadata *struct {
			GroundingChunks []groundingChunk `json:"groundingChunks"`
		} `json:"groundingMetadata"`
	} `json:"candidates"`
}

// generate issues a generateContent call and returns the concatenated text
// of the first candidate along with the raw response. maxAttempts bounds
// transport retries; pass 1 for calls that must not be retried.
func (g *GeminiClient) generate(ctx context.Context, body generateRequest, maxAttempts int) (string, *generateResponse, error) {
	if g.apiKey == "" {
		return "", nil, errors.New("generate: api key is empty")
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", g.baseURL, g.model)

	payload, err := json.Marshal(body)
	if err != nil {
		return "", nil, fmt.Errorf("marshal generate request: %w", err)
	}

	resp, err := g.doWithRetry(ctx, maxAttempts, func() (*http.Request, error) {
		return g.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return "", nil, fmt.Errorf("generate request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", nil, fmt.Errorf("decode generate response: %w", err)
	}

	if len(decoded.Candidates) == 0 {
		return "", nil, errors.New("generate: response has no candidates")
	}

	var sb strings.Builder
	for _, p := range decoded.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", nil, errors.New("generate: candidate has no text")
	}

	return text, &decoded, nil
}

// SafetyNote asks for a one-sentence caption for the chosen route.
func (g *GeminiClient) SafetyNote(ctx context.Context, req ports.NarrativeRequest) (_ string, err error) {
	defer obs.Time(ctx, "genai.SafetyNote")(&err)
	defer metrics.TimeGenAIRequest("safety_note")()

	detour := "the direct path was already the best option"
	if req.Detoured {
		detour = "a detour was taken around a reported danger zone"
	}

	prompt := fmt.Sprintf(
		`You caption walking routes for a pedestrian safety app. For the route below, write one short, calm sentence for the walker.
Route facts: %s; %d danger reports remain near the chosen path; estimated time %s.
Respond with only a JSON object with a single "safetyNote" string field.`,
		detour, req.ConflictCount, req.DurationText,
	)

	// A note request rides inside a route calculation, so it gets a single
	// attempt; callers already degrade to a deterministic caption.
	text, _, err := g.generate(ctx, generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}, 1)
	if err != nil {
		return "", err
	}

	var parsed struct {
		SafetyNote string `json:"safetyNote"`
	}
	if err := json.Unmarshal([]byte(extractJSON(text)), &parsed); err != nil {
		return "", fmt.Errorf("parse safety note reply: %w", err)
	}
	if strings.TrimSpace(parsed.SafetyNote) == "" {
		return "", errors.New("safety note reply missing safetyNote field")
	}

	return strings.TrimSpace(parsed.SafetyNote), nil
}

// DescribeArea asks for a grounded description of the surroundings of a
// coordinate and maps grounding chunks to citations.
func (g *GeminiClient) DescribeArea(ctx context.Context, center domain.Coordinate) (_ *ports.AreaSummary, err error) {
	defer obs.Time(ctx, "genai.DescribeArea")(&err)
	defer metrics.TimeGenAIRequest("describe_area")()

	prompt := fmt.Sprintf(
		`Describe the area around latitude %.5f, longitude %.5f for someone about to walk through it.
Mention the general character of the neighborhood and anything a pedestrian should know. Keep it under three sentences.`,
		center.Lat, center.Lon,
	)

	text, raw, err := g.generate(ctx, generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
		Tools:    []generateTool{{GoogleMaps: &struct{}{}}},
	}, 3)
	if err != nil {
		return nil, err
	}

	summary := &ports.AreaSummary{Text: text, Citations: []ports.Citation{}}

	meta := raw.Candidates[0].GroundingMetadata
	if meta == nil {
		return summary, nil
	}

	for _, chunk := range meta.GroundingChunks {
		if chunk.Maps == nil || chunk.Maps.URI == "" {
			continue
		}
		citation := ports.Citation{
			Title: chunk.Maps.Title,
			URI:   chunk.Maps.URI,
		}
		if s := strings.TrimSpace(chunk.Maps.Text); s != "" {
			citation.Reviews = append(citation.Reviews, s)
		}
		summary.Citations = append(summary.Citations, citation)
	}

	return summary, nil
}

// FindPlaces asks for place suggestions matching a text query near a center
// coordinate, returned as a JSON array.
func (g *GeminiClient) FindPlaces(ctx context.Context, query string, center domain.Coordinate) (_ []ports.PlaceSuggestion, err error) {
	defer obs.Time(ctx, "genai.FindPlaces")(&err)
	defer metrics.TimeGenAIRequest("find_places")()

	prompt := fmt.Sprintf(
		`Suggest up to 5 real places matching %q near latitude %.5f, longitude %.5f.
Respond with only a JSON array of objects, each with "name" (string), "lat" (number), "lng" (number), and optionally "address" (string).`,
		query, center.Lat, center.Lon,
	)

	text, _, err := g.generate(ctx, generateRequest{
		Contents: []generateContent{{Parts: []generatePart{{Text: prompt}}}},
	}, 3)
	if err != nil {
		return nil, err
	}

	var places []ports.PlaceSuggestion
	if err := json.Unmarshal([]byte(extractJSON(text)), &places); err != nil {
		return nil, fmt.Errorf("parse place suggestions reply: %w", err)
	}

	return places, nil
}

// extractJSON strips markdown code fences that models wrap JSON replies in.
func extractJSON(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}

	return strings.TrimSpace(s)
}
