// Package aisvc holds the hosted language-model clients.
package aisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/upliftai/backend/core"
)

const defaultHost = "https://generativelanguage.googleapis.com"

// geminiService calls the Gemini generateContent REST endpoint.
type geminiService struct {
	key    string
	model  string
	host   string
	client *http.Client
}

var _ core.TextGenerator = (*geminiService)(nil)

func NewGeminiService(conf *core.Config) *geminiService {
	return &geminiService{
		key:    conf.GeminiAPIKey,
		model:  conf.GeminiModel,
		host:   defaultHost,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

type (
	generateRequest struct {
		Contents []content `json:"contents"`
	}
	content struct {
		Parts []part `json:"parts"`
	}
	part struct {
		Text string `json:"text"`
	}

	generateResponse struct {
		Candidates []struct {
			Content content `json:"content"`
		} `json:"candidates"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
)

func (svc *geminiService) GenerateText(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", errors.Wrap(err, "marshaling request")
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", svc.host, svc.model, svc.key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "building request")
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := svc.client.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling gemini")
	}
	defer func() { _ = res.Body.Close() }()

	data, err := ioutil.ReadAll(res.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading response")
	}
	if res.StatusCode != http.StatusOK {
		return "", errors.Errorf("gemini status %d: %s", res.StatusCode, data)
	}

	var gr generateResponse
	if err := json.Unmarshal(data, &gr); err != nil {
		return "", errors.Wrap(err, "unmarshaling response")
	}
	if gr.Error != nil {
		return "", errors.Errorf("gemini error %d: %s", gr.Error.Code, gr.Error.Message)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	return gr.Candidates[0].Content.Parts[0].Text, nil
}
