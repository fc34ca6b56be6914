package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	config "github.com/socialops/content-api/configs"
	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/transfer"
	"github.com/socialops/content-api/pkg/svcerr"
)

// GenerationClient is the external generation collaborator. Content review
// and text generation are opaque calls that return text or a structured
// payload; nothing about the model behind them leaks into the pipeline.
type GenerationClient interface {
	ReviewContent(ctx context.Context, item *models.ContentItem) (*transfer.GenerationResult, error)
	GenerateCaption(ctx context.Context, item *models.ContentItem) (string, error)
	GenerateBrandRules(ctx context.Context, companyID, formAnswer string) (string, error)
}

type generationClient struct {
	cfg    config.Config
	client *http.Client
}

func NewGenerationClient(cfg config.Config) GenerationClient {
	return &generationClient{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (g *generationClient) post(ctx context.Context, path string, payload interface{}) (*transfer.GenerationResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.cfg.GenerationURL+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.cfg.GenerationAPIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, svcerr.Upstream("generation call failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		slog.Info("generation error", "status", resp.StatusCode, "body", string(respBody))
		return nil, svcerr.Upstream("generation call failed", fmt.Errorf("status %d", resp.StatusCode))
	}

	var result transfer.GenerationResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		slog.Info(err.Error())
		return nil, svcerr.Upstream("generation returned an unreadable response", err)
	}

	return &result, nil
}

func (g *generationClient) ReviewContent(ctx context.Context, item *models.ContentItem) (*transfer.GenerationResult, error) {
	return g.post(ctx, "/review", map[string]string{
		"content_calendar_id": item.ID,
		"company_id":          item.CompanyID,
		"caption":             item.Caption,
		"dmp":                 item.DMP,
	})
}

func (g *generationClient) GenerateCaption(ctx context.Context, item *models.ContentItem) (string, error) {
	result, err := g.post(ctx, "/caption", map[string]string{
		"content_calendar_id": item.ID,
		"company_id":          item.CompanyID,
		"dmp":                 item.DMP,
	})
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

func (g *generationClient) GenerateBrandRules(ctx context.Context, companyID, formAnswer string) (string, error) {
	result, err := g.post(ctx, "/brand-rules", map[string]string{
		"company_id":  companyID,
		"form_answer": formAnswer,
	})
	if err != nil {
		return "", err
	}
	return result.Text, nil
}
