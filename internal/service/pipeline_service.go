package service

import (
	"context"

	"github.com/socialops/content-api/internal/models"
	"github.com/socialops/content-api/internal/repository"
	"github.com/socialops/content-api/internal/transfer"
	"github.com/socialops/content-api/pkg/svcerr"
)

// PipelineService advances content items through the generation/review
// lifecycle on behalf of webhook triggers. Every persisted status is written
// by absolute value, so a retried trigger is a safe overwrite.
type PipelineService interface {
	ReviewContent(ctx context.Context, p *transfer.ReviewPayload) (*transfer.GenerationResult, *models.ContentItem, error)
	GenerateCaption(ctx context.Context, p *transfer.GeneratePayload) (*transfer.GenerationResult, *models.ContentItem, error)
	GenerateBrandRules(ctx context.Context, p *transfer.BrandRulesPayload) (*models.BrandKB, error)
}

type pipelineService struct {
	cc  repository.ContentRepository
	kb  repository.BrandKBRepository
	gen GenerationClient
}

func NewPipelineService(cc repository.ContentRepository, kb repository.BrandKBRepository, gen GenerationClient) PipelineService {
	return &pipelineService{
		cc:  cc,
		kb:  kb,
		gen: gen,
	}
}

func (s *pipelineService) loadItem(ctx context.Context, contentCalendarID, companyID string) (*models.ContentItem, error) {
	if contentCalendarID == "" || companyID == "" {
		return nil, svcerr.BadRequest("contentCalendarId and companyId are required")
	}

	item, err := s.cc.GetByIDAndCompany(ctx, contentCalendarID, companyID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, svcerr.NotFound("content item not found")
	}

	return item, nil
}

// ReviewContent runs the review step and persists the resulting status. The
// target status comes from the trigger when given, otherwise from the review
// result; a target that would move the item backwards is clamped to the
// current status, keeping the write path monotonic and retry-safe.
func (s *pipelineService) ReviewContent(ctx context.Context, p *transfer.ReviewPayload) (*transfer.GenerationResult, *models.ContentItem, error) {
	item, err := s.loadItem(ctx, p.ContentCalendarID, p.CompanyID)
	if err != nil {
		return nil, nil, err
	}

	result, err := s.gen.ReviewContent(ctx, item)
	if err != nil {
		return nil, nil, err
	}

	target := p.Status
	if target == "" {
		target = result.Status
	}
	if target == "" {
		target = models.ContentStatusInReview
	}
	if !models.ValidContentStatus(target) {
		return nil, nil, svcerr.BadRequest("invalid status: " + target)
	}
	if target == models.ContentStatusPublished {
		return nil, nil, svcerr.BadRequest("PUBLISHED is set by the publish step, not by review")
	}
	if !models.StatusAdvances(item.Status, target) {
		target = item.Status
	}

	if err := s.cc.UpdateReview(ctx, item.ID, target, result.Notes); err != nil {
		return nil, nil, err
	}

	item.Status = target
	if result.Notes != "" {
		item.DMP = result.Notes
	}

	return result, item, nil
}

// GenerateCaption writes the generated caption back without touching the
// lifecycle position.
func (s *pipelineService) GenerateCaption(ctx context.Context, p *transfer.GeneratePayload) (*transfer.GenerationResult, *models.ContentItem, error) {
	item, err := s.loadItem(ctx, p.ContentCalendarID, p.CompanyID)
	if err != nil {
		return nil, nil, err
	}

	caption, err := s.gen.GenerateCaption(ctx, item)
	if err != nil {
		return nil, nil, err
	}
	if caption == "" {
		return nil, nil, svcerr.Upstream("generation returned an empty caption", nil)
	}

	if err := s.cc.UpdateCaption(ctx, item.ID, caption, item.Status); err != nil {
		return nil, nil, err
	}

	item.Caption = caption

	return &transfer.GenerationResult{Status: item.Status, Text: caption}, item, nil
}

func (s *pipelineService) GenerateBrandRules(ctx context.Context, p *transfer.BrandRulesPayload) (*models.BrandKB, error) {
	if p.BrandKbID == "" || p.CompanyID == "" {
		return nil, svcerr.BadRequest("brandKbId and companyId are required")
	}

	kb, err := s.kb.GetByIDAndCompany(ctx, p.BrandKbID, p.CompanyID)
	if err != nil {
		return nil, err
	}
	if kb == nil {
		return nil, svcerr.NotFound("brand knowledge base not found")
	}

	rules, err := s.gen.GenerateBrandRules(ctx, p.CompanyID, p.FormAnswer)
	if err != nil {
		return nil, err
	}

	if err := s.kb.UpdateRules(ctx, kb.ID, rules); err != nil {
		return nil, err
	}

	kb.Rules = rules
	return kb, nil
}
