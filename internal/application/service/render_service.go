package service

import (
	"context"

	"github.com/google/uuid"

	"coinmarker/internal/domain/marker"
)

// RenderResult 一次性渲染的结果
type RenderResult struct {
	SessionID   string
	Output      string
	Error       string
	Resolutions marker.Resolutions
}

// RenderService 在一个全新的会话中解析整段文本
type RenderService struct {
	resolver *Resolver
}

func NewRenderService(resolver *Resolver) *RenderService {
	return &RenderService{resolver: resolver}
}

func (s *RenderService) Render(ctx context.Context, text string) RenderResult {
	res := RenderResult{SessionID: uuid.NewString()}

	markers := marker.Scan(text)
	if len(markers) > 0 {
		b := s.resolver.Resolve(ctx, BatchRequest{
			SessionID: res.SessionID,
			Markers:   markers,
		})
		res.Resolutions = res.Resolutions.Merge(b.Resolved)
		res.Error = b.Error
	}

	res.Output = marker.Compose(text, res.Resolutions)
	return res
}
