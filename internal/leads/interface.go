package leads

import (
	"context"
	"smartsite/pkg/domain"
)

//go:generate mockgen -package mockleads -source=interface.go -destination=mock/mockleads.go *
type Service interface {
	CaptureLead(ctx context.Context, lead domain.Lead) (string, error)
	RequestDemo(ctx context.Context, req domain.DemoRequest) (*domain.Demo, error)
}
