package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planpush/planpush/internal/config"
	"github.com/planpush/planpush/internal/domain"
	"github.com/planpush/planpush/internal/importer"
	"github.com/planpush/planpush/internal/publisher"
	"github.com/planpush/planpush/internal/repository"
)

type publishService struct {
	resolver *config.Resolver
	creator  publisher.Creator
	mappings MappingService
	log      repository.PublishLogRepo
	observer UseCaseObserver
}

// NewPublishService wires the full publish pipeline: schema validation,
// type-mapping resolution, remote context resolution, tree creation, and
// history recording. log may be nil to skip history.
func NewPublishService(
	resolver *config.Resolver,
	creator publisher.Creator,
	mappings MappingService,
	log repository.PublishLogRepo,
	observers ...UseCaseObserver,
) PublishService {
	return &publishService{
		resolver: resolver,
		creator:  creator,
		mappings: mappings,
		log:      log,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *publishService) PublishFile(ctx context.Context, path string, opts PublishOptions) (*PublishResult, error) {
	schema, err := importer.LoadPlanSchema(path)
	if err != nil {
		return nil, fmt.Errorf("loading plan file: %w", err)
	}
	return s.PublishSchema(ctx, schema, opts)
}

func (s *publishService) PublishSchema(ctx context.Context, schema *importer.PlanSchema, opts PublishOptions) (*PublishResult, error) {
	if errs := importer.ValidatePlanSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting plan schema: %w", err)
	}

	if s.mappings != nil {
		if err := s.mappings.Apply(ctx, converted.Root); err != nil {
			return nil, err
		}
	}

	if opts.DryRun {
		return &PublishResult{
			Preview:   converted.Root,
			NodeCount: converted.Root.CountNodes(),
		}, nil
	}

	resolved, err := s.resolver.Resolve(ctx)
	if err != nil {
		return nil, err
	}

	pubOpts := publisher.Options{
		AreaPath:      domain.CoalesceStr(opts.AreaPath, domain.CoalesceStr(converted.AreaPath, resolved.AreaPath)),
		IterationPath: domain.CoalesceStr(opts.Iteration, domain.CoalesceStr(converted.Iteration, resolved.Iteration)),
		CaseType:      opts.CaseType,
	}

	counter := &countingObserver{next: opts.Progress}
	pub := publisher.New(s.creator, counter)

	started := time.Now().UTC()
	root, pubErr := pub.Publish(ctx, resolved.Remote, converted.Root, pubOpts)
	finished := time.Now().UTC()

	result := &PublishResult{
		ProfileName:  resolved.ProfileName,
		Root:         root,
		NodeCount:    converted.Root.CountNodes(),
		CreatedCount: counter.created,
	}

	record := &domain.PublishRecord{
		ID:           uuid.New().String(),
		ProfileName:  resolved.ProfileName,
		RootTitle:    converted.Root.Title,
		RootKind:     converted.Root.Kind,
		NodeCount:    result.NodeCount,
		CreatedCount: counter.created,
		Outcome:      domain.PublishSucceeded,
		StartedAt:    started,
		FinishedAt:   finished,
	}
	if pubErr != nil {
		record.Outcome = domain.PublishFailed
		record.ErrorText = pubErr.Error()
	}
	if s.log != nil {
		if err := s.log.Record(ctx, record); err == nil {
			result.RecordID = record.ID
		}
	}

	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "publish",
		Duration:  finished.Sub(started),
		Success:   pubErr == nil,
		Err:       pubErr,
		StartedAt: started,
		Fields: map[string]any{
			"root_kind":     string(converted.Root.Kind),
			"node_count":    result.NodeCount,
			"created_count": counter.created,
		},
	})

	if pubErr != nil {
		return result, pubErr
	}
	return result, nil
}

// countingObserver counts completed nodes and forwards events.
type countingObserver struct {
	next    publisher.Observer
	created int
}

func (o *countingObserver) OnNodeComplete(event publisher.NodeEvent) {
	o.created++
	if o.next != nil {
		o.next.OnNodeComplete(event)
	}
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("plan validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
