package services

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Roblokonha/StudyVault/internal/data/aggregates"
	domainagg "github.com/Roblokonha/StudyVault/internal/domain/aggregates"
	"github.com/Roblokonha/StudyVault/internal/learning/merge"
	"github.com/Roblokonha/StudyVault/internal/observability"
	"github.com/Roblokonha/StudyVault/internal/platform/dbctx"
)

func (s *workspaceService) MergeCandidates(ctx context.Context, docID uuid.UUID) (*MergeCandidates, error) {
	const op = "workspace.merge_candidates"
	dbc := dbctx.Context{Ctx: ctx}
	if _, err := requireDocument(dbc, s.docs, op, docID); err != nil {
		return nil, aggregates.MapError(op, err)
	}
	items, err := s.items.ListByDocument(dbc, docID)
	if err != nil {
		return nil, aggregates.MapError(op, err)
	}
	source, target, err := merge.Candidates(items)
	if err != nil {
		return nil, err
	}
	return &MergeCandidates{
		SourceID:    source.ID,
		SourceTitle: source.Title,
		TargetID:    target.ID,
		TargetTitle: target.Title,
	}, nil
}

func (s *workspaceService) Merge(ctx context.Context, docID uuid.UUID, sourceID, targetID *uuid.UUID) (*merge.Outcome, error) {
	const op = "workspace.merge"
	if (sourceID == nil) != (targetID == nil) {
		return nil, domainagg.Validation(op, "source_id and target_id must be given together")
	}

	var outcome merge.Outcome
	err := aggregates.Write(ctx, s.runner, s.log, op, func(dbc dbctx.Context) error {
		if _, err := requireDocument(dbc, s.docs, op, docID); err != nil {
			return err
		}
		items, err := s.items.ListByDocument(dbc, docID)
		if err != nil {
			return err
		}
		rels, err := s.relations.ListByDocument(dbc, docID)
		if err != nil {
			return err
		}

		var src, dst uuid.UUID
		if sourceID != nil {
			src, dst = *sourceID, *targetID
		} else {
			a, b, err := merge.Candidates(items)
			if err != nil {
				return err
			}
			src, dst = a.ID, b.ID
		}
		if src != dst {
			if err := requireItemsInDocument(dbc, s.guard, op, docID, src, dst); err != nil {
				return err
			}
		}

		plan, err := merge.NewPlan(docID, items, rels, src, dst)
		if err != nil {
			return err
		}

		n, err := s.items.ReparentChildren(dbc, docID, src, dst)
		if err != nil {
			return err
		}
		if err := aggregates.RequireAffected("reparent children", n, int64(len(plan.Children))); err != nil {
			return err
		}
		if n, err = s.relations.RewriteSource(dbc, docID, src, dst); err != nil {
			return err
		}
		if err := aggregates.RequireAffected("rewrite relation sources", n, int64(len(plan.FromSource))); err != nil {
			return err
		}
		if n, err = s.relations.RewriteTarget(dbc, docID, src, dst); err != nil {
			return err
		}
		if err := aggregates.RequireAffected("rewrite relation targets", n, int64(len(plan.ToSource))); err != nil {
			return err
		}
		if n, err = s.items.DeleteByIDs(dbc, []uuid.UUID{src}); err != nil {
			return err
		}
		if err := aggregates.RequireAffected("delete source", n, 1); err != nil {
			return err
		}
		outcome = plan.Outcome()
		return nil
	})
	if err != nil {
		observability.Current().IncMerge(string(domainagg.CodeOf(err)))
		return nil, err
	}
	observability.Current().IncMerge("ok")

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("merge.target_id", outcome.TargetID.String()),
		attribute.Int("merge.absorbed_children", outcome.AbsorbedChildren),
		attribute.Int("merge.rewritten_relations", outcome.RewrittenRelations),
	)
	invalidateExports(ctx, s.cache, s.log, docID)
	fields := []interface{}{
		"document_id", docID,
		"source_id", outcome.SourceID,
		"target_id", outcome.TargetID,
		"absorbed_children", outcome.AbsorbedChildren,
		"rewritten_relations", outcome.RewrittenRelations,
	}
	s.log.WithContext(ctx).Info("workspace items merged", fields...)
	return &outcome, nil
}
