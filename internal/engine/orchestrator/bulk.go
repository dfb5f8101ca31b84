package orchestrator

import (
	"context"
	"errors"
	"strings"

	"go.trai.ch/tago/internal/core/domain"
	"go.trai.ch/zerr"
)

// Init builds every tag of the active table in ascending order. Per-tag
// failures are downgraded to warnings and the loop continues; this bulk
// policy is deliberately best-effort, unlike the fail-fast single-tag
// operations. The one exception is a switch-back failure: the tree is on
// the wrong ref and continuing would corrupt every build after it.
func (o *Orchestrator) Init(ctx context.Context) error {
	if err := o.requireCleanTree(ctx); err != nil {
		return err
	}
	return o.bulk(ctx, "build", o.buildTag)
}

// Purge deletes every tag of the active table in ascending order, with
// the same best-effort policy as Init.
func (o *Orchestrator) Purge(ctx context.Context) error {
	return o.bulk(ctx, "delete", o.Delete)
}

func (o *Orchestrator) bulk(ctx context.Context, verb string, op func(context.Context, string) error) error {
	var failedTags []string

	for _, tag := range o.table().Tags() {
		o.state.Tag = tag

		err := op(ctx, tag)
		if err == nil {
			continue
		}
		if errors.Is(err, domain.ErrSwitchBackFailed) {
			return err
		}

		o.logger.Warn("failed to " + verb + " tag " + tag + ": " + err.Error())
		failedTags = append(failedTags, tag)
	}

	if len(failedTags) > 0 {
		err := zerr.With(zerr.Wrap(domain.ErrBulkIncomplete, "not every tag succeeded"), "op", verb)
		return zerr.With(err, "tags", strings.Join(failedTags, ", "))
	}
	return nil
}
