package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/mkcms/mkcms-go/internal/model"
)

// RecordEvent appends an entry to the admin activity log. Event recording is
// best-effort: it degrades like every other write but never invents failures
// for the caller's main operation.
func (f *Facade) RecordEvent(ctx context.Context, level, category, message, metadata string) (model.Event, Tier, error) {
	e := model.Event{
		ID:        uuid.NewString(),
		Level:     level,
		Category:  category,
		Message:   message,
		Metadata:  metadata,
		CreatedAt: f.now().UTC(),
	}

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		if err := q.InsertEvent(octx, e); err != nil {
			f.degraded("record event", err)
		} else {
			return e, TierDurable, nil
		}
	}

	f.mem.Events.Put(e.ID, e)
	return e, TierMemory, nil
}

// ListEvents returns a page of activity log entries, newest first.
func (f *Facade) ListEvents(ctx context.Context, opt ListOptions) (Page[model.Event], Tier, error) {
	limit, offset := opt.bounds()

	if q, ok := f.durable(); ok {
		octx, cancel := f.opCtx(ctx)
		defer cancel()
		items, err := q.ListEvents(octx, limit, offset)
		if err != nil {
			f.degraded("list events", err)
		} else {
			total, err := q.CountEvents(octx)
			if err != nil {
				f.degraded("count events", err)
			} else {
				return Page[model.Event]{Items: items, Total: total}, TierDurable, nil
			}
		}
	}

	all := f.mem.Events.All()
	// Events insert in time order; reverse for newest-first.
	for i, j := 0, len(all)-1; i < j; i, j = i+1, j-1 {
		all[i], all[j] = all[j], all[i]
	}
	return Page[model.Event]{
		Items: slicePage(all, limit, offset),
		Total: int64(len(all)),
	}, TierMemory, nil
}
