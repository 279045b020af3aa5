// Package usersink forwards scopestack frame events to a go-users
// ActivitySink.
package usersink

import (
	"context"
	"maps"
	"strings"

	"github.com/goliatone/go-scopestack/pkg/activity"
	usertypes "github.com/goliatone/go-users/pkg/types"
	"github.com/google/uuid"
)

// Hook is an activity.ActivityHook that logs frame events to Sink. Events of
// other object types are ignored.
type Hook struct {
	Sink usertypes.ActivitySink
}

// Notify converts event to an ActivityRecord and logs it.
func (h Hook) Notify(ctx context.Context, event activity.Event) error {
	if h.Sink == nil {
		return nil
	}
	record, ok := frameRecord(activity.NormalizeEvent(event))
	if !ok {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return h.Sink.Log(ctx, record)
}

// frameRecord maps a normalized frame event. Actor and tenant ids that are not
// UUIDs become uuid.Nil. Data holds the frame metadata plus the stack id.
func frameRecord(event activity.Event) (usertypes.ActivityRecord, bool) {
	if !event.Complete() || event.ObjectType != activity.ObjectTypeFrame {
		return usertypes.ActivityRecord{}, false
	}
	data := make(map[string]any, len(event.Metadata)+1)
	maps.Copy(data, event.Metadata)
	if stack, _, ok := strings.Cut(event.ObjectID, "/"); ok {
		data["stack"] = stack
	}
	return usertypes.ActivityRecord{
		ActorID:    parseUUID(event.ActorID),
		TenantID:   parseUUID(event.TenantID),
		Verb:       event.Verb,
		ObjectType: event.ObjectType,
		ObjectID:   event.ObjectID,
		Channel:    event.Channel,
		Data:       data,
		OccurredAt: event.OccurredAt,
	}, true
}

func parseUUID(value string) uuid.UUID {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil
	}
	return id
}
