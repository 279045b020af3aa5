package activity

import (
	"fmt"
	"strings"
	"time"
)

const (
	VerbFramePushed   = "frame.pushed"
	VerbFrameTaken    = "frame.taken"
	VerbFrameReleased = "frame.released"
	VerbFrameUnwound  = "frame.unwound"

	// ObjectTypeFrame is the object type of every frame event.
	ObjectTypeFrame = "scopestack.frame"
)

// FrameEventInput describes one frame transition on a store.
type FrameEventInput struct {
	StackID    string
	Depth      int
	Len        int
	State      string
	Channel    string
	Metadata   map[string]any
	OccurredAt time.Time
}

// BuildFramePushedEvent constructs an event for a push.
func BuildFramePushedEvent(input FrameEventInput) Event {
	return buildFrameEvent(VerbFramePushed, input)
}

// BuildFrameTakenEvent constructs an event for a value extracted with Pop.
func BuildFrameTakenEvent(input FrameEventInput) Event {
	return buildFrameEvent(VerbFrameTaken, input)
}

// BuildFrameReleasedEvent constructs an event for a slot discarded on release.
func BuildFrameReleasedEvent(input FrameEventInput) Event {
	return buildFrameEvent(VerbFrameReleased, input)
}

// BuildFrameUnwoundEvent constructs an event for a slot dropped while a scope
// guard unwound a panic.
func BuildFrameUnwoundEvent(input FrameEventInput) Event {
	return buildFrameEvent(VerbFrameUnwound, input)
}

func buildFrameEvent(verb string, input FrameEventInput) Event {
	metadata := cloneMap(input.Metadata)
	metadata = ensureMetadata(metadata)
	metadata["depth"] = input.Depth
	metadata["len"] = input.Len
	if state := strings.TrimSpace(input.State); state != "" {
		metadata["state"] = state
	}

	stackID := strings.TrimSpace(input.StackID)
	if stackID == "" {
		stackID = "anonymous"
	}

	return Event{
		Verb:       verb,
		ObjectType: ObjectTypeFrame,
		ObjectID:   fmt.Sprintf("%s/%d", stackID, input.Depth),
		Channel:    strings.TrimSpace(input.Channel),
		Metadata:   metadata,
		OccurredAt: input.OccurredAt,
	}
}

func ensureMetadata(meta map[string]any) map[string]any {
	if meta == nil {
		return map[string]any{}
	}
	return meta
}
