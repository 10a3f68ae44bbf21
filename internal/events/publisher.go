package events

import "context"

type Publisher interface {
	Publish(ctx context.Context, e PostEvent) error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, PostEvent) error {
	return nil
}

var _ Publisher = (*NoopPublisher)(nil)
