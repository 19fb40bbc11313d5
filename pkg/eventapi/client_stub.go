package eventapi

import (
	"context"
	"sync"

	"github.com/evebuzz/evebuzz/pkg/event"
	"github.com/evebuzz/evebuzz/pkg/session"
)

type ClientStub struct {
	mu       sync.Mutex
	records  []event.Record
	err      error
	sessions []session.Session
	// FetchFunc, when set, replaces the canned response.
	FetchFunc func(ctx context.Context, s session.Session) ([]event.Record, error)
}

func NewClientStub() *ClientStub {
	return &ClientStub{}
}

func (c *ClientStub) FetchEvents(ctx context.Context, s session.Session) ([]event.Record, error) {
	c.mu.Lock()
	c.sessions = append(c.sessions, s)
	fetch := c.FetchFunc
	records, err := c.records, c.err
	c.mu.Unlock()

	if fetch != nil {
		return fetch(ctx, s)
	}
	if err != nil {
		return nil, err
	}
	result := make([]event.Record, len(records))
	copy(result, records)
	return result, nil
}

func (c *ClientStub) SetRecords(records []event.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = records
	c.err = nil
}

func (c *ClientStub) SetError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.err = err
}

func (c *ClientStub) Sessions() []session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	result := make([]session.Session, len(c.sessions))
	copy(result, c.sessions)
	return result
}

func (c *ClientStub) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = nil
	c.err = nil
	c.sessions = nil
	c.FetchFunc = nil
}
