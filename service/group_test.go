package service

import (
	"context"
	"testing"
	"time"

	"golang.org/x/xerrors"
	gc "gopkg.in/check.v1"
)

var _ = gc.Suite(new(GroupTestSuite))

func Test(t *testing.T) { gc.TestingT(t) }

type GroupTestSuite struct{}

func (s *GroupTestSuite) TestRunUntilCancelled(c *gc.C) {
	ctx, cancelFn := context.WithCancel(context.TODO())
	svcA := &stubService{name: "a"}
	svcB := &stubService{name: "b"}

	doneCh := make(chan error, 1)
	go func() { doneCh <- Group{svcA, svcB}.Run(ctx) }()

	cancelFn()
	select {
	case err := <-doneCh:
		c.Assert(err, gc.IsNil)
	case <-time.After(10 * time.Second):
		c.Fatal("timed out waiting for group to exit")
	}
	c.Assert(svcA.stopped, gc.Equals, true)
	c.Assert(svcB.stopped, gc.Equals, true)
}

func (s *GroupTestSuite) TestFailureStopsGroup(c *gc.C) {
	expErr := xerrors.New("boom")
	svcA := &stubService{name: "a"}
	svcB := &stubService{name: "b", err: expErr}

	doneCh := make(chan error, 1)
	go func() { doneCh <- Group{svcA, svcB}.Run(context.TODO()) }()

	select {
	case err := <-doneCh:
		c.Assert(err, gc.ErrorMatches, "(?s).*b: boom.*")
		c.Assert(xerrors.Is(err, expErr), gc.Equals, true)
	case <-time.After(10 * time.Second):
		c.Fatal("timed out waiting for group to exit")
	}
	c.Assert(svcA.stopped, gc.Equals, true)
}

type stubService struct {
	name    string
	err     error
	stopped bool
}

func (s *stubService) Name() string { return s.name }

func (s *stubService) Run(ctx context.Context) error {
	if s.err != nil {
		return s.err
	}
	<-ctx.Done()
	s.stopped = true
	return nil
}
