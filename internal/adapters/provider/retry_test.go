package provider_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/provider"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/provider/mocks"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	. "github.com/smartystreets/goconvey/convey"
	"go.uber.org/mock/gomock"
)

const alice = identifier.ID("2015ABCD12")

type sleepRecorder struct {
	delays []time.Duration
	err    error
}

func (s *sleepRecorder) sleep(_ context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return s.err
}

func TestRetrying(t *testing.T) {
	Convey("Given a retrying fetcher with the default budget", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		next := mocks.NewMockFetcher(ctrl)
		sleeper := &sleepRecorder{}
		r := provider.NewRetrying(next, provider.WithSleep(sleeper.sleep))
		ctx := context.Background()

		So(r.MaxAttempts(), ShouldEqual, 3)

		Convey("When the first attempt succeeds", func() {
			next.EXPECT().Fetch(gomock.Any(), alice).Return(provider.Person{Name: "Alice"}, nil).Times(1)

			p, err := r.Fetch(ctx, alice)

			Convey("Then no retry happens", func() {
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Alice")
				So(sleeper.delays, ShouldBeEmpty)
			})
		})

		Convey("When the lookup fails twice then succeeds", func() {
			gomock.InOrder(
				next.EXPECT().Fetch(gomock.Any(), alice).Return(provider.Person{}, provider.ErrTransport),
				next.EXPECT().Fetch(gomock.Any(), alice).Return(provider.Person{}, provider.ErrUnexpectedStatus),
				next.EXPECT().Fetch(gomock.Any(), alice).Return(provider.Person{Name: "Alice"}, nil),
			)

			p, err := r.Fetch(ctx, alice)

			Convey("Then the third payload is returned after linear backoff", func() {
				So(err, ShouldBeNil)
				So(p.Name, ShouldEqual, "Alice")
				So(sleeper.delays, ShouldResemble, []time.Duration{time.Second, 2 * time.Second})
			})
		})

		Convey("When every attempt fails", func() {
			next.EXPECT().Fetch(gomock.Any(), alice).Return(provider.Person{}, provider.ErrTransport).Times(3)

			_, err := r.Fetch(ctx, alice)

			Convey("Then retrieval is exhausted after three attempts", func() {
				So(errors.Is(err, provider.ErrRetrievalExhausted), ShouldBeTrue)
				So(errors.Is(err, provider.ErrTransport), ShouldBeTrue)

				var ex *provider.ExhaustedError
				So(errors.As(err, &ex), ShouldBeTrue)
				So(ex.ID, ShouldEqual, alice)
				So(ex.Attempts, ShouldEqual, 3)
				So(err.Error(), ShouldContainSubstring, "2015ABCD12")
				So(err.Error(), ShouldContainSubstring, "3 attempts")
			})
		})

		Convey("When the provider reports not found", func() {
			next.EXPECT().Fetch(gomock.Any(), alice).Return(provider.Person{}, provider.ErrNotFound).Times(3)

			_, err := r.Fetch(ctx, alice)

			Convey("Then it is retried like any other failure", func() {
				So(errors.Is(err, provider.ErrNotFound), ShouldBeTrue)
				So(len(sleeper.delays), ShouldEqual, 2)
			})
		})
	})

	Convey("Given a retrying fetcher with a custom budget", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		next := mocks.NewMockFetcher(ctrl)
		sleeper := &sleepRecorder{}
		r := provider.NewRetrying(next,
			provider.WithMaxRetries(0),
			provider.WithBaseDelay(10*time.Millisecond),
			provider.WithSleep(sleeper.sleep),
		)

		Convey("When zero retries are allowed", func() {
			next.EXPECT().Fetch(gomock.Any(), alice).Return(provider.Person{}, provider.ErrTransport).Times(1)

			_, err := r.Fetch(context.Background(), alice)

			Convey("Then a single attempt is made", func() {
				var ex *provider.ExhaustedError
				So(errors.As(err, &ex), ShouldBeTrue)
				So(ex.Attempts, ShouldEqual, 1)
				So(sleeper.delays, ShouldBeEmpty)
			})
		})
	})

	Convey("Given the wait between attempts is interrupted", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		next := mocks.NewMockFetcher(ctrl)
		sleeper := &sleepRecorder{err: context.Canceled}
		r := provider.NewRetrying(next, provider.WithSleep(sleeper.sleep))

		next.EXPECT().Fetch(gomock.Any(), alice).Return(provider.Person{}, provider.ErrTransport).Times(1)

		_, err := r.Fetch(context.Background(), alice)

		Convey("Then retries stop with the cancellation as cause", func() {
			So(errors.Is(err, provider.ErrRetrievalExhausted), ShouldBeTrue)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})

	Convey("Given the real sleeper and a cancelled context", t, func() {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		next := mocks.NewMockFetcher(ctrl)
		r := provider.NewRetrying(next, provider.WithBaseDelay(time.Hour))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		next.EXPECT().Fetch(gomock.Any(), alice).Return(provider.Person{}, provider.ErrTransport).Times(1)

		start := time.Now()
		_, err := r.Fetch(ctx, alice)

		Convey("Then it does not wait out the backoff", func() {
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(time.Since(start), ShouldBeLessThan, time.Second)
		})
	})
}
