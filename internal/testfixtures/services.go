package testfixtures

import (
	"log/slog"
	"time"

	"github.com/example/hearing-board/internal/application"
	"github.com/example/hearing-board/internal/dateparser"
	"github.com/example/hearing-board/internal/hearing"
	"github.com/example/hearing-board/internal/persistence"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// ServiceFactoryOption configures a ServiceFactory instance.
type ServiceFactoryOption func(*ServiceFactory)

// NewServiceFactory constructs a ServiceFactory with defaults.
func NewServiceFactory(opts ...ServiceFactoryOption) *ServiceFactory {
	factory := &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("snapshot"),
	}
	for _, opt := range opts {
		opt(factory)
	}
	if factory.Clock == nil {
		factory.Clock = NewClock(time.Time{})
	}
	if factory.IDGenerator == nil {
		factory.IDGenerator = NewIDGenerator("snapshot")
	}
	return factory
}

// WithClock overrides the clock used by the factory.
func WithClock(clock *Clock) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.Clock = clock
	}
}

// WithIDGenerator overrides the identifier generator used by the factory.
func WithIDGenerator(generator *IDGenerator) ServiceFactoryOption {
	return func(factory *ServiceFactory) {
		factory.IDGenerator = generator
	}
}

// HearingServiceDeps captures dependencies for constructing a hearing service.
type HearingServiceDeps struct {
	Source      persistence.TableSource
	Columns     hearing.Columns
	Location    *time.Location
	IDGenerator func() string
	Now         func() time.Time
	Logger      *slog.Logger
}

// NewHearingService builds a hearing service using the supplied dependencies
// combined with the factory defaults. A nil Source serves SampleTable.
func (f *ServiceFactory) NewHearingService(deps HearingServiceDeps) *application.HearingService {
	source := deps.Source
	if source == nil {
		source = NewStaticSource(SampleTable())
	}
	idGen := deps.IDGenerator
	if idGen == nil {
		idGen = f.IDGenerator.NextFunc()
	}
	now := deps.Now
	if now == nil {
		now = f.Clock.NowFunc()
	}
	return application.NewHearingServiceWithLogger(
		source,
		deps.Columns,
		dateparser.New(deps.Location),
		idGen,
		now,
		deps.Logger,
	)
}
