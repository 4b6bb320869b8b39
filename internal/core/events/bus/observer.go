package bus

import (
	"github.com/zeusync/hexcurl/internal/core/observability/log"
)

// LogObserver writes every delivery to a logger at debug level, and failed
// deliveries at warn level.
type LogObserver struct {
	logger log.Log
}

func NewLogObserver(logger log.Log) *LogObserver {
	return &LogObserver{logger: logger.Named("bus")}
}

func (o *LogObserver) OnPublish(string, Event) {}

func (o *LogObserver) OnDelivered(eventType string, handlers int, err error, durationMicros int64) {
	if err != nil {
		o.logger.Warn("Event handlers failed",
			log.String("event", eventType),
			log.Int("handlers", handlers),
			log.Error(err),
		)
		return
	}
	o.logger.Debug("Event delivered",
		log.String("event", eventType),
		log.Int("handlers", handlers),
		log.Int64("duration_us", durationMicros),
	)
}
