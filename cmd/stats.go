package cmd

import (
	"sync/atomic"
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/golang/glog"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/hashdos/diffcrypt/collections/repeated_task"
)

const (
	statsdPushInterval = time.Second
	statsdStopTimeout  = 5 * time.Second
)

// SearchStats mirrors search progress into DogStatsD gauges. Progress calls only
// record the latest values; a repeated task pushes them on an interval.
type SearchStats struct {
	client statsd.ClientInterface
	tags   []string
	task   *repeated_task.RepeatedTask

	scanned atomic.Uint64
	found   atomic.Int64
}

func NewSearchStats(addr string) (*SearchStats, error) {
	client, err := statsd.New(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "NewSearchStats: ")
	}
	return newSearchStatsWithClient(client), nil
}

func newSearchStatsWithClient(client statsd.ClientInterface) *SearchStats {
	stats := &SearchStats{
		client: client,
		tags:   []string{"run:" + uuid.NewString()},
	}
	stats.task = repeated_task.NewRepeatedTask(stats.push, statsdPushInterval, statsdStopTimeout)
	return stats
}

func (stats *SearchStats) Progress(scanned uint64, total uint64, found int) {
	stats.scanned.Store(scanned)
	stats.found.Store(int64(found))
}

func (stats *SearchStats) push() {
	if err := stats.client.Gauge("DIFFCRYPT.CANDIDATES", float64(stats.scanned.Load()), stats.tags, 1); err != nil {
		glog.V(1).Infof("SearchStats.push: %v", err)
	}
	if err := stats.client.Gauge("DIFFCRYPT.FOUND", float64(stats.found.Load()), stats.tags, 1); err != nil {
		glog.V(1).Infof("SearchStats.push: %v", err)
	}
}

func (stats *SearchStats) Start() {
	stats.task.Start()
}

// Stop pushes the final values and closes the client.
func (stats *SearchStats) Stop() {
	if stats.task.Stop() {
		glog.Warningf("SearchStats.Stop: Final push did not finish within %v", statsdStopTimeout)
	}
	if err := stats.client.Close(); err != nil {
		glog.V(1).Infof("SearchStats.Stop: %v", err)
	}
}
