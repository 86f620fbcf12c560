// Package metrics wraps a process-wide go-metrics registry with a
// periodic JSON report on stderr.
package metrics

import (
	"io"
	"os"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

type metrics struct {
	log io.Writer
	reg gometrics.Registry
}

var m = &metrics{
	log: os.Stderr,
	reg: gometrics.DefaultRegistry,
}

// Start begins the periodic report. Call once from main.
func Start(tick time.Duration) {
	go gometrics.WriteJSON(m.reg, tick, m.log)
}

// Final writes one last report, for shutdown.
func Final() {
	gometrics.WriteJSONOnce(m.reg, m.log)
}

func Incr(name string, i int64) {
	gometrics.GetOrRegisterCounter(name, m.reg).Inc(i)
}

func Decr(name string, i int64) {
	gometrics.GetOrRegisterCounter(name, m.reg).Dec(i)
}
