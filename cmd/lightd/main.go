// Command lightd keeps a heap file's buffer pool warm across a long-running
// process and flushes it on a schedule, rather than relying on a caller to
// remember to call Flush. It is deliberately minimal: it does not open any
// network listener, since the engine is an embedded library, not a server —
// the schedule is the only long-running behavior worth a daemon for.
package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"

	"github.com/lightsql/lightsql/buffer"
	"github.com/lightsql/lightsql/config"
	"github.com/lightsql/lightsql/disk"
)

var flagConfig = flag.String("config", "lightd.yaml", "path to the YAML config file")

func main() {
	flag.Parse()

	cfg, err := config.Load(*flagConfig)
	if err != nil {
		log.Fatalf("lightd: %v", err)
	}

	dm, err := disk.Open(cfg.HeapFile)
	if err != nil {
		log.Fatalf("lightd: open heap file %s: %v", cfg.HeapFile, err)
	}
	defer dm.Close()

	bufmgr := buffer.NewManager(dm, buffer.NewClockSweepPool(cfg.BufferPoolSize))

	sched := cron.New()
	schedule := cfg.FlushInterval
	if schedule == "" {
		schedule = "@every 30s"
	}
	if _, err := sched.AddFunc(schedule, func() {
		if err := bufmgr.Flush(); err != nil {
			log.Printf("lightd: scheduled flush failed: %v", err)
			return
		}
		log.Printf("lightd: flushed %s", cfg.HeapFile)
	}); err != nil {
		log.Fatalf("lightd: bad flush_interval %q: %v", schedule, err)
	}
	sched.Start()
	defer sched.Stop()

	log.Printf("lightd: serving %s, flushing on %q", cfg.HeapFile, schedule)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Print("lightd: shutting down, flushing once more before exit")
	if err := bufmgr.Flush(); err != nil {
		log.Fatalf("lightd: final flush failed: %v", err)
	}
}
