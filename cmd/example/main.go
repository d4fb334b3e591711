// Command example wires the scheduler, execution engine, and streaming
// fabric end to end: it submits a Bell-state circuit as a quantum job,
// subscribes to its measurement stream, prints each statistics update as it
// arrives, and prints the job's elapsed time when it completes.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/config"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/obslog"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/builder"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/engine"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/scheduler"
	"github.com/WeaveITMeta/Quantum-Operating-System/qc/stream"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := obslog.NewLogger(obslog.LoggerOptions{Debug: cfg.GetBool("debug")})

	b := builder.New(builder.Q(2), builder.C(2))
	b.H(0).CNOT(0, 1).Measure(0, 0).Measure(1, 1)
	circ, err := b.BuildCircuit()
	if err != nil {
		log.Fatalf("build circuit: %v", err)
	}

	eng := engine.New(cfg, logger)
	fabric := stream.New(stream.Config{
		ReplayCapacity:         cfg.GetInt("stream.replay_capacity"),
		BackpressureThreshold:  cfg.GetInt("stream.backpressure_threshold"),
		MailboxCapacity:        cfg.GetInt("stream.mailbox_capacity"),
		StatsEmitIntervalShots: cfg.GetInt("stream.stats_emit_interval_shots"),
	})
	sched := scheduler.New(cfg, logger)
	sched.Start()
	defer sched.Shutdown()

	jobID := uuid.NewString()
	circuitID := uuid.NewString()
	shots := cfg.GetInt("engine.default_shots")
	fabric.StartJob(jobID, circuitID, shots, time.Now().UnixNano())

	sub, err := fabric.Subscribe(jobID, stream.Subscription{
		IncludeMeasurements: false,
		IncludeStats:        true,
		StatsIntervalShots:  100,
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	// Unsubscribe only removes the mailbox from the fabric's subscriber
	// map; it does not close sub.Ch. So this goroutine exits on the
	// JobCompleted message itself rather than on channel closure.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range sub.Ch {
			if msg.Tag == stream.TagStatisticsUpdate {
				s := msg.StatisticsUpdate
				fmt.Printf("stats: completed=%d/%d entropy=%.3f top=%v\n", s.Completed, s.Total, s.Entropy, s.Top10)
			}
			if msg.Tag == stream.TagJobCompleted {
				fmt.Printf("job %s completed in %dms\n", msg.JobCompleted.JobID, msg.JobCompleted.ElapsedMS)
				return
			}
		}
	}()

	job, err := sched.SubmitQuantum(scheduler.QuantumNormal, func(ctx context.Context) (any, error) {
		started := time.Now()
		_, err := eng.ExecuteWithContext(ctx, circ, shots, "auto", func(shotIndex int, bitstring string) {
			_ = fabric.PublishMeasurement(jobID, shotIndex, bitstring, time.Now().UnixNano())
		})
		if err != nil {
			return nil, err
		}
		return nil, fabric.CompleteJob(jobID, time.Since(started).Milliseconds())
	})
	if err != nil {
		log.Fatalf("submit: %v", err)
	}

	res, err := job.Result(context.Background())
	if err != nil {
		log.Fatalf("await result: %v", err)
	}
	if res.Err != nil {
		log.Fatalf("job failed: %v", res.Err)
	}

	fabric.Unsubscribe(jobID, sub.ID)
	<-done
}
