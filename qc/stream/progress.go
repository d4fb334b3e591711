package stream

// PublishProgress fans out a ProgressUpdate for jobID to every subscriber
// (progress is not gated by Subscription flags, unlike measurements and
// statistics).
func (f *Fabric) PublishProgress(jobID string, completed, total int, estRemainingMS int64, hasEst bool) error {
	j, err := f.getJob(jobID)
	if err != nil {
		return err
	}
	percent := 0.0
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}
	msg := j.replay.push(Message{
		Tag: TagProgressUpdate,
		ProgressUpdate: &ProgressUpdate{
			JobID:           jobID,
			Completed:       completed,
			Total:           total,
			Percent:         percent,
			EstRemainingMS:  estRemainingMS,
			HasEstRemaining: hasEst,
		},
	})
	f.fanOut(j, msg, func(Subscription) bool { return true })
	return nil
}

// Heartbeat fans out a Heartbeat message to every subscriber of every
// active job, reporting the fabric's aggregate backpressure as its load
// figure.
func (f *Fabric) Heartbeat(timestampNS int64) {
	f.mu.RLock()
	jobs := make([]*job, 0, len(f.jobs))
	for _, j := range f.jobs {
		jobs = append(jobs, j)
	}
	f.mu.RUnlock()

	var load float64
	for _, j := range jobs {
		load += j.bp.pressure()
	}
	if len(jobs) > 0 {
		load /= float64(len(jobs))
	}

	msg := Message{Tag: TagHeartbeat, Heartbeat: &HeartbeatPayload{TimestampNS: timestampNS, ServerLoad: load}}
	for _, j := range jobs {
		stamped := j.replay.push(msg)
		f.fanOut(j, stamped, func(Subscription) bool { return true })
	}
}
