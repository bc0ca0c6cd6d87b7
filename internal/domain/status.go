package domain

// RefreshStatus is a snapshot of the background refresh job state. It is
// reset when a refresh starts and written once more when the run completes
// or fails; a second trigger while Running is a no-op.
type RefreshStatus struct {
	JobID    string `json:"job_id,omitempty"`
	Running  bool   `json:"running"`
	Finished bool   `json:"finished"`
	Error    string `json:"error,omitempty"`
}
