package domain

// PrepareResult represents the outcome of provisioning one worker environment
type PrepareResult struct {
	WorkerID int
	Database string
	Success  bool
	Output   string
	Error    error
}
