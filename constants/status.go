package constants

// JobStatus is the canonical status for rows in extract_job.
type JobStatus string

// Stable values (store these exact strings in DB).
const (
	JobStatusQueued      JobStatus = "QUEUED"       // queued for processing
	JobStatusRunning     JobStatus = "RUNNING"      // in progress
	JobStatusTextOK      JobStatus = "TEXT_OK"      // text extracted and stored
	JobStatusNeedsVision JobStatus = "NEEDS_VISION" // waiting on the vision/OCR pipeline
	JobStatusVisionOK    JobStatus = "VISION_OK"    // vision result received and stored
	JobStatusFailed      JobStatus = "FAILED"       // terminal failure
)
