package service

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToSubmission(submissionID string, msgType string, payload interface{})
}

// WebSocket message types pushed to submission watchers
const (
	MsgReportPending = "report_pending"
	MsgReportReady   = "report_ready"
	MsgReportFailed  = "report_failed"
)
