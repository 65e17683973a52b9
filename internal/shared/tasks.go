package shared

// Task types routed through asynq.
const (
	TypeSweepOrphanAssets = "speaker:sweep_orphan_assets"
)

// Queue names by priority.
const (
	QueueDefault     = "default"
	QueueMaintenance = "low"
)
