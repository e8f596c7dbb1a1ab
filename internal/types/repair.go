package types

// RepairAction is the per-file decision made by the repair pass.
type RepairAction string

const (
	RepairActionRemux    RepairAction = "remux"
	RepairActionReencode RepairAction = "reencode"
)

// RepairOptions controls one batch repair run over a label-bucketed root.
type RepairOptions struct {
	// Root is the Training directory containing one subfolder per label.
	Root string
	// CFR forces a constant frame rate on re-encoded files when > 0.
	CFR int
	// DryRun reports the chosen action per file without executing it.
	DryRun bool
	// BackupSuffix is appended after the original extension before the
	// repaired file is moved into place. Empty deletes the original.
	BackupSuffix string
	// Exts limits the scan to these extensions (with leading dot).
	Exts []string
}

// RepairFileResult is the outcome for a single scanned file.
type RepairFileResult struct {
	Path   string       `json:"path"`
	Label  string       `json:"label"`
	Action RepairAction `json:"action"`
	Err    string       `json:"err,omitempty"`
}

// RepairReport aggregates a whole run. A single file's failure never aborts
// the batch, so Processed == Repaired + Failed always holds.
type RepairReport struct {
	Processed int                `json:"processed"`
	Repaired  int                `json:"repaired"`
	Failed    int                `json:"failed"`
	DryRun    bool               `json:"dry_run"`
	Failures  []RepairFileResult `json:"failures,omitempty"`
}

// LabelCount is one label's clip count against the configured target.
type LabelCount struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Deficit int    `json:"deficit"`
	Met     bool   `json:"met"`
}

// DatasetStats summarizes the dataset tree for the focus report.
type DatasetStats struct {
	Root       string       `json:"root"`
	Classes    int          `json:"classes"`
	TotalClips int          `json:"total_clips"`
	Mean       float64      `json:"mean"`
	Min        int          `json:"min"`
	Max        int          `json:"max"`
	Labels     []LabelCount `json:"labels"`
}
