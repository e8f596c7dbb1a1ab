package dto

// ClipReq asks for one interactive export at the current player position.
type ClipReq struct {
	VideoFilename string   `json:"video_filename" binding:"required"`
	CurrentTime   float64  `json:"current_time"`
	Label         string   `json:"label" binding:"required"`
	InMark        *float64 `json:"in_mark,omitempty"`
	OutMark       *float64 `json:"out_mark,omitempty"`
}

type ClipResData struct {
	Path  string  `json:"path"`
	Label string  `json:"label"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// SettingsUpdateReq carries a partial settings update; nil fields keep the
// current value.
type SettingsUpdateReq struct {
	DatasetRoot    *string  `json:"dataset_root,omitempty"`
	ClipDuration   *float64 `json:"clip_duration,omitempty"`
	ClipMode       *string  `json:"clip_mode,omitempty"`
	TargetPerLabel *int     `json:"target_per_label,omitempty"`
	MarginPerLabel *int     `json:"margin_per_label,omitempty"`
	DropAudio      *bool    `json:"drop_audio,omitempty"`
	AlwaysReencode *bool    `json:"always_reencode,omitempty"`
	CFR            *int     `json:"cfr,omitempty"`
}

type LabelsResData struct {
	Labels []string `json:"labels"`
}

type VideosResData struct {
	Videos []string `json:"videos"`
}

type UploadResData struct {
	Filename string `json:"filename"`
}

type UndoResData struct {
	Undone bool   `json:"undone"`
	Path   string `json:"path,omitempty"`
}

// RepairStartReq starts a background repair run. Zero values fall back to
// the configured repair defaults and the settings dataset root.
type RepairStartReq struct {
	Root      string  `json:"root,omitempty"`
	CFR       *int    `json:"cfr,omitempty"`
	DryRun    bool    `json:"dry_run,omitempty"`
	BackupExt *string `json:"backup_ext,omitempty"`
}
