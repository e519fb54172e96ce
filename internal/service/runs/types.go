package runs

import "time"

// Status 运行状态
type Status string

const (
	StatusRunning Status = "running"
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
)

// File 运行产出的一个文件
type File struct {
	Kind string `json:"kind"`
	Lang string `json:"lang,omitempty"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// RunSummary 运行概要（用于列表）
type RunSummary struct {
	RunID       string    `json:"runId"`
	Period      string    `json:"period"`
	SurveyName  string    `json:"surveyName"`
	Status      Status    `json:"status"`
	Error       string    `json:"error,omitempty"`
	Respondents int       `json:"respondents"`
	TotalWeight float64   `json:"totalWeight"`
	Warnings    []string  `json:"warnings,omitempty"`
	Files       []File    `json:"files"`
	CreatedAt   time.Time `json:"createdAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// RunsIndex 运行索引文件：data/runs.json
type RunsIndex struct {
	SchemaVersion int          `json:"schemaVersion"`
	Items         []RunSummary `json:"items"`
}
