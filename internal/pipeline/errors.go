package pipeline

import "fmt"

// Stage 运行阶段
type Stage string

const (
	StageMapping     Stage = "mapping"
	StageAggregation Stage = "aggregation"
	StageAppend      Stage = "historical append"
	StageRender      Stage = "render"
)

// StageError 某阶段的致命错误，Error() 即面向用户的一行说明
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

func stageErr(stage Stage, err error) error {
	if err == nil {
		return nil
	}
	return &StageError{Stage: stage, Err: err}
}
