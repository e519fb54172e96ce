// Package runs 记录每次运行的输入副本与产出文件
package runs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/dogudogru/survey-report-app-v2/internal/util"
)

const schemaVersion = 1

// ErrNotFound 运行不存在
var ErrNotFound = errors.New("run not found")

// Registry 运行登记：索引维护、运行目录分配
type Registry struct {
	dataDir string

	mu    sync.Mutex
	index RunsIndex
}

// NewRegistry 打开 dataDir 下的运行索引，不存在时创建
func NewRegistry(dataDir string) (*Registry, error) {
	if dataDir == "" {
		return nil, errors.New("dataDir is required")
	}
	r := &Registry{
		dataDir: dataDir,
		index: RunsIndex{
			SchemaVersion: schemaVersion,
			Items:         []RunSummary{},
		},
	}
	if err := r.loadIndex(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Registry) indexPath() string {
	return filepath.Join(r.dataDir, "runs.json")
}

// Dir 运行目录：data/runs/{runId}
func (r *Registry) Dir(runID string) string {
	return filepath.Join(r.dataDir, "runs", runID)
}

// UploadDir 运行的上传副本目录
func (r *Registry) UploadDir(runID string) string {
	return filepath.Join(r.Dir(runID), "uploads")
}

// OutputDir 运行的产出目录
func (r *Registry) OutputDir(runID string) string {
	return filepath.Join(r.Dir(runID), "outputs")
}

func (r *Registry) loadIndex() error {
	path := r.indexPath()
	if !util.FileExists(path) {
		return util.WriteJSONAtomic(path, r.index)
	}
	var idx RunsIndex
	if err := util.ReadJSON(path, &idx); err != nil {
		return errors.Wrapf(err, "read %s", path)
	}
	if idx.SchemaVersion == 0 {
		idx.SchemaVersion = schemaVersion
	}
	if idx.Items == nil {
		idx.Items = []RunSummary{}
	}
	r.index = idx
	return nil
}

func (r *Registry) saveIndexLocked() error {
	return util.WriteJSONAtomic(r.indexPath(), r.index)
}

// Begin 分配新的运行并创建目录
func (r *Registry) Begin(surveyName string) (RunSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	summary := RunSummary{
		RunID:      fmt.Sprintf("r_%s", uuid.New().String()[:8]),
		SurveyName: surveyName,
		Status:     StatusRunning,
		Files:      []File{},
		CreatedAt:  time.Now().UTC(),
	}
	for _, dir := range []string{r.UploadDir(summary.RunID), r.OutputDir(summary.RunID)} {
		if err := util.EnsureDir(dir); err != nil {
			return RunSummary{}, err
		}
	}
	r.index.Items = append(r.index.Items, summary)
	if err := r.saveIndexLocked(); err != nil {
		return RunSummary{}, err
	}
	return summary, nil
}

// Finish 写回运行结果
func (r *Registry) Finish(summary RunSummary) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.index.Items {
		if r.index.Items[i].RunID == summary.RunID {
			if summary.FinishedAt.IsZero() {
				summary.FinishedAt = time.Now().UTC()
			}
			r.index.Items[i] = summary
			return r.saveIndexLocked()
		}
	}
	return ErrNotFound
}

// List 全部运行，最新的在前
func (r *Registry) List() []RunSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	items := append([]RunSummary(nil), r.index.Items...)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items
}

// Get 按 id 查找
func (r *Registry) Get(runID string) (RunSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.index.Items {
		if item.RunID == runID {
			return item, nil
		}
	}
	return RunSummary{}, ErrNotFound
}

// Delete 移除运行及其目录
func (r *Registry) Delete(runID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]RunSummary, 0, len(r.index.Items))
	found := false
	for _, item := range r.index.Items {
		if item.RunID == runID {
			found = true
			continue
		}
		next = append(next, item)
	}
	if !found {
		return ErrNotFound
	}
	r.index.Items = next
	_ = os.RemoveAll(r.Dir(runID))
	return r.saveIndexLocked()
}
