package history

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/dogudogru/survey-report-app-v2/internal/model"
)

// Update 一个序列的当期结果
type Update struct {
	Name     string
	Kind     model.SeriesKind
	Snapshot *model.Snapshot
}

// AppendAll 在内存中把全部更新追加到归档；任一失败时已追加的内容不会落盘
// 返回追加后的序列，键为表名
func AppendAll(a *Archive, period string, updates []Update) (map[string]*model.Series, error) {
	out := make(map[string]*model.Series, len(updates))
	for _, u := range updates {
		existing, err := a.Load(u.Name, u.Kind)
		if err != nil {
			return nil, err
		}
		next, err := AppendPeriod(existing, period, u.Snapshot)
		if err != nil {
			return nil, errors.Wrapf(err, "append %s", u.Name)
		}
		if err := a.Replace(next); err != nil {
			return nil, err
		}
		out[u.Name] = next
		log.Debug().Str("series", u.Name).Int("rows", next.Len()).Msg("period appended")
	}
	return out, nil
}
