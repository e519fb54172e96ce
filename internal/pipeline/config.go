package pipeline

import (
	"github.com/dogudogru/survey-report-app-v2/internal/config"
	"github.com/dogudogru/survey-report-app-v2/internal/i18n"
)

// FromConfig 用应用配置填充运行参数，路径类字段由调用方补齐
func FromConfig(cfg *config.AppConfig) (Inputs, error) {
	langs := make([]i18n.Lang, 0, len(cfg.Report.Languages))
	for _, s := range cfg.Report.Languages {
		lang, err := i18n.ParseLang(s)
		if err != nil {
			return Inputs{}, err
		}
		langs = append(langs, lang)
	}
	return Inputs{
		TableTemplate: cfg.Report.TableTemplate,
		WeightColumn:  cfg.Survey.WeightColumn,
		Languages:     langs,
		Window:        cfg.Report.ChartWindow,
		TablePrefix:   cfg.Report.TablePrefix,
		ChartPrefix:   cfg.Report.ChartPrefix,
	}, nil
}
