package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/dogudogru/survey-report-app-v2/internal/config"
	"github.com/dogudogru/survey-report-app-v2/internal/pipeline"
	"github.com/dogudogru/survey-report-app-v2/internal/service/runs"
	"github.com/dogudogru/survey-report-app-v2/internal/util"
)

// 上传副本文件名
const (
	surveyFile   = "survey.xlsx"
	archiveFile  = "historical_data.xlsx"
	templateFile = "table_template.xlsx"
)

// Handlers API处理器
type Handlers struct {
	cfg       *config.AppConfig
	runs      *runs.Registry
	downloads *downloadStore
	ttl       time.Duration
	now       func() time.Time
}

// NewHandlers 创建处理器
func NewHandlers(cfg *config.AppConfig, registry *runs.Registry) *Handlers {
	ttl := time.Duration(cfg.Server.DownloadTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Handlers{
		cfg:       cfg,
		runs:      registry,
		downloads: newDownloadStore(),
		ttl:       ttl,
		now:       time.Now,
	}
}

// RegisterRoutes 注册路由
func (h *Handlers) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", h.Health)
	router.GET("/runs", h.ListRuns)
	router.GET("/runs/:id", h.GetRun)
	router.POST("/runs", h.CreateRun)
	router.GET("/downloads/:token", h.Download)
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// Download 下载链接
type Download struct {
	Kind string `json:"kind"`
	Lang string `json:"lang,omitempty"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// RunResponse 运行接口返回
type RunResponse struct {
	Run       runs.RunSummary `json:"run"`
	Downloads []Download      `json:"downloads"`
}

// Health 健康检查
func (h *Handlers) Health(c *gin.Context) {
	success(c, gin.H{"status": "ok"})
}

// ListRuns 运行列表
func (h *Handlers) ListRuns(c *gin.Context) {
	success(c, h.runs.List())
}

// GetRun 运行详情
func (h *Handlers) GetRun(c *gin.Context) {
	run, err := h.runs.Get(c.Param("id"))
	if err != nil {
		errorResponse(c, 4004, err.Error())
		return
	}
	success(c, run)
}

// CreateRun 上传问卷与归档并执行一次运行
// POST /api/runs  multipart: survey（必需）, archive, table_template, month=YYYY-MM
func (h *Handlers) CreateRun(c *gin.Context) {
	surveyUpload, err := c.FormFile("survey")
	if err != nil {
		errorResponse(c, 1001, "未找到问卷文件 survey")
		return
	}
	now := h.now()
	if month := strings.TrimSpace(c.PostForm("month")); month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			errorResponse(c, 1002, fmt.Sprintf("月份格式错误: %s", month))
			return
		}
		now = t
	}

	in, err := pipeline.FromConfig(h.cfg)
	if err != nil {
		errorResponse(c, 5001, err.Error())
		return
	}

	run, err := h.runs.Begin(surveyUpload.Filename)
	if err != nil {
		errorResponse(c, 5001, err.Error())
		return
	}
	uploads := h.runs.UploadDir(run.RunID)
	outputs := h.runs.OutputDir(run.RunID)

	in.SurveyPath = filepath.Join(uploads, surveyFile)
	if err := c.SaveUploadedFile(surveyUpload, in.SurveyPath); err != nil {
		h.fail(c, run, "保存问卷失败: "+err.Error())
		return
	}

	// 归档在产出目录的副本上更新，上传原件保持不变
	in.ArchivePath = filepath.Join(outputs, archiveFile)
	if ok, err := h.saveOptional(c, "archive", filepath.Join(uploads, archiveFile)); err != nil {
		h.fail(c, run, "保存归档失败: "+err.Error())
		return
	} else if ok {
		if err := util.CopyFile(filepath.Join(uploads, archiveFile), in.ArchivePath); err != nil {
			h.fail(c, run, "复制归档失败: "+err.Error())
			return
		}
	}

	if ok, err := h.saveOptional(c, "table_template", filepath.Join(uploads, templateFile)); err != nil {
		h.fail(c, run, "保存表格模板失败: "+err.Error())
		return
	} else if ok {
		in.TableTemplate = filepath.Join(uploads, templateFile)
	}

	in.OutputDir = outputs
	in.Now = now
	res, runErr := pipeline.Run(c.Request.Context(), in)

	run.Period = res.Period
	run.Respondents = res.Respondents
	run.TotalWeight = res.TotalWeight
	run.Warnings = res.Warnings
	run.Files = lo.Map(res.Outputs, func(o pipeline.Output, _ int) runs.File {
		return runs.File{Kind: string(o.Kind), Lang: string(o.Lang), Name: DownloadName(o.Path, res.Period), Path: o.Path}
	})
	run.Status = runs.StatusOK
	if runErr != nil {
		run.Status = runs.StatusFailed
		run.Error = runErr.Error()
	}
	if err := h.runs.Finish(run); err != nil {
		log.Error().Err(err).Str("run", run.RunID).Msg("record run failed")
	}

	resp := RunResponse{Run: run, Downloads: h.issueDownloads(c, run.Files)}
	if runErr != nil {
		log.Error().Err(runErr).Str("run", run.RunID).Msg("run failed")
		c.JSON(http.StatusOK, Response{Code: 5002, Message: runErr.Error(), Data: resp})
		return
	}
	success(c, resp)
}

func (h *Handlers) saveOptional(c *gin.Context, field, dst string) (bool, error) {
	file, err := c.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, c.SaveUploadedFile(file, dst)
}

func (h *Handlers) fail(c *gin.Context, run runs.RunSummary, message string) {
	run.Status = runs.StatusFailed
	run.Error = message
	if err := h.runs.Finish(run); err != nil {
		log.Error().Err(err).Str("run", run.RunID).Msg("record run failed")
	}
	errorResponse(c, 5003, message)
}

func (h *Handlers) issueDownloads(c *gin.Context, files []runs.File) []Download {
	prefix := strings.TrimSuffix(c.FullPath(), "/runs")
	out := make([]Download, 0, len(files))
	for _, f := range files {
		token := h.downloads.put(f.Path, f.Name, h.ttl)
		out = append(out, Download{
			Kind: f.Kind,
			Lang: f.Lang,
			Name: f.Name,
			URL:  fmt.Sprintf("%s/downloads/%s", prefix, token),
		})
	}
	return out
}

// Download 下载运行产出，令牌在有效期内可重复使用
// GET /api/downloads/:token
func (h *Handlers) Download(c *gin.Context) {
	token := c.Param("token")
	item, ok := h.downloads.get(token)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "下载链接已失效"})
		return
	}
	if _, err := os.Stat(item.filePath); err != nil {
		h.downloads.delete(token)
		c.JSON(http.StatusNotFound, gin.H{"error": "文件不存在"})
		return
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.FileAttachment(item.filePath, item.name)
}
