package batch

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yosbany/nrd-portal/fsutil"
	"github.com/yosbany/nrd-portal/manifest"
	"github.com/yosbany/nrd-portal/renderer"
	"github.com/yosbany/nrd-portal/report"
)

// Job 描述一次 SVG → PNG 转换。路径相对于 Converter.Root。
type Job struct {
	Source string
	Target string
	Size   int
}

// JobsFrom 把清单中的 convert 条目转换为任务。
func JobsFrom(m *manifest.Manifest) []Job {
	var jobs []Job
	for _, e := range m.Icons() {
		jobs = append(jobs, Job{Source: string(e.Source), Target: e.TargetPath(), Size: e.Size})
	}
	return jobs
}

// MissingInputError 表示部分源 SVG 不存在，此时不会进行任何转换。
type MissingInputError struct {
	Paths []string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("找不到输入文件: %s", strings.Join(e.Paths, ", "))
}

// Report 汇总一次批量转换的结果。
type Report struct {
	Generated []string
	Skipped   []string
	Failed    map[string]error
}

// OK 报告是否没有失败的转换。
func (r *Report) OK() bool {
	return len(r.Failed) == 0
}

// Converter 按顺序把一组 SVG 转换为 PNG。
type Converter struct {
	Root       string
	Rasterizer renderer.Rasterizer
	Report     *report.Printer
}

// Convert 先检查全部源文件，再逐个转换。已存在的目标会被跳过；
// 单个转换失败会被记录并继续处理后续任务。
func (c *Converter) Convert(jobs []Job) (*Report, error) {
	if c.Rasterizer == nil {
		return nil, fmt.Errorf("未配置栅格化后端: %w", renderer.ErrUnavailable)
	}
	var missing []string
	for _, job := range jobs {
		if !fsutil.Exists(c.path(job.Source)) {
			missing = append(missing, job.Source)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingInputError{Paths: missing}
	}

	rep := &Report{Failed: map[string]error{}}
	for _, job := range jobs {
		target := c.path(job.Target)
		if fsutil.Exists(target) {
			c.info("%s 已存在，跳过", job.Target)
			rep.Skipped = append(rep.Skipped, job.Target)
			continue
		}
		if err := c.convertOne(job, target); err != nil {
			c.fail("转换 %s 失败: %v", job.Source, err)
			rep.Failed[job.Target] = err
			continue
		}
		c.success("已生成 %s (%dx%d)", job.Target, job.Size, job.Size)
		rep.Generated = append(rep.Generated, job.Target)
	}
	return rep, nil
}

func (c *Converter) convertOne(job Job, target string) error {
	if err := renderer.CheckSize(job.Size, job.Size); err != nil {
		return err
	}
	doc, err := renderer.LoadSVG(c.path(job.Source))
	if err != nil {
		return err
	}
	data, err := c.Rasterizer.Rasterize(doc, job.Size, job.Size)
	if err != nil {
		return err
	}
	return fsutil.WriteFile(target, data, 0o644)
}

func (c *Converter) path(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}

func (c *Converter) success(format string, args ...any) {
	if c.Report != nil {
		c.Report.Success(format, args...)
	}
}

func (c *Converter) info(format string, args ...any) {
	if c.Report != nil {
		c.Report.Info(format, args...)
	}
}

func (c *Converter) fail(format string, args ...any) {
	if c.Report != nil {
		c.Report.Error(format, args...)
	}
}
