package core

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"GoChanDownloader/internal/model"
)

// RunStats は、1スレッド分の実行結果を集計します。
type RunStats struct {
	StartTime    time.Time
	Attempted    int
	Succeeded    int
	Failed       int
	BytesWritten int64
	FailureKinds map[string]int // エラー種類ごとの失敗数
}

// NewRunStats は、outcomes を集計した RunStats を返します。
func NewRunStats(start time.Time, outcomes []model.DownloadOutcome) RunStats {
	stats := RunStats{StartTime: start, FailureKinds: make(map[string]int)}
	for _, o := range outcomes {
		stats.Attempted++
		if o.Failed() {
			stats.Failed++
			stats.FailureKinds[ErrorKind(o.Err)]++
			continue
		}
		stats.Succeeded++
		stats.BytesWritten += o.Bytes
	}
	return stats
}

// FormatSummary は集計結果を1行の文字列にフォーマットします。
func (s RunStats) FormatSummary() string {
	elapsed := time.Since(s.StartTime).Round(time.Millisecond)
	sizeMB := float64(s.BytesWritten) / (1024 * 1024)

	summary := fmt.Sprintf("所要: %v | 対象: %d | 成功: %d | 失敗: %d | %.1fMB",
		elapsed, s.Attempted, s.Succeeded, s.Failed, sizeMB)
	if len(s.FailureKinds) == 0 {
		return summary
	}

	kinds := make([]string, 0, len(s.FailureKinds))
	for kind, n := range s.FailureKinds {
		kinds = append(kinds, fmt.Sprintf("%s=%d", kind, n))
	}
	sort.Strings(kinds)
	return summary + " (" + strings.Join(kinds, ", ") + ")"
}
