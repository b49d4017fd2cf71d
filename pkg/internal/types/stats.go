package types

// StatsSummary 归档总体统计（当前用户）.
type StatsSummary struct {
	TotalItems     int    `json:"total_items"`
	ActiveItems    int    `json:"active_items"`
	TrashedItems   int    `json:"trashed_items"`
	TotalSize      int64  `json:"total_size"`
	TotalSizeLabel string `json:"total_size_label"`
	TotalViews     int64  `json:"total_views"`
	TotalDownloads int64  `json:"total_downloads"`
}

// StatsTypeItem 按分类标签聚合.
type StatsTypeItem struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
	Size  int64  `json:"size"`
}

// StatsTrendPoint 上传趋势点（按日）.
type StatsTrendPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
	Size  int64  `json:"size"`
}

// StatsResponse 统计响应.
type StatsResponse struct {
	Summary StatsSummary      `json:"summary"`
	ByType  []StatsTypeItem   `json:"by_type"`
	Trend   []StatsTrendPoint `json:"trend"`
}
