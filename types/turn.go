package types

import "time"

// TurnRecord 表示一次轮次产出：某个 Persona 在调度中的一次发言。
// 创建后不可变；由会话日志与调度器持有。
type TurnRecord struct {
	// SessionID 所属会话标识
	SessionID string `json:"session_id"`

	// Persona 发言者名称
	Persona string `json:"persona"`

	// Round 轮次编号（0-based，一轮 = 当前花名册完整走一遍）
	Round int `json:"round"`

	// Seq 全局序号（0-based，跨 Persona 的严格时间顺序）
	Seq int `json:"seq"`

	// Content 发言文本
	Content string `json:"content"`

	// CreatedAt 产出时间
	CreatedAt time.Time `json:"created_at"`
}

// ArchiveRecord 跨会话归档记录：{会话 ID, Persona, 文本}。
// 会话视角只写，通过相似度搜索跨会话读取。
type ArchiveRecord struct {
	SessionID string `json:"session_id"`
	Persona   string `json:"persona"`
	Content   string `json:"content"`
}
