// Package session 管理会话生命周期的持久化三件套：
// 会话内的相似度日志（Log）、跨会话归档（Archive）
// 与关系型轮次仓储（Repository）。
//
// Log 按相似度检索，不保证时间顺序；严格有序的文字记录
// 由 Repository 持久化，内存态则由调度器自己持有。
package session
