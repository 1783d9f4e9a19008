// Package engine 实现头脑风暴会话的执行核心：
// 轮转调度器（Scheduler）、专长缺口监控（GapMonitor）、
// 终稿合成器（Synthesizer）与会后习得摘要（LearnSummaries）。
//
// 所有共享句柄都挂在显式的 Engine 上下文对象上，
// 没有进程级单例，同一进程可并行运行多个会话。
// 单个会话内部严格单线程：轮次、缺口检查与日志写入
// 在同一逻辑控制流上顺序执行。
package engine
