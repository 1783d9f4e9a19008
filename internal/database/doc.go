// Package database 提供 SQLite 连接与连接池管理，
// 用于会话与发言记录的持久化。
// This package is internal and should not be imported by external projects.
package database
