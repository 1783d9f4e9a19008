// Package telemetry 封装分布式追踪的初始化与关闭；指标采集见 internal/metrics。
// This package is internal and should not be imported by external projects.
package telemetry
