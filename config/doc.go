// Package config 提供统一的配置加载，
// 支持默认值、YAML 文件与环境变量三级覆盖。
package config
