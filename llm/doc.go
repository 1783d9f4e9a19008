// Package llm 定义统一的聊天补全 Provider 接口与错误模型。
//
// 具体的服务商适配实现位于 providers/ 子包，本包只约定请求/响应
// 结构、错误码语义与限流包装。
package llm
