// Package embedding 提供统一的文本嵌入接口与 OpenAI 兼容实现，
// 用于将角色描述与会话发言转换为向量表示以支持语义检索。
package embedding
