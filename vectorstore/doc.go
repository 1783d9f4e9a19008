// Package vectorstore 提供相似度存储接口与实现。
//
// 存储按嵌入向量索引文本文档，支持带元数据过滤的最近邻搜索。
// 内置两个实现：内存存储（测试与小规模应用）与 Qdrant REST 存储。
package vectorstore
