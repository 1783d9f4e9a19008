// Package persona 管理角色身份：角色库种子、身份存储、
// 读穿缓存与会话阵容选择。
//
// 身份存储以向量存储为底座，角色描述与习得摘要按字段分条存放，
// 解析时按存储顺序拼接。查找失败返回空描述符，从不中断会话。
package persona
