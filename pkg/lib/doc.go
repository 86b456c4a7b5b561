// Package lib 包含基础设施工具库
//
// 本目录包含与架构组件无关的通用工具库：
//
//   - log: 日志封装
//
// # 与 pkg/ 其他目录的关系
//
// pkg/ 目录包含三类内容：
//
//   - interfaces/: 组件公共接口（架构核心）
//   - types/: 跨组件共享的数据类型
//   - lib/: 基础设施工具库（本目录）
//
// lib/ 下的包不依赖 interfaces/ 和 internal/，可被任意层引用。
package lib
