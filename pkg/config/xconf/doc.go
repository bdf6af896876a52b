// Package xconf 提供配置加载和热重载，基于 koanf 实现。
//
// # 设计理念
//
// xconf 定位为最小化配置加载器：加载文件或字节数据、反序列化、热重载。
// 不做配置治理（必选字段校验、默认值注入、环境变量覆盖），
// 这些由调用方按需实现。
//
//   - 工厂函数：New, NewFromBytes
//   - Client() 暴露底层 koanf 实例，基础读取操作直接用它
//   - 增值功能：并发安全的 Reload、类型安全的 Unmarshal
//
// # 支持的格式
//
//   - YAML：.yaml, .yml
//   - JSON：.json
//
// # 并发安全
//
// 配置快照由 atomic.Pointer 持有：
//   - Client()/Unmarshal() 原子读取当前快照，无锁
//   - Reload() 由互斥锁序列化，解析成功后原子替换快照
//
// Client() 返回的指针在 Reload() 后仍然有效，但指向旧快照（快照语义）。
// 推荐每次需要时调用 Client()，不要长期缓存返回的指针。
//
// # 配置监视
//
// Watch 基于 fsnotify 监视配置文件变更并自动重载，内置防抖，
// 兼容 vim/emacs 的原子写入（写临时文件后 rename）。
// 从字节数据创建的 Config 不支持监视。
package xconf
