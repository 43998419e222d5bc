// Package fsops is the transactional mutation layer every Talon file
// change flows through.
//
// # Overview
//
// An Executor resolves targets against configured root directories,
// applies typed actions (write, delete, copy, move), and records a
// reversal recipe for each mutation in an in-memory Journal. When a
// multi-step change fails partway, Rollback restores every touched path
// to its pre-mutation state in reverse apply order.
//
// # Usage
//
//	exec := fsops.NewExecutor(fsops.NewResolver(roots), logger)
//	_, err := exec.Apply("config/app.yml", fsops.WriteAction{Content: data}, true)
//	if err != nil {
//		exec.Rollback()
//	}
//
// # Guarantees and limits
//
// Rollback is best-effort: a step that cannot be reversed is logged and
// skipped rather than blocking the rest. The journal lives only in
// memory, so rollback protects a single run, not a crashed process, and
// the executor is not safe for concurrent use; give each logical
// operation its own executor.
package fsops
