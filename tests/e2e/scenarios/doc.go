// Package scenarios contains end-to-end scenarios driving the CLI
// in-process.
//
// Each file exercises one surface:
//   - workflow_test.go: detection flows, --check gating, debug reports
//   - registry_test.go: config-defined signatures and registry listing
package scenarios
