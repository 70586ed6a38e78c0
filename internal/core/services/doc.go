// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The worklist is built once per run and processed one article at a time.
// Chunk translation is strictly sequential because reassembly depends on
// order.
package services
