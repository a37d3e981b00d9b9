// Package brujin assembles sequences from short, redundant reads using a
// de Bruijn-style directed graph: build a vertex record per k-mer with its
// observed edges, prune under-supported evidence, compress unbranching
// chains to a fixpoint, and extract Euler tours over what remains.
//
// The pipeline lives across focused packages:
//
//	core/      — generic directed graph with non-owning, merge-safe iterators
//	record/    — Partition-Local Vertex Record: the serializable unit the
//	             rest of the pipeline operates on
//	compress/  — randomized pairwise chain compression to a fixpoint
//	prune/     — coverage-based rejection of under-supported edge groups
//	euler/     — non-destructive, directed Hierholzer tour extraction
//	wire/      — length-prefixed framing for persisting/streaming records
//	config/    — validated, YAML-loadable pipeline configuration
//	harness/   — interfaces for the external collaborators this engine
//	             consumes (read generation, k-mer splitting, alignment)
//	assembler/ — the façade wiring build -> prune -> compress -> tour
package brujin
